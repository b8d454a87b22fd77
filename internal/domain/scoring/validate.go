package scoring

import (
	"fmt"
	"math"
)

// ValidationResult carries every violated invariant so the caller can show
// all problems at once. An empty Errors slice means the template is valid.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// roundPercent normalizes a weight to integer percentage points before any
// equality check against 100. Weights travel both as 0-1 fractions and 0-100
// integers; comparing raw floats produces false validation failures.
func roundPercent(value float64) int {
	return int(math.Round(value))
}

// ValidateTemplate checks every weight partition of the template: category
// weights, per-category item weights, and the rater weights of the active
// scoring mode. It never short-circuits.
func ValidateTemplate(t Template) ValidationResult {
	var errs []string

	categorySum := 0.0
	for _, category := range t.Categories {
		categorySum += category.Weight
	}
	if roundPercent(categorySum) != 100 {
		errs = append(errs, fmt.Sprintf("category weights sum to %d%%, expected 100%%", roundPercent(categorySum)))
	}

	for _, category := range t.Categories {
		if len(category.Items) == 0 {
			continue
		}
		itemSum := 0.0
		for _, item := range category.Items {
			itemSum += item.Weight
		}
		if roundPercent(itemSum) != 100 {
			errs = append(errs, fmt.Sprintf("%q item weights sum to %d%%, expected 100%%", category.Name, roundPercent(itemSum)))
		}
	}

	switch rules := t.Rules.(type) {
	case SimpleWeighted:
		raterSum := rules.SelfWeight + rules.LeaderWeight + rules.BossWeight
		if roundPercent(raterSum*100) != 100 {
			errs = append(errs, fmt.Sprintf("rater weights sum to %d%%, expected 100%%", roundPercent(raterSum*100)))
		}
	case TwoTierWeighted:
		if roundPercent(rules.EmployeeLeaderWeight+rules.BossWeight) != 100 {
			errs = append(errs, fmt.Sprintf("employee-leader and boss weights sum to %d%%, expected 100%%",
				roundPercent(rules.EmployeeLeaderWeight+rules.BossWeight)))
		}
		if roundPercent(rules.SelfWeightWithinTier+rules.LeaderWeightWithinTier) != 100 {
			errs = append(errs, fmt.Sprintf("self and leader weights within tier sum to %d%%, expected 100%%",
				roundPercent(rules.SelfWeightWithinTier+rules.LeaderWeightWithinTier)))
		}
	case nil:
		errs = append(errs, "scoring rules are not configured")
	default:
		errs = append(errs, fmt.Sprintf("unknown scoring mode %q", rules.Mode()))
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
