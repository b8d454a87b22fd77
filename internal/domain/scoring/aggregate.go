package scoring

import "fmt"

// CategoryScore reduces one rater's item scores for a category into a single
// 0-100 score. Scores referencing an item no longer present in the category
// are skipped: templates can change underneath an in-flight draft and a stale
// reference is not an error. The weighted sum is normalized by the item
// weight actually matched, so a partially filled draft still previews
// correctly. Returns 0 when nothing matched.
func CategoryScore(items []DetailedScoreItem, category Category) float64 {
	totalWeighted := 0.0
	totalWeight := 0.0
	for _, scored := range items {
		config, ok := findItem(category.Items, scored.ItemID)
		if !ok {
			continue
		}
		totalWeighted += scored.Score * config.Weight
		totalWeight += config.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return totalWeighted / totalWeight
}

// TemplateScore reduces one rater's full submission into a single 0-100
// score, weighting each category score by the category weight. The same
// stale-reference tolerance applies at the category level, and the result is
// normalized by the category weight actually matched.
func TemplateScore(scores []DetailedScore, t Template) float64 {
	totalWeighted := 0.0
	totalWeight := 0.0
	for _, scored := range scores {
		category, ok := findCategory(t.Categories, scored.CategoryID)
		if !ok {
			continue
		}
		totalWeighted += categoryScoreOf(scored, category) * category.Weight
		totalWeight += category.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return totalWeighted / totalWeight
}

// categoryScoreOf recomputes the category score from items whenever the
// category carries item configuration; categories scored as a single number
// keep the submitted value.
func categoryScoreOf(scored DetailedScore, category Category) float64 {
	if len(category.Items) == 0 {
		return scored.CategoryScore
	}
	return CategoryScore(scored.Items, category)
}

// ValidateScores rejects out-of-range item scores before they reach the
// aggregation math, which assumes valid input. Stale references are still
// tolerated here; only genuine range violations fail.
func ValidateScores(scores []DetailedScore, t Template) error {
	for _, scored := range scores {
		category, ok := findCategory(t.Categories, scored.CategoryID)
		if !ok {
			continue
		}
		for _, item := range scored.Items {
			config, ok := findItem(category.Items, item.ItemID)
			if !ok {
				continue
			}
			if item.Score < 0 || item.Score > config.MaxScore {
				return fmt.Errorf("score %.2f for item %q out of range [0, %.0f]", item.Score, config.Name, config.MaxScore)
			}
		}
	}
	return nil
}

func findCategory(categories []Category, id string) (Category, bool) {
	for _, category := range categories {
		if category.ID == id {
			return category, true
		}
	}
	return Category{}, false
}

func findItem(items []Item, id string) (Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}
