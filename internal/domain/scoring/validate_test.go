package scoring

import (
	"strings"
	"testing"
)

func validTemplate() Template {
	return Template{
		Categories: []Category{
			{ID: "c1", Name: "Work Performance", Weight: 60, Items: []Item{
				{ID: "i1", Weight: 50, MaxScore: 100},
				{ID: "i2", Weight: 50, MaxScore: 100},
			}},
			{ID: "c2", Name: "Attitude", Weight: 40, Items: []Item{
				{ID: "i3", Weight: 100, MaxScore: 100},
			}},
		},
		Rules: SimpleWeighted{SelfWeight: 0.4, LeaderWeight: 0.6},
	}
}

func TestValidateTemplateValid(t *testing.T) {
	result := ValidateTemplate(validTemplate())
	if !result.Valid {
		t.Fatalf("expected valid template, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
}

func TestValidateTemplateCollectsEveryViolation(t *testing.T) {
	template := validTemplate()
	template.Categories[0].Weight = 55 // categories now sum to 95
	template.Categories[1].Items[0].Weight = 110

	result := ValidateTemplate(template)
	if result.Valid {
		t.Fatal("expected invalid template")
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(result.Errors[0], "95%") {
		t.Fatalf("expected category sum error first, got %q", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "110%") || !strings.Contains(result.Errors[1], "Attitude") {
		t.Fatalf("expected item sum error naming the category, got %q", result.Errors[1])
	}
}

func TestValidateTemplateFractionRounding(t *testing.T) {
	// 0.3+0.3+0.4 does not sum to exactly 1.0 in floating point; rounding to
	// integer percent must keep it valid.
	template := validTemplate()
	template.Rules = SimpleWeighted{SelfWeight: 0.3, LeaderWeight: 0.3, BossWeight: 0.4, BossEnabled: true}

	result := ValidateTemplate(template)
	if !result.Valid {
		t.Fatalf("expected rounding to accept 0.3+0.3+0.4, got %v", result.Errors)
	}
}

func TestValidateTemplateRaterSum(t *testing.T) {
	template := validTemplate()
	template.Rules = SimpleWeighted{SelfWeight: 0.4, LeaderWeight: 0.4}

	result := ValidateTemplate(template)
	if result.Valid {
		t.Fatal("expected invalid rater weights")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "80%") {
		t.Fatalf("expected single rater weight error, got %v", result.Errors)
	}
}

func TestValidateTemplateTwoTier(t *testing.T) {
	template := validTemplate()
	template.Rules = TwoTierWeighted{
		EmployeeLeaderWeight:   80,
		BossWeight:             20,
		SelfWeightWithinTier:   60,
		LeaderWeightWithinTier: 40,
	}
	if result := ValidateTemplate(template); !result.Valid {
		t.Fatalf("expected valid two-tier template, got %v", result.Errors)
	}

	template.Rules = TwoTierWeighted{
		EmployeeLeaderWeight:   80,
		BossWeight:             30,
		SelfWeightWithinTier:   60,
		LeaderWeightWithinTier: 50,
	}
	result := ValidateTemplate(template)
	if result.Valid {
		t.Fatal("expected invalid two-tier template")
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected both layer errors, got %v", result.Errors)
	}
}

func TestValidateTemplateMissingRules(t *testing.T) {
	template := validTemplate()
	template.Rules = nil

	result := ValidateTemplate(template)
	if result.Valid || len(result.Errors) != 1 {
		t.Fatalf("expected missing-rules error, got %v", result.Errors)
	}
}

func TestValidateTemplateEmptyItemsSkipped(t *testing.T) {
	template := validTemplate()
	template.Categories[1].Items = nil

	if result := ValidateTemplate(template); !result.Valid {
		t.Fatalf("category without items must not require item weights, got %v", result.Errors)
	}
}
