package template

import (
	"testing"

	"okr/internal/domain/scoring"
)

func TestDecodeConfigSimpleWeighted(t *testing.T) {
	raw := []byte(`{
		"categories": [
			{"id": "c1", "name": "Work Performance", "weight": 60, "items": [
				{"id": "i1", "name": "Delivery", "weight": 50, "maxScore": 100},
				{"id": "i2", "name": "Quality", "weight": 50, "maxScore": 100}
			]},
			{"id": "c2", "name": "Attitude", "weight": 40, "items": [
				{"id": "i3", "name": "Ownership", "weight": 100, "maxScore": 100}
			]}
		],
		"scoringRules": {"mode": "simple_weighted", "selfWeight": 0.4, "leaderWeight": 0.6}
	}`)

	decoded, err := DecodeConfig(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(decoded.Categories))
	}

	rules, ok := decoded.Rules.(scoring.SimpleWeighted)
	if !ok {
		t.Fatalf("expected SimpleWeighted rules, got %T", decoded.Rules)
	}
	if rules.SelfWeight != 0.4 || rules.LeaderWeight != 0.6 {
		t.Fatalf("unexpected rule weights: %+v", rules)
	}
	if rules.BossEnabled {
		t.Fatal("boss must default to disabled without a boss weight")
	}
}

func TestDecodeConfigBossEnabledDefault(t *testing.T) {
	raw := []byte(`{
		"categories": [],
		"scoringRules": {"mode": "simple_weighted", "selfWeight": 0.3, "leaderWeight": 0.5, "bossWeight": 0.2}
	}`)

	decoded, err := DecodeConfig(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rules := decoded.Rules.(scoring.SimpleWeighted)
	if !rules.BossEnabled {
		t.Fatal("positive boss weight without explicit flag must enable the boss")
	}
}

func TestDecodeConfigTwoTier(t *testing.T) {
	raw := []byte(`{
		"categories": [],
		"scoringRules": {
			"mode": "two_tier_weighted",
			"employeeLeaderWeight": 80,
			"bossWeight": 20,
			"selfWeightWithinTier": 60,
			"leaderWeightWithinTier": 40
		}
	}`)

	decoded, err := DecodeConfig(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rules, ok := decoded.Rules.(scoring.TwoTierWeighted)
	if !ok {
		t.Fatalf("expected TwoTierWeighted rules, got %T", decoded.Rules)
	}
	if rules.EmployeeLeaderWeight != 80 || rules.BossWeight != 20 {
		t.Fatalf("unexpected first layer: %+v", rules)
	}
	if rules.SelfWeightWithinTier != 60 || rules.LeaderWeightWithinTier != 40 {
		t.Fatalf("unexpected second layer: %+v", rules)
	}
}

func TestDecodeConfigUnknownMode(t *testing.T) {
	raw := []byte(`{"categories": [], "scoringRules": {"mode": "ranked_choice"}}`)
	if _, err := DecodeConfig(raw); err == nil {
		t.Fatal("expected error for unknown mode")
	}

	raw = []byte(`{"categories": [], "scoringRules": {}}`)
	if _, err := DecodeConfig(raw); err == nil {
		t.Fatal("expected error for missing mode")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := scoring.Template{
		Categories: []scoring.Category{
			{ID: "c1", Name: "Work Performance", Weight: 100, Items: []scoring.Item{
				{ID: "i1", Name: "Delivery", Weight: 100, MaxScore: 100},
			}},
		},
		Rules: scoring.TwoTierWeighted{
			EmployeeLeaderWeight:   70,
			BossWeight:             30,
			SelfWeightWithinTier:   50,
			LeaderWeightWithinTier: 50,
		},
	}

	encoded, err := EncodeConfig(original)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	decoded, err := DecodeConfig(encoded)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if decoded.Rules != original.Rules {
		t.Fatalf("rules changed in round trip: %+v vs %+v", decoded.Rules, original.Rules)
	}
	if len(decoded.Categories) != 1 || decoded.Categories[0].ID != "c1" {
		t.Fatalf("categories changed in round trip: %+v", decoded.Categories)
	}
}
