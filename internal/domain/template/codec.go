package template

import (
	"encoding/json"
	"fmt"

	"okr/internal/domain/scoring"
)

// configJSON is the wire and storage shape of a template config. Scoring
// rules arrive as one object with a mode discriminator and mode-specific
// fields; decoding turns that into the scoring package's closed union so the
// engine can never read a field that does not apply to the active mode.
type configJSON struct {
	Categories   []scoring.Category `json:"categories"`
	ScoringRules rulesJSON          `json:"scoringRules"`
}

type rulesJSON struct {
	Mode string `json:"mode"`

	SelfWeight   *float64 `json:"selfWeight,omitempty"`
	LeaderWeight *float64 `json:"leaderWeight,omitempty"`
	BossWeight   *float64 `json:"bossWeight,omitempty"`
	BossEnabled  *bool    `json:"bossEnabled,omitempty"`

	EmployeeLeaderWeight   *float64 `json:"employeeLeaderWeight,omitempty"`
	SelfWeightWithinTier   *float64 `json:"selfWeightWithinTier,omitempty"`
	LeaderWeightWithinTier *float64 `json:"leaderWeightWithinTier,omitempty"`
}

// DecodeConfig parses a stored template config into the scoring engine's
// template shape.
func DecodeConfig(raw []byte) (scoring.Template, error) {
	var config configJSON
	if err := json.Unmarshal(raw, &config); err != nil {
		return scoring.Template{}, fmt.Errorf("decode template config: %w", err)
	}

	rules, err := decodeRules(config.ScoringRules)
	if err != nil {
		return scoring.Template{}, err
	}
	return scoring.Template{Categories: config.Categories, Rules: rules}, nil
}

func decodeRules(raw rulesJSON) (scoring.ScoringRules, error) {
	switch raw.Mode {
	case scoring.ModeSimpleWeighted:
		rules := scoring.SimpleWeighted{
			SelfWeight:   floatOr(raw.SelfWeight, 0),
			LeaderWeight: floatOr(raw.LeaderWeight, 0),
			BossWeight:   floatOr(raw.BossWeight, 0),
		}
		if raw.BossEnabled != nil {
			rules.BossEnabled = *raw.BossEnabled
		} else {
			rules.BossEnabled = rules.BossWeight > 0
		}
		return rules, nil
	case scoring.ModeTwoTierWeighted:
		return scoring.TwoTierWeighted{
			EmployeeLeaderWeight:   floatOr(raw.EmployeeLeaderWeight, 0),
			BossWeight:             floatOr(raw.BossWeight, 0),
			SelfWeightWithinTier:   floatOr(raw.SelfWeightWithinTier, 0),
			LeaderWeightWithinTier: floatOr(raw.LeaderWeightWithinTier, 0),
		}, nil
	case "":
		return nil, fmt.Errorf("scoring rules missing mode")
	default:
		return nil, fmt.Errorf("unknown scoring mode %q", raw.Mode)
	}
}

// EncodeConfig serializes a scoring template back to the storage shape.
func EncodeConfig(t scoring.Template) ([]byte, error) {
	config := configJSON{Categories: t.Categories}

	switch rules := t.Rules.(type) {
	case scoring.SimpleWeighted:
		config.ScoringRules = rulesJSON{
			Mode:         scoring.ModeSimpleWeighted,
			SelfWeight:   &rules.SelfWeight,
			LeaderWeight: &rules.LeaderWeight,
			BossWeight:   &rules.BossWeight,
			BossEnabled:  &rules.BossEnabled,
		}
	case scoring.TwoTierWeighted:
		config.ScoringRules = rulesJSON{
			Mode:                   scoring.ModeTwoTierWeighted,
			EmployeeLeaderWeight:   &rules.EmployeeLeaderWeight,
			BossWeight:             &rules.BossWeight,
			SelfWeightWithinTier:   &rules.SelfWeightWithinTier,
			LeaderWeightWithinTier: &rules.LeaderWeightWithinTier,
		}
	default:
		return nil, fmt.Errorf("cannot encode scoring rules of type %T", t.Rules)
	}

	return json.Marshal(config)
}

func floatOr(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
