package scoring

import "testing"

func TestResolveWeightsSimple(t *testing.T) {
	weights := ResolveWeights(SimpleWeighted{SelfWeight: 0.4, LeaderWeight: 0.6})
	if !almostEqual(weights.Self, 0.4) || !almostEqual(weights.Leader, 0.6) || weights.Boss != 0 {
		t.Fatalf("unexpected weights: %+v", weights)
	}
	if weights.HasBoss {
		t.Fatal("expected no boss without boss weight")
	}
}

func TestResolveWeightsSimpleBossRequiresEnable(t *testing.T) {
	weights := ResolveWeights(SimpleWeighted{SelfWeight: 0.36, LeaderWeight: 0.54, BossWeight: 0.10})
	if weights.HasBoss {
		t.Fatal("boss weight without bossEnabled must not enable boss")
	}

	weights = ResolveWeights(SimpleWeighted{SelfWeight: 0.36, LeaderWeight: 0.54, BossWeight: 0.10, BossEnabled: true})
	if !weights.HasBoss {
		t.Fatal("expected boss enabled")
	}
	if !almostEqual(weights.Boss, 0.10) {
		t.Fatalf("expected boss weight 0.10, got %v", weights.Boss)
	}
}

func TestResolveWeightsTwoTierFlattening(t *testing.T) {
	weights := ResolveWeights(TwoTierWeighted{
		EmployeeLeaderWeight:   80,
		BossWeight:             20,
		SelfWeightWithinTier:   60,
		LeaderWeightWithinTier: 40,
	})

	if !almostEqual(weights.Self, 0.48) {
		t.Fatalf("expected self 0.48, got %v", weights.Self)
	}
	if !almostEqual(weights.Leader, 0.32) {
		t.Fatalf("expected leader 0.32, got %v", weights.Leader)
	}
	if !almostEqual(weights.Boss, 0.20) {
		t.Fatalf("expected boss 0.20, got %v", weights.Boss)
	}
	if !weights.HasBoss {
		t.Fatal("expected boss enabled by positive first-layer weight")
	}
	if !almostEqual(weights.Self+weights.Leader+weights.Boss, 1.0) {
		t.Fatalf("flattened weights must sum to 1, got %v", weights.Self+weights.Leader+weights.Boss)
	}
}

func TestResolveWeightsTwoTierNoBoss(t *testing.T) {
	weights := ResolveWeights(TwoTierWeighted{
		EmployeeLeaderWeight:   100,
		SelfWeightWithinTier:   30,
		LeaderWeightWithinTier: 70,
	})
	if weights.HasBoss || weights.Boss != 0 {
		t.Fatalf("expected boss disabled, got %+v", weights)
	}
	if !almostEqual(weights.Self+weights.Leader, 1.0) {
		t.Fatalf("expected self+leader to sum to 1, got %v", weights.Self+weights.Leader)
	}
}

func TestResolveWeightsNil(t *testing.T) {
	weights := ResolveWeights(nil)
	if weights != (RaterWeights{}) {
		t.Fatalf("expected zero weights for nil rules, got %+v", weights)
	}
}
