package scoring

// ResolveWeights flattens any scoring mode into the three-fraction shape the
// final score calculator consumes. New scoring modes plug in here by
// producing the same RaterWeights; everything downstream stays mode-agnostic.
func ResolveWeights(rules ScoringRules) RaterWeights {
	switch r := rules.(type) {
	case SimpleWeighted:
		return RaterWeights{
			Self:    r.SelfWeight,
			Leader:  r.LeaderWeight,
			Boss:    r.BossWeight,
			HasBoss: r.BossEnabled && r.BossWeight > 0,
		}
	case TwoTierWeighted:
		tierRatio := r.EmployeeLeaderWeight / 100
		return RaterWeights{
			Self:    tierRatio * (r.SelfWeightWithinTier / 100),
			Leader:  tierRatio * (r.LeaderWeightWithinTier / 100),
			Boss:    r.BossWeight / 100,
			HasBoss: r.BossWeight > 0,
		}
	default:
		return RaterWeights{}
	}
}
