package scoring

// FinalScore combines up to three rater scores into one number. A nil score
// means that rater has not submitted; its weight is excluded and the result
// renormalized over the raters present, so a pending boss never deflates the
// score. Boss participates only when the resolved weights enable it and a
// boss score exists. Returns 0 when no rater is present; callers that need to
// tell "no data" apart from a genuine zero must track submission state
// themselves.
func FinalScore(self, leader, boss *float64, weights RaterWeights) float64 {
	totalScore := 0.0
	totalWeight := 0.0

	if self != nil {
		totalScore += *self * weights.Self
		totalWeight += weights.Self
	}
	if leader != nil {
		totalScore += *leader * weights.Leader
		totalWeight += weights.Leader
	}
	if boss != nil && weights.HasBoss {
		totalScore += *boss * weights.Boss
		totalWeight += weights.Boss
	}

	if totalWeight == 0 {
		return 0
	}
	return totalScore / totalWeight
}

// FinalTemplateScore aggregates each present rater's submission and combines
// them under the template's scoring rules.
func FinalTemplateScore(set EvaluationSet, t Template) float64 {
	weights := ResolveWeights(t.Rules)

	var self, leader, boss *float64
	if set.Self != nil {
		score := TemplateScore(set.Self, t)
		self = &score
	}
	if set.Leader != nil {
		score := TemplateScore(set.Leader, t)
		leader = &score
	}
	if set.Boss != nil {
		score := TemplateScore(set.Boss, t)
		boss = &score
	}
	return FinalScore(self, leader, boss, weights)
}
