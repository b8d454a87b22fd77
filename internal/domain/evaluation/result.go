package evaluation

import "okr/internal/domain/scoring"

// BuildPreview recomputes per-category scores and the template score for one
// rater's submission. Called on every draft save; pure and cheap.
func BuildPreview(scores []scoring.DetailedScore, t scoring.Template) Preview {
	preview := Preview{
		CategoryScores: make([]CategoryScore, 0, len(t.Categories)),
		TemplateScore:  scoring.TemplateScore(scores, t),
	}
	for _, scored := range scores {
		for _, category := range t.Categories {
			if category.ID != scored.CategoryID {
				continue
			}
			score := scored.CategoryScore
			if len(category.Items) > 0 {
				score = scoring.CategoryScore(scored.Items, category)
			}
			preview.CategoryScores = append(preview.CategoryScores, CategoryScore{
				CategoryID:   category.ID,
				CategoryName: category.Name,
				Score:        score,
			})
		}
	}
	return preview
}

// BuildResult combines the submitted raters of an evaluation set into the
// final score. Only submitted evaluations participate; drafts count as
// missing. Complete means every rater the scoring rules expect has
// submitted.
func BuildResult(employeeID string, set scoring.EvaluationSet, submitted [3]bool, t scoring.Template) Result {
	weights := scoring.ResolveWeights(t.Rules)

	result := Result{
		EmployeeID:      employeeID,
		SelfSubmitted:   submitted[0],
		LeaderSubmitted: submitted[1],
		BossSubmitted:   submitted[2],
	}

	if result.SelfSubmitted {
		score := scoring.TemplateScore(set.Self, t)
		result.SelfScore = &score
	}
	if result.LeaderSubmitted {
		score := scoring.TemplateScore(set.Leader, t)
		result.LeaderScore = &score
	}
	if result.BossSubmitted {
		score := scoring.TemplateScore(set.Boss, t)
		result.BossScore = &score
	}

	result.FinalScore = scoring.FinalScore(result.SelfScore, result.LeaderScore, result.BossScore, weights)
	result.Complete = result.SelfSubmitted && result.LeaderSubmitted && (!weights.HasBoss || result.BossSubmitted)
	return result
}
