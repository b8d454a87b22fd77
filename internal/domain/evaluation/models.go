package evaluation

import (
	"time"

	"okr/internal/domain/scoring"
)

// Evaluation is one rater's record for one employee in one assessment. It is
// mutated through draft autosave until Submit freezes it.
type Evaluation struct {
	ID            string                  `json:"id"`
	AssessmentID  string                  `json:"assessmentId"`
	EmployeeID    string                  `json:"employeeId"`
	EvaluatorID   string                  `json:"evaluatorId"`
	EvaluatorType string                  `json:"evaluatorType"`
	Scores        []scoring.DetailedScore `json:"scores"`
	Status        string                  `json:"status"`
	ContentHash   string                  `json:"-"`
	SubmittedAt   *time.Time              `json:"submittedAt,omitempty"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

func (e Evaluation) Submitted() bool {
	return e.Status == StatusSubmitted
}

// Preview is the live score view recomputed on every draft save.
type Preview struct {
	CategoryScores []CategoryScore `json:"categoryScores"`
	TemplateScore  float64         `json:"templateScore"`
}

type CategoryScore struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Score        float64 `json:"score"`
}

// Result is the aggregated outcome for one employee. FinalScore is 0 both
// when nobody has submitted and when every rater gave zero; the Submitted
// flags are how callers tell those apart.
type Result struct {
	EmployeeID      string   `json:"employeeId"`
	FinalScore      float64  `json:"finalScore"`
	SelfScore       *float64 `json:"selfScore,omitempty"`
	LeaderScore     *float64 `json:"leaderScore,omitempty"`
	BossScore       *float64 `json:"bossScore,omitempty"`
	SelfSubmitted   bool     `json:"selfSubmitted"`
	LeaderSubmitted bool     `json:"leaderSubmitted"`
	BossSubmitted   bool     `json:"bossSubmitted"`
	Complete        bool     `json:"complete"`
}

// Comparison is the cross-rater review view.
type Comparison struct {
	Categories []scoring.CategoryDiff      `json:"categories"`
	Items      []scoring.CategoryItemDiffs `json:"items"`
}
