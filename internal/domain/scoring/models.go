package scoring

const (
	EvaluatorSelf   = "self"
	EvaluatorLeader = "leader"
	EvaluatorBoss   = "boss"

	ModeSimpleWeighted  = "simple_weighted"
	ModeTwoTierWeighted = "two_tier_weighted"
)

// Template is the static scoring configuration for one assessment. Once an
// assessment is published the engine only ever sees an immutable snapshot.
type Template struct {
	Categories []Category   `json:"categories"`
	Rules      ScoringRules `json:"-"`
}

type Category struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Weight         float64  `json:"weight"`
	EvaluatorTypes []string `json:"evaluatorTypes"`
	Items          []Item   `json:"items"`
}

type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	MaxScore float64 `json:"maxScore"`
}

// ScoringRules is a closed union: SimpleWeighted or TwoTierWeighted.
type ScoringRules interface {
	Mode() string
}

// SimpleWeighted weights self/leader/boss directly into the final score.
// Weights are fractions in [0,1].
type SimpleWeighted struct {
	SelfWeight   float64 `json:"selfWeight"`
	LeaderWeight float64 `json:"leaderWeight"`
	BossWeight   float64 `json:"bossWeight"`
	BossEnabled  bool    `json:"bossEnabled"`
}

func (SimpleWeighted) Mode() string { return ModeSimpleWeighted }

// TwoTierWeighted splits weight between the employee+leader tier and the boss
// first, then splits the tier between self and leader. All four values are
// percentages in [0,100].
type TwoTierWeighted struct {
	EmployeeLeaderWeight   float64 `json:"employeeLeaderWeight"`
	BossWeight             float64 `json:"bossWeight"`
	SelfWeightWithinTier   float64 `json:"selfWeightWithinTier"`
	LeaderWeightWithinTier float64 `json:"leaderWeightWithinTier"`
}

func (TwoTierWeighted) Mode() string { return ModeTwoTierWeighted }

// DetailedScore is one rater's submission for one category. CategoryScore is
// derived display data; aggregation recomputes it from Items whenever the
// category has item configuration.
type DetailedScore struct {
	CategoryID    string              `json:"categoryId"`
	CategoryScore float64             `json:"categoryScore"`
	Items         []DetailedScoreItem `json:"items"`
}

type DetailedScoreItem struct {
	ItemID  string  `json:"itemId"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment,omitempty"`
}

// EvaluationSet holds every rater's submission for one employee in one
// assessment. A nil slice means that rater has not submitted yet.
type EvaluationSet struct {
	Self   []DetailedScore `json:"self"`
	Leader []DetailedScore `json:"leader"`
	Boss   []DetailedScore `json:"boss"`
}

// RaterWeights is the flattened three-fraction shape every scoring mode
// resolves to. Self+Leader+Boss sums to 1 within floating tolerance when
// HasBoss is true, otherwise Boss is 0 and the other two sum to 1.
type RaterWeights struct {
	Self    float64 `json:"selfWeight"`
	Leader  float64 `json:"leaderWeight"`
	Boss    float64 `json:"bossWeight"`
	HasBoss bool    `json:"hasBoss"`
}
