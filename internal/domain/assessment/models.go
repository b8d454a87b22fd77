package assessment

import "time"

// Assessment is one review cycle. TemplateSnapshot is copied from the
// template at publish time; scoring for a published assessment only ever
// reads the snapshot, never the live template.
type Assessment struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	TemplateID       string    `json:"templateId"`
	TemplateSnapshot []byte    `json:"-"`
	Status           string    `json:"status"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	CreatedAt        time.Time `json:"createdAt"`
}

// OpenForScoring reports whether raters may still create or change drafts.
// It is the only fact this service consumes from the lifecycle machine.
func (a Assessment) OpenForScoring() bool {
	return a.Status == StatusActive
}
