package template

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Record is a stored evaluation template. Config holds the categories and
// scoring rules as JSONB; the decoded form lives in domain/scoring.
type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Config      []byte    `json:"-"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
