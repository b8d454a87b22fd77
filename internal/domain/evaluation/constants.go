package evaluation

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)
