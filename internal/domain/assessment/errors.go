package assessment

import "errors"

var (
	ErrNotFound   = errors.New("assessment not found")
	ErrNotDraft   = errors.New("assessment is not in draft state")
	ErrNotActive  = errors.New("assessment is not active")
	ErrNoSnapshot = errors.New("assessment has no template snapshot")
)
