package evaluation

import "errors"

var (
	ErrNotFound         = errors.New("evaluation not found")
	ErrAlreadySubmitted = errors.New("evaluation already submitted")
	ErrAssessmentClosed = errors.New("assessment is closed for scoring")
	ErrUnknownEvaluator = errors.New("unknown evaluator type")
)
