package template

import "errors"

var (
	ErrNotFound  = errors.New("template not found")
	ErrPublished = errors.New("template is published and immutable")
	ErrInvalid   = errors.New("template configuration is invalid")
)
