package models

import "errors"

// Validation errors for closed enumerations and bounded fields
var (
	ErrUnknownStatus   = errors.New("unknown task status")
	ErrUnknownPriority = errors.New("unknown task priority")
	ErrUnknownRole     = errors.New("unknown role")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
)
