package interpret

import "errors"

// Domain-specific errors for the interpret package.
var (
	ErrInvalidInput = errors.New("input text is empty")
	ErrInternal     = errors.New("internal interpretation failure")
)
