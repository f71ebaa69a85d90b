package inference

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout indicates the inference call exceeded its deadline
	ErrTimeout = errors.New("inference timeout")

	// ErrTransport indicates a network or HTTP failure
	ErrTransport = errors.New("inference transport error")

	// ErrSchema indicates the response did not match the expected shape
	ErrSchema = errors.New("inference schema error")

	// ErrServiceUnavailable indicates the availability probe failed
	ErrServiceUnavailable = errors.New("inference service unavailable")
)

// Error carries one of the sentinel kinds above together with its cause.
// errors.Is matches both the kind and anything in the cause chain.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func schemaError(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrSchema, Err: fmt.Errorf(format, args...)}
}
