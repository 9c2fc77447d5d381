package transform

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("transform not found")
	ErrMissingParam = errors.New("missing required parameter")
	ErrInvalidParam = errors.New("invalid parameter")
	ErrInvalidValue = errors.New("invalid value")
)

// Error reports a failed transform application.
type Error struct {
	Transform string
	// Input is the source text, when the failure is about a value.
	Input string
	Err   error
}

func (e *Error) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("transform %s: %v (input %q)", e.Transform, e.Err, e.Input)
	}

	return fmt.Sprintf("transform %s: %v", e.Transform, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func valueError(name, input string, format string, args ...any) *Error {
	return &Error{
		Transform: name,
		Input:     input,
		Err:       fmt.Errorf("%w: "+format, append([]any{ErrInvalidValue}, args...)...),
	}
}
