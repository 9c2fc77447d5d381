package statement

import (
	"errors"
	"fmt"
)

var (
	ErrNullKey    = errors.New("key resolved to null")
	ErrConversion = errors.New("value conversion failed")
)

// Error reports the step of a compile that failed.
type Error struct {
	// Op is the failed step, e.g. "key" or "extract".
	Op string
	// Element is "tag <name>" or "edge <name>".
	Element string
	// Path is the document path being processed, if any.
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}

	msg = fmt.Sprintf("%s: %v", msg, e.Err)

	if e.Element != "" {
		msg = e.Element + ": " + msg
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// inElement attributes err to element.
func inElement(err error, element string) error {
	var stmtErr *Error
	if errors.As(err, &stmtErr) {
		if stmtErr.Element == "" {
			stmtErr.Element = element
		}

		return err
	}

	return &Error{Op: "compile", Element: element, Err: err}
}
