package document

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is against a *PathError.
var (
	ErrNotFound         = errors.New("property not found")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrIndexOutOfBounds = errors.New("array index out of bounds")
	ErrInvalidIndex     = errors.New("invalid array index")
)

// ErrorKind tells which navigation step failed.
type ErrorKind int

const (
	NotFound ErrorKind = iota
	TypeMismatch
	IndexOutOfBounds
	InvalidIndex
)

// PathError reports a failed navigation step.
type PathError struct {
	Kind    ErrorKind
	Path    string
	Segment string
	// Expected and Actual describe a TypeMismatch.
	Expected Kind
	Actual   Kind
	// Index and Length describe an IndexOutOfBounds.
	Index  int
	Length int
}

func (e *PathError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("path %q: property %q not found", e.Path, e.Segment)
	case TypeMismatch:
		return fmt.Sprintf("path %q: at %q expected %s, got %s", e.Path, e.Segment, e.Expected, e.Actual)
	case IndexOutOfBounds:
		return fmt.Sprintf("path %q: array index %d out of bounds (length %d)", e.Path, e.Index, e.Length)
	case InvalidIndex:
		return fmt.Sprintf("path %q: invalid array index %q", e.Path, e.Segment)
	default:
		return fmt.Sprintf("path %q: resolution failed at %q", e.Path, e.Segment)
	}
}

func (e *PathError) Unwrap() error {
	switch e.Kind {
	case NotFound:
		return ErrNotFound
	case TypeMismatch:
		return ErrTypeMismatch
	case IndexOutOfBounds:
		return ErrIndexOutOfBounds
	case InvalidIndex:
		return ErrInvalidIndex
	default:
		return nil
	}
}
