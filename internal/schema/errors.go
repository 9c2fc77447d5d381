package schema

import (
	"errors"
	"fmt"

	"nebula-mapper/internal/nql"
)

var (
	ErrUnsupportedType   = errors.New("unsupported type")
	ErrLengthExceeded    = errors.New("string length exceeds maximum")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrReservedKeyword   = errors.New("reserved keyword")
	ErrDuplicateProperty = errors.New("duplicate property")
	ErrElementMismatch   = errors.New("schema elements do not match")
)

// TypeError reports a property type that has no native counterpart or whose
// string length is out of range.
type TypeError struct {
	// Element and Property are set when the type belongs to a mapping.
	Element  string
	Property string
	Type     string
	Length   int
	Err      error
}

func (e *TypeError) Error() string {
	var msg string
	if errors.Is(e.Err, ErrLengthExceeded) {
		msg = fmt.Sprintf("type %s: %v: %d > %d", e.Type, e.Err, e.Length, nql.MaxStringLength)
	} else {
		msg = fmt.Sprintf("type %q: %v", e.Type, e.Err)
	}

	if e.Property != "" {
		msg = fmt.Sprintf("property %s: %s", e.Property, msg)
	}

	if e.Element != "" {
		msg = e.Element + ": " + msg
	}

	return msg
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// IdentifierError reports a tag, edge or property name that cannot be used.
type IdentifierError struct {
	Element string
	Name    string
	Err     error
}

func (e *IdentifierError) Error() string {
	if e.Element != "" && e.Element != e.Name {
		return fmt.Sprintf("%s: identifier %q: %v", e.Element, e.Name, e.Err)
	}

	return fmt.Sprintf("identifier %q: %v", e.Name, e.Err)
}

func (e *IdentifierError) Unwrap() error {
	return e.Err
}
