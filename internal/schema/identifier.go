package schema

import (
	"fmt"

	"nebula-mapper/internal/nql"
)

// ValidateIdentifier checks that name can be used as a tag, edge or property
// name: non-empty, at most 128 characters, matching [A-Za-z_][A-Za-z0-9_]* and
// not a reserved keyword.
func ValidateIdentifier(name string) error {
	if err := checkIdentifier("", name); err != nil {
		return err
	}

	return nil
}

// IsValidIdentifier reports whether ValidateIdentifier accepts name.
func IsValidIdentifier(name string) bool {
	return checkIdentifier("", name) == nil
}

func checkIdentifier(element, name string) *IdentifierError {
	var err error

	switch {
	case name == "":
		err = fmt.Errorf("%w: empty name", ErrInvalidIdentifier)
	case len(name) > nql.MaxIdentifierLength:
		err = fmt.Errorf("%w: longer than %d characters", ErrInvalidIdentifier, nql.MaxIdentifierLength)
	case nql.IsReserved(name):
		err = ErrReservedKeyword
	case !nql.IsIdentifierSyntax(name):
		err = fmt.Errorf("%w: must match [A-Za-z_][A-Za-z0-9_]*", ErrInvalidIdentifier)
	default:
		return nil
	}

	return &IdentifierError{Element: element, Name: name, Err: err}
}

// ValidateElement checks the element name, every property name and the
// uniqueness of property names.
func ValidateElement(e *Element) error {
	if err := checkIdentifier("", e.Name); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(e.Properties))

	for _, p := range e.Properties {
		if err := checkIdentifier(e.Name, p.Name); err != nil {
			return err
		}

		if _, dup := seen[p.Name]; dup {
			return &IdentifierError{Element: e.Name, Name: p.Name, Err: ErrDuplicateProperty}
		}

		seen[p.Name] = struct{}{}
	}

	return nil
}
