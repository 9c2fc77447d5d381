package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"nebula-mapper/internal/document"
)

// Native type names attached to values.
const (
	TypeString    = "STRING"
	TypeInt64     = "INT64"
	TypeDouble    = "DOUBLE"
	TypeBool      = "BOOL"
	TypeTimestamp = "TIMESTAMP"
)

// Value is a scalar literal: exactly one of Str, Int, Float or Bool is
// meaningful, selected by Kind. A null value has Null set and no variant.
// TargetType names the store type the value is meant for.
type Value struct {
	Kind       Kind
	Str        string
	Int        int64
	Float      float64
	Bool       bool
	Null       bool
	TargetType string
}

func String(s string) Value {
	return Value{Kind: KindString, Str: s, TargetType: TypeString}
}

func Int(i int64) Value {
	return Value{Kind: KindInt, Int: i, TargetType: TypeInt64}
}

func Float(f float64) Value {
	return Value{Kind: KindFloat, Float: f, TargetType: TypeDouble}
}

func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b, TargetType: TypeBool}
}

// Null returns the null value for a property of targetType.
func Null(targetType string) Value {
	return Value{Null: true, TargetType: targetType}
}

// WithTarget returns a copy of v carrying targetType.
func (v Value) WithTarget(targetType string) Value {
	v.TargetType = targetType
	return v
}

// Text coerces v to text: strings verbatim, integers in decimal, floats in
// shortest round-trip form, booleans as true or false.
func (v Value) Text() (string, error) {
	if v.Null {
		return "", fmt.Errorf("%w: null has no text form", ErrInvalidValue)
	}

	switch v.Kind {
	case KindString:
		return v.Str, nil
	case KindInt:
		return strconv.FormatInt(v.Int, 10), nil
	case KindFloat:
		return FormatFloat(v.Float), nil
	case KindBool:
		return strconv.FormatBool(v.Bool), nil
	default:
		return "", fmt.Errorf("%w: value of kind %s", ErrInvalidValue, v.Kind)
	}
}

func (v Value) String() string {
	if v.Null {
		return "NULL"
	}

	s, err := v.Text()
	if err != nil {
		return v.Kind.String()
	}

	if v.Kind == KindString {
		return strconv.Quote(s)
	}

	return s
}

// FormatFloat renders f in its shortest round-trip decimal form. Integral
// values keep a ".0" suffix so they still read as floating point.
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) || math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}

// FromDocument converts a scalar document node into a Value by the node's own
// kind. Null nodes yield a null Value; arrays and objects are rejected.
func FromDocument(node any) (Value, error) {
	switch kind := document.KindOf(node); kind {
	case document.KindNull:
		return Null(""), nil
	case document.KindString:
		return String(node.(string)), nil
	case document.KindBool:
		return Bool(node.(bool)), nil
	case document.KindInt:
		i, ok := document.AsInt64(node)
		if !ok {
			return Value{}, fmt.Errorf("%w: integer %v out of range", ErrInvalidValue, node)
		}

		return Int(i), nil
	case document.KindFloat:
		f, ok := document.AsFloat64(node)
		if !ok {
			return Value{}, fmt.Errorf("%w: bad number %v", ErrInvalidValue, node)
		}

		return Float(f), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported %s value", ErrInvalidValue, kind)
	}
}
