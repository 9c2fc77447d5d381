package statement

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"

	"nebula-mapper/internal/document"
	"nebula-mapper/internal/mapping"
	"nebula-mapper/internal/nql"
	"nebula-mapper/internal/transform"
)

// ExtractValue resolves property p in record and converts it: through the
// property's transform when it has one, else by its target type. A null
// node, or a missing node of an optional property, gives a null value.
func (c *Compiler) ExtractValue(record any, p *mapping.Property, settings *mapping.Settings) (transform.Value, error) {
	target := nativeType(p.TargetType)

	node, err := c.resolver.Resolve(record, p.JSONPath)
	if err != nil {
		if p.Optional && errors.Is(err, document.ErrNotFound) {
			return transform.Null(target), nil
		}

		return transform.Value{}, &Error{Op: "extract", Path: p.JSONPath, Err: err}
	}

	if node == nil {
		return transform.Null(target), nil
	}

	if p.Transform != nil {
		return c.applyTransform(node, p, settings)
	}

	v, err := coerce(node, target)
	if err != nil {
		return transform.Value{}, &Error{Op: "convert", Path: p.JSONPath, Err: err}
	}

	return v, nil
}

func (c *Compiler) applyTransform(node any, p *mapping.Property, settings *mapping.Settings) (transform.Value, error) {
	in, err := transform.FromDocument(node)
	if err != nil {
		return transform.Value{}, &Error{
			Op:   "transform",
			Path: p.JSONPath,
			Err:  fmt.Errorf("%w: %w", ErrConversion, err),
		}
	}

	params := p.Transform.Params
	if p.Transform.Name == transform.NameArrayJoin && params["delimiter"] == "" && settings != nil {
		params = maps.Clone(params)
		if params == nil {
			params = map[string]string{}
		}

		params["delimiter"] = settings.ArrayDelimiter
	}

	out, err := c.registry.Apply(p.Transform.Name, in.WithTarget(nativeType(p.TargetType)), params)
	if err != nil {
		return transform.Value{}, &Error{Op: "transform", Path: p.JSONPath, Err: err}
	}

	return out, nil
}

// nativeType maps an abstract type onto its native name, keeping unknown
// names as they are.
func nativeType(typ string) string {
	if native, ok := nql.Canonical(typ); ok {
		return native
	}

	return typ
}

// coerce converts a scalar node to target: integer types to an integer,
// DOUBLE to a float, BOOL to a boolean and anything else to a string.
func coerce(node any, target string) (transform.Value, error) {
	kind := document.KindOf(node)

	var (
		v  transform.Value
		ok bool
	)

	switch {
	case nql.IsIntegerType(target):
		v, ok = toInt(node, kind)
	case target == transform.TypeDouble:
		v, ok = toFloat(node, kind)
	case target == transform.TypeBool:
		v, ok = toBool(node, kind)
	default:
		v, ok = toString(node, kind)
	}

	if !ok {
		return transform.Value{}, fmt.Errorf("%w: %s value %v to %s", ErrConversion, kind, node, target)
	}

	return v.WithTarget(target), nil
}

func toInt(node any, kind document.Kind) (transform.Value, bool) {
	switch kind {
	case document.KindInt:
		i, ok := document.AsInt64(node)
		return transform.Int(i), ok
	case document.KindFloat:
		f, ok := document.AsFloat64(node)
		if !ok || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
			return transform.Value{}, false
		}

		return transform.Int(int64(f)), true
	case document.KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(node.(string)), 10, 64)
		return transform.Int(i), err == nil
	default:
		return transform.Value{}, false
	}
}

func toFloat(node any, kind document.Kind) (transform.Value, bool) {
	switch kind {
	case document.KindInt, document.KindFloat:
		f, ok := document.AsFloat64(node)
		return transform.Float(f), ok
	case document.KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(node.(string)), 64)
		return transform.Float(f), err == nil
	default:
		return transform.Value{}, false
	}
}

func toBool(node any, kind document.Kind) (transform.Value, bool) {
	switch kind {
	case document.KindBool:
		return transform.Bool(node.(bool)), true
	case document.KindString:
		b, err := strconv.ParseBool(strings.TrimSpace(node.(string)))
		return transform.Bool(b), err == nil
	default:
		return transform.Value{}, false
	}
}

func toString(node any, kind document.Kind) (transform.Value, bool) {
	if !kind.IsScalar() {
		return transform.Value{}, false
	}

	v, err := transform.FromDocument(node)
	if err != nil {
		return transform.Value{}, false
	}

	s, err := v.Text()

	return transform.String(s), err == nil
}

// FormatValue renders v as a literal: strings double-quoted, booleans as
// true or false, null as NULL and numbers in their shortest form.
func FormatValue(v transform.Value) (string, error) {
	if v.Null {
		return "NULL", nil
	}

	switch v.Kind {
	case transform.KindString:
		return nql.QuoteString(v.Str), nil
	case transform.KindInt:
		return strconv.FormatInt(v.Int, 10), nil
	case transform.KindFloat:
		return transform.FormatFloat(v.Float), nil
	case transform.KindBool:
		return strconv.FormatBool(v.Bool), nil
	default:
		return "", fmt.Errorf("%w: cannot format %s value", ErrConversion, v.Kind)
	}
}

// InferType returns the native type of a dynamic field from the node's own
// kind, or "" for nodes that cannot be stored as a property.
func InferType(node any) string {
	switch document.KindOf(node) {
	case document.KindBool:
		return transform.TypeBool
	case document.KindInt:
		return transform.TypeInt64
	case document.KindFloat:
		return transform.TypeDouble
	case document.KindString:
		return transform.TypeString
	default:
		return ""
	}
}
