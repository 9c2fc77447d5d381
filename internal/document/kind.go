package document

import (
	"encoding/json"
	"strconv"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a node of a generic document tree.
type Kind int

const (
	KindInvalid Kind = iota // not a document value (e.g. a Go struct)
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// IsScalar reports whether the kind is a bool, number or string.
func (k Kind) IsScalar() bool {
	switch k {
	case KindBool, KindInt, KindFloat, KindString:
		return true
	default:
		return false
	}
}

// IsNumber reports whether the kind is an integer or a float.
func (k Kind) IsNumber() bool {
	return k == KindInt || k == KindFloat
}

// KindOf classifies v. A json.Number is an integer when it parses as int64,
// otherwise it is a float.
func KindOf(v any) Kind {
	switch n := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case string:
		return KindString
	case json.Number:
		if _, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return KindInt
		}

		return KindFloat
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindInvalid
	}
}

// AsInt64 returns v as an int64 when it is an integer node, or a float node
// without a fractional part.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, true
		}

		f, err := n.Float64()
		if err != nil || f != float64(int64(f)) {
			return 0, false
		}

		return int64(f), true
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), n <= uint(1<<63-1)
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= 1<<63-1
	case float32:
		return int64(n), float32(int64(n)) == n
	case float64:
		return int64(n), float64(int64(n)) == n
	default:
		return 0, false
	}
}

// AsFloat64 returns v as a float64 when it is a number node.
func AsFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}

	if i, ok := AsInt64(v); ok {
		return float64(i), true
	}

	return 0, false
}
