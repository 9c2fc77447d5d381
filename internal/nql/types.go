package nql

import "strings"

// MaxStringLength is the largest length a bounded string type may declare.
const MaxStringLength = 65535

// Native types understood by the store.
var nativeTypes = map[string]struct{}{
	"BOOL": {}, "INT": {}, "INT8": {}, "INT16": {}, "INT32": {}, "INT64": {},
	"FLOAT": {}, "DOUBLE": {}, "STRING": {}, "FIXED_STRING": {},
	"TIMESTAMP": {}, "DATE": {}, "TIME": {}, "DATETIME": {},
}

// Abstract names accepted in mappings and their native counterparts.
var typeSynonyms = map[string]string{
	"INT":       "INT64",
	"INTEGER":   "INT64",
	"FLOAT":     "DOUBLE",
	"DOUBLE":    "DOUBLE",
	"BOOL":      "BOOL",
	"BOOLEAN":   "BOOL",
	"TIMESTAMP": "TIMESTAMP",
	"DATE":      "DATE",
	"TIME":      "TIME",
	"DATETIME":  "DATETIME",
}

// Default lengths of the bounded string types.
var stringLengths = map[string]int{
	"STRING":       256,
	"VARCHAR":      256,
	"FIXED_STRING": 32,
}

// BaseType upper-cases typ and strips a parenthesized length, so
// "fixed_string(16)" becomes "FIXED_STRING".
func BaseType(typ string) string {
	if i := strings.IndexByte(typ, '('); i >= 0 {
		typ = typ[:i]
	}

	return strings.ToUpper(strings.TrimSpace(typ))
}

// Canonical maps an abstract or native type name onto its native name,
// ignoring case. Bounded string types are returned without a length.
func Canonical(typ string) (string, bool) {
	base := BaseType(typ)

	if _, ok := stringLengths[base]; ok {
		return base, true
	}

	if native, ok := typeSynonyms[base]; ok {
		return native, true
	}

	if _, ok := nativeTypes[base]; ok {
		return base, true
	}

	return "", false
}

// IsNativeType reports whether the base of typ is a native store type.
func IsNativeType(typ string) bool {
	_, ok := nativeTypes[BaseType(typ)]
	return ok
}

// IsStringType reports whether typ is a bounded string type.
func IsStringType(typ string) bool {
	_, ok := stringLengths[BaseType(typ)]
	return ok
}

// IsNumericType reports whether typ is an integer or floating point type.
func IsNumericType(typ string) bool {
	switch BaseType(typ) {
	case "INT", "INT8", "INT16", "INT32", "INT64", "FLOAT", "DOUBLE":
		return true
	default:
		return false
	}
}

// IsIntegerType reports whether typ is one of the integer types.
func IsIntegerType(typ string) bool {
	switch BaseType(typ) {
	case "INT", "INT8", "INT16", "INT32", "INT64", "INTEGER":
		return true
	default:
		return false
	}
}

// DefaultStringLength returns the default length for a bounded string type.
func DefaultStringLength(typ string) (int, bool) {
	n, ok := stringLengths[BaseType(typ)]
	return n, ok
}
