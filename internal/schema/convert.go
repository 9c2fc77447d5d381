package schema

import (
	"strconv"
	"strings"

	"nebula-mapper/internal/nql"
)

// ConvertType maps an abstract type name onto a native store type, ignoring
// case. Bounded string types get a length: length when positive, else a
// length written in typ itself, else the per-type default.
//
//	ConvertType("Integer", 0) == "INT64"
//	ConvertType("string", 64) == "STRING(64)"
func ConvertType(typ string, length int) (string, error) {
	native, ok := nql.Canonical(typ)
	if !ok {
		return "", &TypeError{Type: typ, Err: ErrUnsupportedType}
	}

	if !nql.IsStringType(native) {
		return native, nil
	}

	n, err := StringLength(typ, length)
	if err != nil {
		return "", err
	}

	return native + "(" + strconv.Itoa(n) + ")", nil
}

// StringLength resolves the length of a bounded string type the way
// ConvertType does.
func StringLength(typ string, length int) (int, error) {
	if length <= 0 {
		length = explicitLength(typ)
	}

	if length <= 0 {
		length, _ = nql.DefaultStringLength(typ)
	}

	if length > nql.MaxStringLength {
		return 0, &TypeError{Type: typ, Length: length, Err: ErrLengthExceeded}
	}

	return length, nil
}

// explicitLength parses the n of "STRING(n)", or returns zero.
func explicitLength(typ string) int {
	open := strings.IndexByte(typ, '(')
	if open < 0 || !strings.HasSuffix(typ, ")") {
		return 0
	}

	n, err := strconv.Atoi(strings.TrimSpace(typ[open+1 : len(typ)-1]))
	if err != nil {
		return 0
	}

	return n
}
