package statement

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"nebula-mapper/internal/document"
	"nebula-mapper/internal/mapping"
	"nebula-mapper/internal/nql"
)

// VertexID resolves keyPaths against record and returns the quoted vertex
// ID. Parts of a composite key are joined with sep, "_" when empty.
//
//	{"a": 1, "b": "x"} with [/a, /b] gives "1_x"
func VertexID(record any, keyPaths []string, sep string) (string, error) {
	return vertexID(document.DefaultResolver(), record, keyPaths, sep)
}

func vertexID(r *document.Resolver, record any, keyPaths []string, sep string) (string, error) {
	if len(keyPaths) == 0 {
		return "", &Error{Op: "key", Err: fmt.Errorf("%w: no key path", ErrConversion)}
	}

	if sep == "" {
		sep = mapping.DefaultKeySeparator
	}

	parts := make([]string, 0, len(keyPaths))

	for _, path := range keyPaths {
		node, err := r.Resolve(record, path)
		if err != nil {
			return "", &Error{Op: "key", Path: path, Err: err}
		}

		part, err := keyPart(node)
		if err != nil {
			return "", &Error{Op: "key", Path: path, Err: err}
		}

		parts = append(parts, part)
	}

	return nql.QuoteString(strings.Join(parts, sep)), nil
}

// keyPart renders one key value: strings verbatim, numbers in decimal with
// integral floats printed as integers.
func keyPart(node any) (string, error) {
	switch kind := document.KindOf(node); kind {
	case document.KindNull:
		return "", ErrNullKey
	case document.KindString:
		return node.(string), nil
	case document.KindInt:
		if i, ok := document.AsInt64(node); ok {
			return strconv.FormatInt(i, 10), nil
		}
	case document.KindFloat:
		if f, ok := document.AsFloat64(node); ok {
			if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
				return strconv.FormatInt(int64(f), 10), nil
			}

			return strconv.FormatFloat(f, 'f', -1, 64), nil
		}
	default:
		return "", fmt.Errorf("%w: %s value cannot be a key", ErrConversion, kind)
	}

	return "", fmt.Errorf("%w: bad number %v", ErrConversion, node)
}
