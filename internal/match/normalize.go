package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy matching: it lowercases
// the input and drops separators (_, -, space, /, .), so that "user_id",
// "UserID" and "/user-id" all normalize to "userid".
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '/', '.':
		return true
	default:
		return false
	}
}
