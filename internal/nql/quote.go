package nql

import "strings"

// Quoter renders an identifier for inclusion in a statement.
type Quoter func(identifier string) string

// NeedsQuoting reports whether identifier must be back-tick quoted: its first
// character is not an ASCII letter or underscore, or a later character is not
// an ASCII letter, digit or underscore. The empty string needs no quoting.
func NeedsQuoting(identifier string) bool {
	for i := 0; i < len(identifier); i++ {
		c := identifier[i]

		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return true
		}
	}

	return false
}

// QuoteIdentifier back-tick quotes identifier only when NeedsQuoting says so.
func QuoteIdentifier(identifier string) string {
	if NeedsQuoting(identifier) {
		return EscapeIdentifier(identifier)
	}

	return identifier
}

// EscapeIdentifier always back-tick quotes identifier.
func EscapeIdentifier(identifier string) string {
	return "`" + identifier + "`"
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// QuoteString renders s as a double-quoted string literal.
func QuoteString(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

// JoinValues joins rendered items with ", ".
func JoinValues(items []string) string {
	return strings.Join(items, ", ")
}

// QuoteAll applies quote to every identifier.
func QuoteAll(identifiers []string, quote Quoter) []string {
	out := make([]string, len(identifiers))
	for i, id := range identifiers {
		out[i] = quote(id)
	}

	return out
}
