package nql

import "strings"

// MaxIdentifierLength bounds tag, edge and property names.
const MaxIdentifierLength = 128

var reservedKeywords = map[string]struct{}{
	"SPACE": {}, "TAG": {}, "EDGE": {}, "VERTEX": {}, "INDEX": {},
	"INSERT": {}, "UPDATE": {}, "DELETE": {}, "WHERE": {}, "YIELD": {},
}

// IsReserved reports whether name is a reserved keyword, ignoring case.
func IsReserved(name string) bool {
	_, ok := reservedKeywords[strings.ToUpper(name)]
	return ok
}

// IsIdentifierSyntax reports whether name matches [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifierSyntax(name string) bool {
	return name != "" && !NeedsQuoting(name)
}

// IndexName returns the name of the index on element.property.
func IndexName(element, property string) string {
	return element + "_" + property + "_idx"
}
