package schema

import (
	"strconv"
	"strings"

	"nebula-mapper/internal/mapping"
	"nebula-mapper/internal/nql"
)

const ttlClause = `ttl_duration = 0, ttl_col = ""`

// GenerateStatements returns one CREATE statement per tag, then per edge,
// each followed by a CREATE INDEX statement for every indexable property.
func GenerateStatements(m *mapping.GraphMapping) ([]string, error) {
	elements, err := Elements(m)
	if err != nil {
		return nil, err
	}

	var stmts []string

	for i := range elements {
		e := &elements[i]
		stmts = append(stmts, CreateStatement(e))

		for j := range e.Properties {
			if e.Properties[j].Indexable {
				stmts = append(stmts, IndexStatement(e, &e.Properties[j]))
			}
		}
	}

	return stmts, nil
}

// GenerateIndexStatements returns only the index statements. Indexable
// properties whose type is neither numeric nor a string are skipped.
func GenerateIndexStatements(m *mapping.GraphMapping) ([]string, error) {
	elements, err := Elements(m)
	if err != nil {
		return nil, err
	}

	var stmts []string

	for i := range elements {
		e := &elements[i]

		for j := range e.Properties {
			p := &e.Properties[j]
			if !p.Indexable || !(nql.IsNumericType(p.Type) || nql.IsStringType(p.Type)) {
				continue
			}

			stmts = append(stmts, IndexStatement(e, p))
		}
	}

	return stmts, nil
}

// GenerateCleanupStatements drops the index of every property of every tag
// and edge, then the tags and edges themselves.
func GenerateCleanupStatements(m *mapping.GraphMapping) []string {
	var stmts []string

	for _, v := range m.Vertices {
		for _, p := range v.Properties {
			stmts = append(stmts, dropIndex("TAG", v.TagName, p.Name))
		}
	}

	for _, e := range m.Edges {
		for _, p := range e.Properties {
			stmts = append(stmts, dropIndex("EDGE", e.EdgeName, p.Name))
		}
	}

	for _, v := range m.Vertices {
		stmts = append(stmts, "DROP TAG IF EXISTS "+nql.EscapeIdentifier(v.TagName)+";")
	}

	for _, e := range m.Edges {
		stmts = append(stmts, "DROP EDGE IF EXISTS "+nql.EscapeIdentifier(e.EdgeName)+";")
	}

	return stmts
}

// CreateStatement renders the CREATE TAG or CREATE EDGE statement of e.
func CreateStatement(e *Element) string {
	var sb strings.Builder

	sb.WriteString("CREATE " + e.Kind() + " IF NOT EXISTS " + nql.EscapeIdentifier(e.Name) + " (\n")

	for i, p := range e.Properties {
		if i > 0 {
			sb.WriteString(",\n")
		}

		sb.WriteString("    " + nql.EscapeIdentifier(p.Name) + " " + p.Type)

		if !p.Nullable {
			sb.WriteString(" NOT NULL")
		}

		if p.Default != nil {
			sb.WriteString(" DEFAULT " + formatDefault(&p))
		}
	}

	sb.WriteString("\n) " + ttlClause + ";")

	return sb.String()
}

// IndexStatement renders the CREATE INDEX statement for property p of e.
// String properties are indexed over their declared length.
func IndexStatement(e *Element, p *Property) string {
	column := nql.EscapeIdentifier(p.Name)
	if nql.IsStringType(p.Type) && p.FixedLength > 0 {
		column += "(" + strconv.Itoa(p.FixedLength) + ")"
	}

	return "CREATE " + e.Kind() + " INDEX IF NOT EXISTS " +
		nql.EscapeIdentifier(nql.IndexName(e.Name, p.Name)) +
		" ON " + nql.EscapeIdentifier(e.Name) + "(" + column + ");"
}

func dropIndex(kind, element, property string) string {
	return "DROP " + kind + " INDEX IF EXISTS " + nql.EscapeIdentifier(nql.IndexName(element, property)) + ";"
}

// formatDefault quotes the default of a string property unless it is
// already a quoted literal. Other defaults are expressions and pass through.
func formatDefault(p *Property) string {
	v := *p.Default
	if !nql.IsStringType(p.Type) || isQuoted(v) {
		return v
	}

	return nql.QuoteString(v)
}

func isQuoted(s string) bool {
	return len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0]
}
