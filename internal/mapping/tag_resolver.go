package mapping

import "strings"

// ResolveTag finds the vertex mapping an edge endpoint refers to:
// - "Place" (exact tag name)
// - "place" (case-insensitive fallback, exact is false)
// It returns nil when neither matches.
func ResolveTag(m *GraphMapping, name string) (v *VertexMapping, exact bool) {
	if name == "" {
		return nil, false
	}

	if v := m.Vertex(name); v != nil {
		return v, true
	}

	for i := range m.Vertices {
		if strings.EqualFold(m.Vertices[i].TagName, name) {
			return &m.Vertices[i], false
		}
	}

	return nil, false
}

// TagNames returns the declared tag names in declaration order.
func TagNames(m *GraphMapping) []string {
	names := make([]string, len(m.Vertices))
	for i := range m.Vertices {
		names[i] = m.Vertices[i].TagName
	}

	return names
}
