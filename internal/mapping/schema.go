package mapping

import (
	"slices"

	"nebula-mapper/internal/nql"
)

// GraphMapping is the root of a mapping definition. It is built once by the
// loader and must not be modified while statements are compiled from it.
type GraphMapping struct {
	// Vertices in declaration order.
	Vertices []VertexMapping
	// Edges in declaration order.
	Edges []EdgeMapping
	// Settings apply to the whole mapping.
	Settings Settings
}

// Settings holds mapping-wide options.
type Settings struct {
	// DefaultStringLength is used for string properties without MaxLength.
	// Zero selects the per-type default.
	DefaultStringLength int
	// ArrayDelimiter is the array_join delimiter when a property gives none.
	ArrayDelimiter string
	// AllowDynamicTags enables dynamic fields for every tag that does not
	// configure them explicitly.
	AllowDynamicTags bool
	// KeySeparator joins the parts of a composite vertex key.
	KeySeparator string
}

// VertexMapping describes how records become vertices of one tag.
type VertexMapping struct {
	TagName string
	// SourcePath locates one record or an array of records.
	SourcePath string
	// KeyPath holds one path per key part, relative to a record.
	KeyPath       []string
	Properties    []Property
	DynamicFields DynamicFieldsConfig
}

// EdgeMapping describes how records become edges of one type.
type EdgeMapping struct {
	EdgeName   string
	SourcePath string
	From       Endpoint
	To         Endpoint
	Properties []Property
}

// Endpoint names the tag at one end of an edge and how to find its vertex ID.
type Endpoint struct {
	TagName string
	KeyPath []string
}

// Property maps a document location onto a stored property.
type Property struct {
	Name     string
	JSONPath string
	// TargetType is the abstract type name (INT, STRING, ...).
	TargetType string
	Optional   bool
	Indexable  bool
	// MaxLength overrides the string length, zero means unset.
	MaxLength    int
	DefaultValue *string
	Transform    *TransformSpec
}

// DynamicFieldsConfig admits undeclared record fields as properties.
type DynamicFieldsConfig struct {
	Enabled bool
	// AllowedTypes holds native type names; empty allows every type.
	AllowedTypes       map[string]struct{}
	ExcludedProperties map[string]struct{}
}

// Allows reports whether a dynamic field of the given native type is admitted.
func (d DynamicFieldsConfig) Allows(nativeType string) bool {
	if len(d.AllowedTypes) == 0 {
		return true
	}

	_, ok := d.AllowedTypes[nativeType]

	return ok
}

// Excludes reports whether the field is never stored dynamically.
func (d DynamicFieldsConfig) Excludes(field string) bool {
	_, ok := d.ExcludedProperties[field]
	return ok
}

// PropertyNames returns the names of the declared properties, in order.
func PropertyNames(props []Property) []string {
	names := make([]string, len(props))
	for i := range props {
		names[i] = props[i].Name
	}

	return names
}

// IsString reports whether the property has a bounded string type.
func (p *Property) IsString() bool {
	return nql.IsStringType(p.TargetType)
}

// Vertex returns the vertex mapping for tag, or nil.
func (m *GraphMapping) Vertex(tag string) *VertexMapping {
	i := slices.IndexFunc(m.Vertices, func(v VertexMapping) bool { return v.TagName == tag })
	if i < 0 {
		return nil
	}

	return &m.Vertices[i]
}

// Edge returns the edge mapping called name, or nil.
func (m *GraphMapping) Edge(name string) *EdgeMapping {
	i := slices.IndexFunc(m.Edges, func(e EdgeMapping) bool { return e.EdgeName == name })
	if i < 0 {
		return nil
	}

	return &m.Edges[i]
}
