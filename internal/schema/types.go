package schema

import (
	"maps"
	"slices"
)

// Element is the schema of one tag or edge type.
type Element struct {
	Name   string
	IsEdge bool
	// Properties in declaration order; names are unique.
	Properties []Property
	// FromTags and ToTags hold the admissible endpoint tags of an edge.
	FromTags map[string]struct{}
	ToTags   map[string]struct{}
}

// Property is one stored property of an element.
type Property struct {
	Name string
	// Type is the native type, with length for bounded strings.
	Type      string
	Nullable  bool
	Indexable bool
	Default   *string
	// FixedLength is the declared length of a bounded string, zero otherwise.
	FixedLength int
}

// Kind returns the statement keyword for the element.
func (e *Element) Kind() string {
	if e.IsEdge {
		return "EDGE"
	}

	return "TAG"
}

// Property returns the property called name, or nil.
func (e *Element) Property(name string) *Property {
	i := slices.IndexFunc(e.Properties, func(p Property) bool { return p.Name == name })
	if i < 0 {
		return nil
	}

	return &e.Properties[i]
}

// Clone returns a deep copy of e.
func (e *Element) Clone() Element {
	out := *e
	out.Properties = slices.Clone(e.Properties)
	out.FromTags = maps.Clone(e.FromTags)
	out.ToTags = maps.Clone(e.ToTags)

	for i := range out.Properties {
		if d := out.Properties[i].Default; d != nil {
			v := *d
			out.Properties[i].Default = &v
		}
	}

	return out
}
