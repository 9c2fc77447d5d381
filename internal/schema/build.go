package schema

import (
	"errors"
	"strings"

	"nebula-mapper/internal/common"
	"nebula-mapper/internal/mapping"
	"nebula-mapper/internal/nql"
)

// BuildVertexElement derives the schema of a tag from its mapping.
func BuildVertexElement(v *mapping.VertexMapping, settings *mapping.Settings) (Element, error) {
	e := Element{Name: v.TagName}

	if err := buildProperties(&e, v.Properties, settings); err != nil {
		return Element{}, err
	}

	return e, nil
}

// BuildEdgeElement derives the schema of an edge type from its mapping. The
// endpoint tags become the edge constraints.
func BuildEdgeElement(em *mapping.EdgeMapping, settings *mapping.Settings) (Element, error) {
	e := Element{
		Name:     em.EdgeName,
		IsEdge:   true,
		FromTags: common.Set(em.From.TagName),
		ToTags:   common.Set(em.To.TagName),
	}

	if err := buildProperties(&e, em.Properties, settings); err != nil {
		return Element{}, err
	}

	return e, nil
}

// Elements derives the schema of every tag, then of every edge.
func Elements(m *mapping.GraphMapping) ([]Element, error) {
	elements := make([]Element, 0, len(m.Vertices)+len(m.Edges))

	for i := range m.Vertices {
		e, err := BuildVertexElement(&m.Vertices[i], &m.Settings)
		if err != nil {
			return nil, err
		}

		elements = append(elements, e)
	}

	for i := range m.Edges {
		e, err := BuildEdgeElement(&m.Edges[i], &m.Settings)
		if err != nil {
			return nil, err
		}

		elements = append(elements, e)
	}

	return elements, nil
}

func buildProperties(e *Element, props []mapping.Property, settings *mapping.Settings) error {
	if err := checkIdentifier("", e.Name); err != nil {
		return err
	}

	e.Properties = make([]Property, 0, len(props))

	for i := range props {
		p, err := buildProperty(&props[i], settings)
		if err != nil {
			var typeErr *TypeError
			if errors.As(err, &typeErr) {
				typeErr.Element = strings.ToLower(e.Kind()) + " " + e.Name
			}

			return err
		}

		e.Properties = append(e.Properties, p)
	}

	return ValidateElement(e)
}

func buildProperty(p *mapping.Property, settings *mapping.Settings) (Property, error) {
	length := p.MaxLength
	if length <= 0 && explicitLength(p.TargetType) <= 0 {
		length = settings.DefaultStringLength
	}

	typ, err := ConvertType(p.TargetType, length)
	if err != nil {
		var typeErr *TypeError
		if errors.As(err, &typeErr) {
			typeErr.Property = p.Name
		}

		return Property{}, err
	}

	out := Property{
		Name:      p.Name,
		Type:      typ,
		Nullable:  p.Optional,
		Indexable: p.Indexable,
		Default:   p.DefaultValue,
	}

	if nql.IsStringType(typ) {
		out.FixedLength = explicitLength(typ)
	}

	return out, nil
}
