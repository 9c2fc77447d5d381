package mapping

import (
	"errors"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"

	"nebula-mapper/internal/common"
	"nebula-mapper/internal/transform"
)

// TransformSpec names a transform and its parameters.
type TransformSpec struct {
	Name   string
	Params map[string]string
}

// Param returns the parameter value, or def when it is missing or empty.
func (t *TransformSpec) Param(key, def string) string {
	if v := t.Params[key]; v != "" {
		return v
	}

	return def
}

// transformYAML accepts:
//   - a bare name: "string_normalize"
//   - a descriptor: {type: time_format, params: {format: "%Y-%m-%d"}}
//   - a descriptor with inline params: {type: array_join, delimiter: "|"}
type transformYAML struct {
	Name   string
	Params map[string]string
}

// UnmarshalYAML implements yaml.Unmarshaler for transformYAML.
func (t *transformYAML) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&t.Name)

	case yaml.MappingNode:
		var raw map[string]any
		if err := node.Decode(&raw); err != nil {
			return err
		}

		t.Params = map[string]string{}

		for key, value := range raw {
			switch key {
			case "type", "name":
				name, ok := value.(string)
				if !ok {
					return fmt.Errorf("transform %s must be a string (line %d)", key, node.Line)
				}

				t.Name = name
			case "params":
				params, ok := value.(map[string]any)
				if !ok {
					return fmt.Errorf("transform params must be a map (line %d)", node.Line)
				}

				for k, v := range params {
					t.Params[k] = fmt.Sprint(v)
				}
			default:
				t.Params[key] = fmt.Sprint(value)
			}
		}

		if t.Name == "" {
			return fmt.Errorf("transform descriptor needs a type (line %d)", node.Line)
		}

		return nil

	case yaml.SequenceNode:
		return fmt.Errorf("positional transform rule lists are not supported, use {type, params} (line %d)", node.Line)

	default:
		return errors.New("expected transform name or {type, params}")
	}
}

func (t *transformYAML) spec() *TransformSpec {
	if t == nil {
		return nil
	}

	return &TransformSpec{Name: t.Name, Params: maps.Clone(t.Params)}
}

// Native types produced by the built-in transforms, used when a property
// with a transform leaves its type out.
var transformResultTypes = map[string]string{
	transform.NameTimeFormat:      transform.TypeTimestamp,
	transform.NamePriceNormalize:  transform.TypeInt64,
	transform.NameStringNormalize: transform.TypeString,
	transform.NameArrayJoin:       transform.TypeString,
	transform.NameToBoolean:       transform.TypeBool,
}

// ReferencedTransforms returns the sorted names of every transform used by m.
func ReferencedTransforms(m *GraphMapping) []string {
	names := map[string]struct{}{}

	collect := func(props []Property) {
		for i := range props {
			if props[i].Transform != nil {
				names[props[i].Transform.Name] = struct{}{}
			}
		}
	}

	for i := range m.Vertices {
		collect(m.Vertices[i].Properties)
	}

	for i := range m.Edges {
		collect(m.Edges[i].Properties)
	}

	return common.SortedKeys(names)
}
