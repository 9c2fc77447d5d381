package mapping

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// fileYAML is the on-disk shape of a mapping file. Tags and edges stay as raw
// nodes so that their declaration order survives decoding.
type fileYAML struct {
	Settings settingsYAML `yaml:"settings"`
	Tags     yaml.Node    `yaml:"tags"`
	Edges    yaml.Node    `yaml:"edges"`
}

type settingsYAML struct {
	StringLength   int    `yaml:"string_length"`
	ArrayDelimiter string `yaml:"array_delimiter"`
	DynamicTags    bool   `yaml:"dynamic_tags"`
	KeySeparator   string `yaml:"key_separator"`
}

type tagYAML struct {
	From          string             `yaml:"from"`
	Key           StringArray        `yaml:"key"`
	DynamicFields *dynamicFieldsYAML `yaml:"dynamic_fields"`
	Properties    []propertyYAML     `yaml:"properties"`
}

type edgeYAML struct {
	From       string         `yaml:"from"`
	Source     *endpointYAML  `yaml:"source"`
	Target     *endpointYAML  `yaml:"target"`
	SourceTag  string         `yaml:"source_tag"`
	SourceKey  StringArray    `yaml:"source_key"`
	TargetTag  string         `yaml:"target_tag"`
	TargetKey  StringArray    `yaml:"target_key"`
	Properties []propertyYAML `yaml:"properties"`
}

type endpointYAML struct {
	Tag string      `yaml:"tag"`
	Key StringArray `yaml:"key"`
}

type propertyYAML struct {
	JSON      string         `yaml:"json"`
	Name      string         `yaml:"name"`
	Type      string         `yaml:"type"`
	Optional  bool           `yaml:"optional"`
	Index     bool           `yaml:"index"`
	Indexable bool           `yaml:"indexable"`
	MaxLength int            `yaml:"max_length"`
	Default   *string        `yaml:"default"`
	Transform *transformYAML `yaml:"transform"`
}

// namedNode is one "name: {...}" entry of the tags or edges section.
type namedNode struct {
	Name string
	Node *yaml.Node
}

// orderedEntries lists the entries of a mapping node in document order.
// A zero node (section absent) yields no entries.
func orderedEntries(node *yaml.Node, section string) ([]namedNode, error) {
	if node.Kind == 0 {
		return nil, nil
	}

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: expected a map of name to definition (line %d)", section, node.Line)
	}

	entries := make([]namedNode, 0, len(node.Content)/2)
	seen := make(map[string]int, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return nil, fmt.Errorf("%s: invalid name at line %d: %w", section, node.Content[i].Line, err)
		}

		if line, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s: %q declared twice (lines %d and %d)", section, name, line, node.Content[i].Line)
		}

		seen[name] = node.Content[i].Line
		entries = append(entries, namedNode{Name: name, Node: node.Content[i+1]})
	}

	return entries, nil
}

// --- StringArray YAML methods ---

// StringArray accepts either a single string or a list of strings.
type StringArray []string

// UnmarshalYAML implements yaml.Unmarshaler for StringArray.
func (s *StringArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}

		if single == "" {
			*s = StringArray{}
		} else {
			*s = StringArray{single}
		}

		return nil

	case yaml.SequenceNode:
		var multi []string
		if err := node.Decode(&multi); err != nil {
			return err
		}

		*s = multi

		return nil

	default:
		return errors.New("expected string or list of strings")
	}
}

// --- dynamic fields YAML methods ---

// dynamicFieldsYAML accepts either a boolean or
// {enabled, allowed_types, excluded_properties}.
type dynamicFieldsYAML struct {
	Enabled            bool
	AllowedTypes       StringArray
	ExcludedProperties StringArray
}

// UnmarshalYAML implements yaml.Unmarshaler for dynamicFieldsYAML.
func (d *dynamicFieldsYAML) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&d.Enabled)

	case yaml.MappingNode:
		var raw struct {
			Enabled            *bool       `yaml:"enabled"`
			AllowedTypes       StringArray `yaml:"allowed_types"`
			ExcludedProperties StringArray `yaml:"excluded_properties"`
		}

		if err := node.Decode(&raw); err != nil {
			return err
		}

		// A policy block without an explicit flag turns the feature on.
		d.Enabled = raw.Enabled == nil || *raw.Enabled
		d.AllowedTypes = raw.AllowedTypes
		d.ExcludedProperties = raw.ExcludedProperties

		return nil

	default:
		return fmt.Errorf("dynamic_fields must be a boolean or a map (line %d)", node.Line)
	}
}
