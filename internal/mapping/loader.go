package mapping

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"nebula-mapper/internal/common"
	"nebula-mapper/internal/document"
	"nebula-mapper/internal/nql"
)

// Defaults applied by the loader.
const (
	DefaultKeyPath        = "/id"
	DefaultKeySeparator   = "_"
	DefaultArrayDelimiter = ","
)

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*GraphMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse parses YAML data into a GraphMapping.
func Parse(data []byte) (*GraphMapping, error) {
	var raw fileYAML

	err := yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	m, err := build(&raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(m)

	return m, nil
}

func build(raw *fileYAML) (*GraphMapping, error) {
	m := &GraphMapping{
		Settings: Settings{
			DefaultStringLength: raw.Settings.StringLength,
			ArrayDelimiter:      raw.Settings.ArrayDelimiter,
			AllowDynamicTags:    raw.Settings.DynamicTags,
			KeySeparator:        raw.Settings.KeySeparator,
		},
	}

	tags, err := orderedEntries(&raw.Tags, "tags")
	if err != nil {
		return nil, err
	}

	for _, entry := range tags {
		var t tagYAML
		if err := entry.Node.Decode(&t); err != nil {
			return nil, fmt.Errorf("tag %s: %w", entry.Name, err)
		}

		v := VertexMapping{
			TagName:    entry.Name,
			SourcePath: t.From,
			KeyPath:    t.Key,
			Properties: buildProperties(t.Properties),
		}

		switch {
		case t.DynamicFields != nil:
			v.DynamicFields = DynamicFieldsConfig{
				Enabled:            t.DynamicFields.Enabled,
				AllowedTypes:       common.Set([]string(t.DynamicFields.AllowedTypes)...),
				ExcludedProperties: common.Set([]string(t.DynamicFields.ExcludedProperties)...),
			}
		case raw.Settings.DynamicTags:
			v.DynamicFields.Enabled = true
		}

		m.Vertices = append(m.Vertices, v)
	}

	edges, err := orderedEntries(&raw.Edges, "edges")
	if err != nil {
		return nil, err
	}

	for _, entry := range edges {
		var e edgeYAML
		if err := entry.Node.Decode(&e); err != nil {
			return nil, fmt.Errorf("edge %s: %w", entry.Name, err)
		}

		em := EdgeMapping{
			EdgeName:   entry.Name,
			SourcePath: e.From,
			From:       Endpoint{TagName: e.SourceTag, KeyPath: e.SourceKey},
			To:         Endpoint{TagName: e.TargetTag, KeyPath: e.TargetKey},
			Properties: buildProperties(e.Properties),
		}

		if e.Source != nil {
			em.From = Endpoint{TagName: e.Source.Tag, KeyPath: e.Source.Key}
		}

		if e.Target != nil {
			em.To = Endpoint{TagName: e.Target.Tag, KeyPath: e.Target.Key}
		}

		m.Edges = append(m.Edges, em)
	}

	return m, nil
}

func buildProperties(raw []propertyYAML) []Property {
	props := make([]Property, 0, len(raw))

	for i := range raw {
		p := &raw[i]
		props = append(props, Property{
			Name:         p.Name,
			JSONPath:     p.JSON,
			TargetType:   p.Type,
			Optional:     p.Optional,
			Indexable:    p.Index || p.Indexable,
			MaxLength:    p.MaxLength,
			DefaultValue: p.Default,
			Transform:    p.Transform.spec(),
		})
	}

	return props
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(m *GraphMapping) {
	if m.Settings.ArrayDelimiter == "" {
		m.Settings.ArrayDelimiter = DefaultArrayDelimiter
	}

	if m.Settings.KeySeparator == "" {
		m.Settings.KeySeparator = DefaultKeySeparator
	}

	for i := range m.Vertices {
		v := &m.Vertices[i]
		if common.IsEmpty(v.KeyPath) {
			v.KeyPath = []string{DefaultKeyPath}
		}

		v.DynamicFields.AllowedTypes = canonicalTypes(v.DynamicFields.AllowedTypes)
		defaultProperties(v.Properties)
	}

	for i := range m.Edges {
		e := &m.Edges[i]
		if common.IsEmpty(e.From.KeyPath) {
			e.From.KeyPath = []string{DefaultKeyPath}
		}

		if common.IsEmpty(e.To.KeyPath) {
			e.To.KeyPath = []string{DefaultKeyPath}
		}

		defaultProperties(e.Properties)
	}
}

func defaultProperties(props []Property) {
	for i := range props {
		p := &props[i]
		if p.Name == "" {
			p.Name = DefaultPropertyName(p.JSONPath)
		}

		if p.TargetType == "" && p.Transform != nil {
			p.TargetType = transformResultTypes[p.Transform.Name]
		}
	}
}

// canonicalTypes maps allowed dynamic types onto native names. Unknown names
// are kept so that validation can report them.
func canonicalTypes(types map[string]struct{}) map[string]struct{} {
	if len(types) == 0 {
		return types
	}

	out := make(map[string]struct{}, len(types))

	for t := range types {
		if native, ok := nql.Canonical(t); ok {
			out[native] = struct{}{}
		} else {
			out[t] = struct{}{}
		}
	}

	return out
}

// DefaultPropertyName derives a property name from its document path:
// "/user/first.name" becomes "user_first_name" and "/tags/[0]" "tags_0".
func DefaultPropertyName(jsonPath string) string {
	segments := document.ParsePath(jsonPath)
	parts := make([]string, 0, len(segments))

	for _, seg := range segments {
		if seg.IsIndex && seg.Index >= 0 {
			parts = append(parts, strconv.Itoa(seg.Index))
			continue
		}

		parts = append(parts, strings.ReplaceAll(seg.Raw, ".", "_"))
	}

	return strings.Join(parts, "_")
}
