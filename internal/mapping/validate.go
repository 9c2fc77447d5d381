package mapping

import (
	"fmt"

	"nebula-mapper/internal/common"
	"nebula-mapper/internal/diagnostic"
	"nebula-mapper/internal/nql"
)

// TransformSet is the set of transforms a mapping may reference.
// *transform.Registry satisfies it.
type TransformSet interface {
	Has(name string) bool
	Names() []string
}

// Validate checks a mapping for problems that would make schema generation or
// statement compilation fail, plus likely mistakes reported as warnings.
// A nil transforms set skips transform checks.
func Validate(m *GraphMapping, transforms TransformSet) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if m == nil {
		res.AddError("mapping_is_nil", "mapping is nil", "", "")
		return res
	}

	if len(m.Vertices) == 0 && len(m.Edges) == 0 {
		res.AddWarning("empty_mapping", "mapping declares no tags and no edges", "", "")
	}

	validateSettings(res, &m.Settings)

	seenTags := map[string]struct{}{}

	for i := range m.Vertices {
		v := &m.Vertices[i]
		element := "tag:" + v.TagName

		if _, dup := seenTags[v.TagName]; dup {
			res.AddError("duplicate_tag", fmt.Sprintf("tag %q declared more than once", v.TagName), element, "")
		}

		seenTags[v.TagName] = struct{}{}

		validateName(res, v.TagName, element)
		validateSourcePath(res, v.SourcePath, element)
		validateKeyPaths(res, v.KeyPath, element, "key")
		validateProperties(res, v.Properties, element, transforms)
		validateDynamicFields(res, &v.DynamicFields, element)
	}

	seenEdges := map[string]struct{}{}

	for i := range m.Edges {
		e := &m.Edges[i]
		element := "edge:" + e.EdgeName

		if _, dup := seenEdges[e.EdgeName]; dup {
			res.AddError("duplicate_edge", fmt.Sprintf("edge %q declared more than once", e.EdgeName), element, "")
		}

		seenEdges[e.EdgeName] = struct{}{}

		validateName(res, e.EdgeName, element)
		validateSourcePath(res, e.SourcePath, element)
		validateEndpoint(res, m, &e.From, element, "source")
		validateEndpoint(res, m, &e.To, element, "target")
		validateProperties(res, e.Properties, element, transforms)
	}

	return res
}

func validateSettings(res *diagnostic.Diagnostics, s *Settings) {
	if !common.IsInRange(0, s.DefaultStringLength, nql.MaxStringLength) {
		res.AddError("invalid_string_length",
			fmt.Sprintf("settings.string_length %d is outside 0..%d", s.DefaultStringLength, nql.MaxStringLength),
			"settings", "string_length")
	}
}

// validateName checks a tag, edge or property name.
func validateName(res *diagnostic.Diagnostics, name, element string) bool {
	switch {
	case name == "":
		res.AddError("missing_name", "name cannot be empty", element, "")
	case len(name) > nql.MaxIdentifierLength:
		res.AddError("name_too_long",
			fmt.Sprintf("name %q is longer than %d characters", name, nql.MaxIdentifierLength), element, name)
	case !nql.IsIdentifierSyntax(name):
		res.AddError("invalid_name",
			fmt.Sprintf("name %q must start with a letter or underscore and contain only letters, digits and underscores", name),
			element, name)
	case nql.IsReserved(name):
		res.AddError("reserved_name", fmt.Sprintf("name %q is a reserved keyword", name), element, name)
	default:
		return true
	}

	return false
}

func validateSourcePath(res *diagnostic.Diagnostics, path, element string) {
	if path == "" {
		res.AddError("missing_source_path", "source path (from) cannot be empty", element, "")
		return
	}

	if err := ValidatePath(path, true); err != nil {
		res.AddError("invalid_source_path", fmt.Sprintf("invalid source path: %v", err), element, path)
	}
}
