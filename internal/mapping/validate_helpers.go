package mapping

import (
	"fmt"
	"strings"

	"nebula-mapper/internal/common"
	"nebula-mapper/internal/diagnostic"
	"nebula-mapper/internal/match"
	"nebula-mapper/internal/nql"
	"nebula-mapper/internal/transform"
)

// Abstract type names offered as suggestions for unknown types.
var typeNames = []string{
	"BOOL", "INT", "INT64", "FLOAT", "DOUBLE", "STRING", "FIXED_STRING",
	"TIMESTAMP", "DATE", "TIME", "DATETIME",
}

// Parameters the built-in transforms cannot run without.
var requiredParams = map[string][]string{
	transform.NameTimeFormat: {"format"},
}

// validateKeyPaths validates the key paths of a vertex or edge endpoint.
func validateKeyPaths(res *diagnostic.Diagnostics, paths []string, element, what string) {
	if len(paths) == 0 {
		res.AddError("missing_key_path", what+" key path cannot be empty", element, "")
		return
	}

	for _, p := range paths {
		if err := ValidatePath(p, false); err != nil {
			res.AddError("invalid_key_path", fmt.Sprintf("invalid %s key path: %v", what, err), element, p)
		}
	}
}

// validateProperties validates the declared properties of one element.
func validateProperties(
	res *diagnostic.Diagnostics,
	props []Property,
	element string,
	transforms TransformSet,
) {
	seen := map[string]struct{}{}

	for i := range props {
		p := &props[i]

		if _, dup := seen[p.Name]; dup && p.Name != "" {
			res.AddError("duplicate_property", fmt.Sprintf("duplicate property name %q", p.Name), element, p.Name)
		}

		seen[p.Name] = struct{}{}

		validateName(res, p.Name, element)

		if p.JSONPath == "" {
			res.AddError("missing_property_path", "property path (json) cannot be empty", element, p.Name)
		} else if err := ValidatePath(p.JSONPath, false); err != nil {
			res.AddError("invalid_property_path", fmt.Sprintf("invalid property path: %v", err), element, p.Name)
		}

		validateType(res, p, element)
		validateTransform(res, p, element, transforms)
	}
}

// validateType validates the abstract type and string length of a property.
func validateType(res *diagnostic.Diagnostics, p *Property, element string) {
	if p.TargetType == "" {
		res.AddError("missing_type", "property type cannot be empty", element, p.Name)
		return
	}

	if _, ok := nql.Canonical(p.TargetType); !ok {
		res.AddError("unknown_type",
			fmt.Sprintf("unknown property type %q", p.TargetType), element, p.Name,
			match.Suggest(strings.ToUpper(p.TargetType), typeNames, match.DefaultThreshold)...)

		return
	}

	switch {
	case !common.IsInRange(0, p.MaxLength, nql.MaxStringLength):
		res.AddError("invalid_max_length",
			fmt.Sprintf("max_length %d is outside 0..%d", p.MaxLength, nql.MaxStringLength), element, p.Name)
	case p.MaxLength > 0 && !p.IsString():
		res.AddWarning("max_length_ignored",
			fmt.Sprintf("max_length has no effect on type %s", p.TargetType), element, p.Name)
	}
}

// validateTransform validates the transform reference of a property.
func validateTransform(res *diagnostic.Diagnostics, p *Property, element string, transforms TransformSet) {
	if p.Transform == nil || transforms == nil {
		return
	}

	name := p.Transform.Name
	if !transforms.Has(name) {
		res.AddError("unknown_transform",
			fmt.Sprintf("transform %q is not registered", name), element, p.Name,
			match.Suggest(name, transforms.Names(), match.DefaultThreshold)...)

		return
	}

	for _, param := range requiredParams[name] {
		if p.Transform.Params[param] == "" {
			res.AddError("missing_transform_param",
				fmt.Sprintf("transform %q requires parameter %q", name, param), element, p.Name)
		}
	}
}

// validateDynamicFields validates the dynamic field policy of a tag.
func validateDynamicFields(res *diagnostic.Diagnostics, d *DynamicFieldsConfig, element string) {
	if !d.Enabled {
		if len(d.AllowedTypes) > 0 || len(d.ExcludedProperties) > 0 {
			res.AddWarning("dynamic_fields_disabled",
				"dynamic field policy is set but dynamic fields are disabled", element, "")
		}

		return
	}

	for t := range d.AllowedTypes {
		if !nql.IsNativeType(t) {
			res.AddError("invalid_dynamic_type",
				fmt.Sprintf("invalid dynamic field type %q", t), element, "",
				match.Suggest(strings.ToUpper(t), typeNames, match.DefaultThreshold)...)
		}
	}

	for name := range d.ExcludedProperties {
		if !nql.IsIdentifierSyntax(name) {
			res.AddWarning("invalid_excluded_property",
				fmt.Sprintf("excluded property %q can never match a stored property name", name), element, name)
		}
	}
}

// validateEndpoint validates one end of an edge against the declared tags.
func validateEndpoint(res *diagnostic.Diagnostics, m *GraphMapping, ep *Endpoint, element, side string) {
	if ep.TagName == "" {
		res.AddError("missing_endpoint_tag", side+" tag cannot be empty", element, "")
	} else if validateName(res, ep.TagName, element) {
		switch v, exact := ResolveTag(m, ep.TagName); {
		case v == nil:
			res.AddWarning("unknown_endpoint_tag",
				fmt.Sprintf("%s tag %q is not declared under tags", side, ep.TagName), element, ep.TagName,
				match.Suggest(ep.TagName, TagNames(m), match.DefaultThreshold)...)
		case !exact:
			res.AddWarning("endpoint_tag_case",
				fmt.Sprintf("%s tag %q differs from declared tag %q only by case", side, ep.TagName, v.TagName),
				element, ep.TagName, v.TagName)
		}
	}

	validateKeyPaths(res, ep.KeyPath, element, side)
}
