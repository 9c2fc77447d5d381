package schema

import (
	"fmt"
	"maps"
	"strconv"

	"nebula-mapper/internal/nql"
)

// Merge combines two fragments of the same tag or edge. Properties of update
// missing from existing are appended. For shared properties nullability is
// OR'd, a default in update replaces the existing one and the larger fixed
// length wins. Edge constraints are unioned. Neither input is modified.
func Merge(existing, update *Element) (Element, error) {
	if existing.Name != update.Name || existing.IsEdge != update.IsEdge {
		return Element{}, fmt.Errorf("%w: %s %s vs %s %s", ErrElementMismatch,
			existing.Kind(), existing.Name, update.Kind(), update.Name)
	}

	merged := existing.Clone()

	for _, p := range update.Clone().Properties {
		current := merged.Property(p.Name)
		if current == nil {
			merged.Properties = append(merged.Properties, p)
			continue
		}

		current.Nullable = current.Nullable || p.Nullable

		if p.Default != nil {
			current.Default = p.Default
		}

		if p.FixedLength > current.FixedLength && nql.IsStringType(current.Type) {
			current.FixedLength = p.FixedLength
			current.Type = nql.BaseType(current.Type) + "(" + strconv.Itoa(p.FixedLength) + ")"
		}
	}

	if merged.IsEdge {
		merged.FromTags = union(merged.FromTags, update.FromTags)
		merged.ToTags = union(merged.ToTags, update.ToTags)
	}

	return merged, nil
}

func union(a, b map[string]struct{}) map[string]struct{} {
	if a == nil {
		a = make(map[string]struct{}, len(b))
	}

	maps.Copy(a, b)

	return a
}
