package common

import (
	"cmp"
	"maps"
	"slices"
)

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// Set builds a membership set from the given values.
func Set[E comparable](values ...E) map[E]struct{} {
	set := make(map[E]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}
