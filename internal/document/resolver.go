package document

var defaultResolver = NewResolver(nil)

// Resolver navigates documents by path using a segment cache.
type Resolver struct {
	cache *PathCache
}

// NewResolver returns a resolver backed by cache. A nil cache means a fresh
// private one.
func NewResolver(cache *PathCache) *Resolver {
	if cache == nil {
		cache = NewPathCache()
	}

	return &Resolver{cache: cache}
}

// DefaultResolver returns the process-wide resolver used by the package-level
// functions.
func DefaultResolver() *Resolver {
	return defaultResolver
}

// Cache exposes the resolver's segment cache.
func (r *Resolver) Cache() *PathCache {
	return r.cache
}

// Resolve returns the value at path inside doc.
func (r *Resolver) Resolve(doc any, path string) (any, error) {
	current := doc

	for _, seg := range r.cache.Segments(path) {
		if seg.IsIndex {
			arr, ok := current.([]any)
			if !ok {
				return nil, &PathError{
					Kind: TypeMismatch, Path: path, Segment: seg.Raw,
					Expected: KindArray, Actual: KindOf(current),
				}
			}

			if seg.Index < 0 {
				return nil, &PathError{Kind: InvalidIndex, Path: path, Segment: seg.Raw}
			}

			if seg.Index >= len(arr) {
				return nil, &PathError{
					Kind: IndexOutOfBounds, Path: path, Segment: seg.Raw,
					Index: seg.Index, Length: len(arr),
				}
			}

			current = arr[seg.Index]

			continue
		}

		obj, ok := current.(map[string]any)
		if !ok {
			return nil, &PathError{
				Kind: TypeMismatch, Path: path, Segment: seg.Raw,
				Expected: KindObject, Actual: KindOf(current),
			}
		}

		next, ok := obj[seg.Key]
		if !ok {
			return nil, &PathError{Kind: NotFound, Path: path, Segment: seg.Raw}
		}

		current = next
	}

	return current, nil
}

// Has reports whether path resolves inside doc.
func (r *Resolver) Has(doc any, path string) bool {
	_, err := r.Resolve(doc, path)
	return err == nil
}

// ArrayOrSingle resolves path and returns the elements of an array, or the
// value wrapped in a one-element slice otherwise.
func (r *Resolver) ArrayOrSingle(doc any, path string) ([]any, error) {
	v, err := r.Resolve(doc, path)
	if err != nil {
		return nil, err
	}

	if arr, ok := v.([]any); ok {
		return arr, nil
	}

	return []any{v}, nil
}

// Resolve resolves path with the default resolver.
func Resolve(doc any, path string) (any, error) {
	return defaultResolver.Resolve(doc, path)
}

// Has reports whether path resolves with the default resolver.
func Has(doc any, path string) bool {
	return defaultResolver.Has(doc, path)
}

// ArrayOrSingle calls ArrayOrSingle on the default resolver.
func ArrayOrSingle(doc any, path string) ([]any, error) {
	return defaultResolver.ArrayOrSingle(doc, path)
}
