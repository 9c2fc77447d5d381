package document

import "sync"

// PathCache memoizes ParsePath results keyed by the raw path string.
// Returned segment slices are shared and must not be modified.
type PathCache struct {
	mu    sync.RWMutex
	paths map[string][]Segment
}

// NewPathCache returns an empty cache.
func NewPathCache() *PathCache {
	return &PathCache{paths: make(map[string][]Segment)}
}

// Segments returns the parsed form of path, parsing and storing it on first use.
func (c *PathCache) Segments(path string) []Segment {
	c.mu.RLock()
	segments, ok := c.paths[path]
	c.mu.RUnlock()

	if ok {
		return segments
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have stored it between the two locks.
	if segments, ok = c.paths[path]; ok {
		return segments
	}

	segments = ParsePath(path)
	c.paths[path] = segments

	return segments
}

// Len returns the number of cached paths.
func (c *PathCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.paths)
}

// Clear drops every cached path.
func (c *PathCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.paths)
}
