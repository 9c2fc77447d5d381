package mapping

import (
	"errors"
	"fmt"

	"nebula-mapper/internal/document"
)

// ValidatePath checks the syntax of a document path. Source paths are
// resolved against the whole document and must be absolute.
func ValidatePath(path string, absolute bool) error {
	if path == "" {
		return errors.New("empty path")
	}

	if absolute && path[0] != '/' {
		return fmt.Errorf("path %q must start with '/'", path)
	}

	depth := 0

	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '[':
			depth++
			if depth > 1 {
				return fmt.Errorf("path %q: nested '[' at offset %d", path, i)
			}
		case ']':
			depth--
			if depth < 0 {
				return fmt.Errorf("path %q: unbalanced ']' at offset %d", path, i)
			}
		}
	}

	if depth != 0 {
		return fmt.Errorf("path %q: unclosed '['", path)
	}

	for _, seg := range document.ParsePath(path) {
		if seg.IsIndex && seg.Index < 0 {
			return fmt.Errorf("path %q: invalid array index %s", path, seg.Raw)
		}
	}

	return nil
}
