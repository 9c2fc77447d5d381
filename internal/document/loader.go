package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format is the serialization of an input document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks a format from the file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads and decodes the document at path.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	doc, err := Decode(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Decode reads exactly one document from r.
func Decode(r io.Reader, format Format) (any, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(r)
	default:
		return decodeJSON(r)
	}
}

func decodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON document: %w", err)
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to parse JSON document: trailing data after top-level value")
	}

	return doc, nil
}

func decodeYAML(r io.Reader) (any, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML document: %w", err)
	}

	return normalizeYAML(doc), nil
}

// normalizeYAML rewrites yaml.v3 results into the shapes KindOf understands.
func normalizeYAML(v any) any {
	switch n := v.(type) {
	case map[string]any:
		for k, child := range n {
			n[k] = normalizeYAML(child)
		}

		return n
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, child := range n {
			out[fmt.Sprint(k)] = normalizeYAML(child)
		}

		return out
	case []any:
		for i, child := range n {
			n[i] = normalizeYAML(child)
		}

		return n
	case time.Time:
		return n.Format(time.RFC3339)
	default:
		return v
	}
}
