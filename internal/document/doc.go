// Package document navigates generic JSON-like document trees.
//
// A document is whatever encoding/json or gopkg.in/yaml.v3 produce when
// decoding into an empty interface: map[string]any, []any, string, bool,
// nil and numbers (json.Number, Go integers or floats).
//
// # Path Syntax
//
// Paths are slash-delimited. A segment of the form "[n]" is a zero-based
// array index applied to the current location; any other segment is an object
// key. The leading slash is optional and empty segments are ignored:
//
//	/user/name         -> doc["user"]["name"]
//	/items/[2]/price   -> doc["items"][2]["price"]
//	items[2]/price     -> same as above
//	/                  -> the document itself
//
// Parsed segment lists are cached per raw path string in a process-wide,
// read-mostly PathCache. The cache grows with the number of distinct paths
// and is never evicted; call Clear if that matters.
package document
