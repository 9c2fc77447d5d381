package document

import (
	"strconv"
	"strings"
)

// Segment is one step of a parsed path.
type Segment struct {
	// Raw is the segment text as written, brackets included for indexes.
	Raw string
	// Key is the object key for key segments.
	Key string
	// Index is the array position for index segments, -1 when Raw is not a
	// valid non-negative integer.
	Index int
	// IsIndex is true for "[n]" segments.
	IsIndex bool
}

func (s Segment) String() string {
	return s.Raw
}

// ParsePath splits path into segments. It never fails: malformed index
// segments are reported when they are applied.
func ParsePath(path string) []Segment {
	path = strings.TrimPrefix(path, "/")

	var segments []Segment

	for _, part := range strings.Split(path, "/") {
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				segments = append(segments, keySegment(part))
				break
			}

			closing := strings.IndexByte(part[open:], ']')
			if closing < 0 {
				segments = append(segments, keySegment(part))
				break
			}

			if open > 0 {
				segments = append(segments, keySegment(part[:open]))
			}

			end := open + closing + 1
			segments = append(segments, indexSegment(part[open:end]))
			part = part[end:]
		}
	}

	return segments
}

// JoinPath renders segments back into canonical "/a/[0]/b" form.
func JoinPath(segments []Segment) string {
	if len(segments) == 0 {
		return "/"
	}

	var sb strings.Builder
	for _, s := range segments {
		sb.WriteByte('/')
		sb.WriteString(s.Raw)
	}

	return sb.String()
}

func keySegment(raw string) Segment {
	return Segment{Raw: raw, Key: raw, Index: -1}
}

func indexSegment(raw string) Segment {
	s := Segment{Raw: raw, Index: -1, IsIndex: true}

	n, err := strconv.Atoi(raw[1 : len(raw)-1])
	if err == nil && n >= 0 {
		s.Index = n
	}

	return s
}
