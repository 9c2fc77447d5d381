package transform

import (
	"fmt"
	"strings"
)

var directives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'e': "_2",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'b': "Jan",
	'h': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'j': "002",
	'z': "-0700",
	'Z': "MST",
	'T': "15:04:05",
	'D': "01/02/06",
	'F': "2006-01-02",
	'R': "15:04",
	'%': "%",
}

// parseDirectives override directives when parsing, so numeric fields take
// one or two digits.
var parseDirectives = map[byte]string{
	'm': "1",
	'd': "2",
	'I': "3",
	'M': "4",
	'S': "5",
	'T': "15:4:5",
	'D': "1/2/06",
	'F': "2006-1-2",
	'R': "15:4",
}

// layoutWords are the alphabetic Go layout elements. Together with digits
// they cannot appear in the literal text of a strptime-style format.
var layoutWords = []string{"Jan", "Mon", "MST", "PM", "pm"}

// Layout converts a strptime-style format such as "%Y-%m-%d %H:%M" into a Go
// time layout for formatting. A format without any '%' is returned unchanged
// and treated as a Go layout already. Literal text must not contain digits
// or the words Jan, Mon, MST, PM and pm.
func Layout(format string) (string, error) {
	return convertLayout(format, false)
}

// ParseLayout is Layout for parsing: %m, %d, %I, %M and %S accept one or two
// digits unless they touch another directive.
func ParseLayout(format string) (string, error) {
	return convertLayout(format, true)
}

func convertLayout(format string, parse bool) (string, error) {
	if !strings.Contains(format, "%") {
		return format, nil
	}

	var (
		sb       strings.Builder
		literal  strings.Builder
		adjacent bool
	)

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			literal.WriteByte(c)
			adjacent = false

			continue
		}

		if i+1 >= len(format) {
			return "", fmt.Errorf("%w: format %q ends with a bare %%", ErrInvalidParam, format)
		}

		i++

		layout, ok := directives[format[i]]
		if !ok {
			return "", fmt.Errorf("%w: format %q: unsupported directive %%%c", ErrInvalidParam, format, format[i])
		}

		if format[i] == '%' {
			literal.WriteByte('%')
			adjacent = false

			continue
		}

		if err := flushLiteral(&sb, &literal, format); err != nil {
			return "", err
		}

		if short, ok := parseDirectives[format[i]]; ok && parse && !adjacent && !followedByDirective(format, i) {
			// "_2" would read as the space-padded day element.
			if !(short == "2" && strings.HasSuffix(sb.String(), "_")) {
				layout = short
			}
		}

		sb.WriteString(layout)

		adjacent = true
	}

	if err := flushLiteral(&sb, &literal, format); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// followedByDirective reports whether the directive ending at i is directly
// followed by another directive.
func followedByDirective(format string, i int) bool {
	return i+2 < len(format) && format[i+1] == '%' && format[i+2] != '%'
}

func flushLiteral(sb, literal *strings.Builder, format string) error {
	text := literal.String()
	literal.Reset()

	if strings.ContainsAny(text, "0123456789") {
		return fmt.Errorf("%w: format %q: literal %q contains digits", ErrInvalidParam, format, text)
	}

	for _, word := range layoutWords {
		if strings.Contains(text, word) {
			return fmt.Errorf("%w: format %q: literal %q contains layout element %q", ErrInvalidParam, format, text, word)
		}
	}

	sb.WriteString(text)

	return nil
}
