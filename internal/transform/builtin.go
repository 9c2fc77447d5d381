package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"nebula-mapper/internal/common"

	"golang.org/x/text/runes"
	xtransform "golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Built-in transform names.
const (
	NameTimeFormat      = "time_format"
	NamePriceNormalize  = "price_normalize"
	NameStringNormalize = "string_normalize"
	NameArrayJoin       = "array_join"
	NameToBoolean       = "to_boolean"
)

// DefaultDelimiter is the array_join delimiter when none is given.
const DefaultDelimiter = ","

// DefaultTimeLayout is the time_format output layout.
const DefaultTimeLayout = "2006-01-02 15:04:05"

var builtins = map[string]Func{
	NameTimeFormat:      timeFormat,
	NamePriceNormalize:  priceNormalize,
	NameStringNormalize: stringNormalize,
	NameArrayJoin:       arrayJoin,
	NameToBoolean:       toBoolean,
}

// BuiltinNames returns the names of the built-in transforms, sorted.
func BuiltinNames() []string {
	return common.SortedKeys(builtins)
}

func inputText(name string, v Value) (string, error) {
	text, err := v.Text()
	if err != nil {
		return "", &Error{Transform: name, Err: err}
	}

	return text, nil
}

// timeFormat parses the input with the "format" parameter and re-emits it in
// DefaultTimeLayout, or in the "output" parameter when present.
func timeFormat(v Value, params map[string]string) (Value, error) {
	format := params["format"]
	if format == "" {
		return Value{}, &Error{Transform: NameTimeFormat, Err: fmt.Errorf("%w: format", ErrMissingParam)}
	}

	layout, err := ParseLayout(format)
	if err != nil {
		return Value{}, &Error{Transform: NameTimeFormat, Err: err}
	}

	outLayout := DefaultTimeLayout
	if output := params["output"]; output != "" {
		if outLayout, err = Layout(output); err != nil {
			return Value{}, &Error{Transform: NameTimeFormat, Err: err}
		}
	}

	text, err := inputText(NameTimeFormat, v)
	if err != nil {
		return Value{}, err
	}

	t, err := time.Parse(layout, text)
	if err != nil {
		return Value{}, valueError(NameTimeFormat, text, "does not match format %q", format)
	}

	return Value{Kind: KindString, Str: t.Format(outLayout), TargetType: TypeTimestamp}, nil
}

// priceNormalize drops every non-digit character and parses the rest.
func priceNormalize(v Value, _ map[string]string) (Value, error) {
	text, err := inputText(NamePriceNormalize, v)
	if err != nil {
		return Value{}, err
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, text)

	if digits == "" {
		return Value{}, valueError(NamePriceNormalize, text, "no digits")
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Value{}, valueError(NamePriceNormalize, text, "integer out of range")
	}

	return Int(n), nil
}

// stringNormalize trims and collapses whitespace. Optional parameters:
// "form" (NFC, NFD, NFKC or NFKD) and "strip_accents" (boolean).
func stringNormalize(v Value, params map[string]string) (Value, error) {
	text, err := inputText(NameStringNormalize, v)
	if err != nil {
		return Value{}, err
	}

	out := strings.Join(strings.Fields(text), " ")

	if form := params["form"]; form != "" {
		f, ok := normForms[strings.ToUpper(form)]
		if !ok {
			return Value{}, &Error{
				Transform: NameStringNormalize,
				Err:       fmt.Errorf("%w: unknown form %q", ErrInvalidParam, form),
			}
		}

		out = f.String(out)
	}

	if raw := params["strip_accents"]; raw != "" {
		strip, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, &Error{
				Transform: NameStringNormalize,
				Err:       fmt.Errorf("%w: strip_accents %q", ErrInvalidParam, raw),
			}
		}

		if strip {
			// Chains keep internal buffers, so each call builds its own.
			t := xtransform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

			if out, _, err = xtransform.String(t, out); err != nil {
				return Value{}, valueError(NameStringNormalize, text, "strip accents: %v", err)
			}
		}
	}

	return String(out), nil
}

var normForms = map[string]norm.Form{
	"NFC":  norm.NFC,
	"NFD":  norm.NFD,
	"NFKC": norm.NFKC,
	"NFKD": norm.NFKD,
}

// arrayJoin splits on "delimiter", trims each part and joins them back.
func arrayJoin(v Value, params map[string]string) (Value, error) {
	text, err := inputText(NameArrayJoin, v)
	if err != nil {
		return Value{}, err
	}

	delim := params["delimiter"]
	if delim == "" {
		delim = DefaultDelimiter
	}

	parts := strings.Split(text, delim)
	for i, p := range parts {
		parts[i] = strings.Trim(p, " \t\n\r")
	}

	return String(strings.Join(parts, delim)), nil
}

func toBoolean(v Value, _ map[string]string) (Value, error) {
	text, err := inputText(NameToBoolean, v)
	if err != nil {
		return Value{}, err
	}

	switch strings.ToLower(text) {
	case "true", "1", "yes":
		return Bool(true), nil
	case "false", "0", "no":
		return Bool(false), nil
	default:
		return Value{}, valueError(NameToBoolean, text, "not a boolean")
	}
}
