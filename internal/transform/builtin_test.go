package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, name string, v Value, params map[string]string) (Value, error) {
	t.Helper()
	return NewRegistry().Apply(name, v, params)
}

func TestToBoolean(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"yes", true},
		{"YES", true},
		{"True", true},
		{"1", true},
		{"no", false},
		{"false", false},
		{"0", false},
		{"No", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out, err := apply(t, NameToBoolean, String(tt.in), nil)
			require.NoError(t, err)
			assert.Equal(t, KindBool, out.Kind)
			assert.Equal(t, tt.want, out.Bool)
			assert.Equal(t, TypeBool, out.TargetType)
		})
	}
}

func TestToBoolean_Invalid(t *testing.T) {
	_, err := apply(t, NameToBoolean, String("maybe"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)

	var te *Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, NameToBoolean, te.Transform)
	assert.Equal(t, "maybe", te.Input)
}

func TestToBoolean_FromNonString(t *testing.T) {
	out, err := apply(t, NameToBoolean, Int(1), nil)
	require.NoError(t, err)
	assert.True(t, out.Bool)

	out, err = apply(t, NameToBoolean, Bool(false), nil)
	require.NoError(t, err)
	assert.False(t, out.Bool)
}

func TestTimeFormat(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		params map[string]string
		want   string
	}{
		{"date only", "2024-03-05", map[string]string{"format": "%Y-%m-%d"}, "2024-03-05 00:00:00"},
		{"us style", "03/05/2024 14:07", map[string]string{"format": "%m/%d/%Y %H:%M"}, "2024-03-05 14:07:00"},
		{"month name", "05 Mar 2024", map[string]string{"format": "%d %b %Y"}, "2024-03-05 00:00:00"},
		{"iso composite", "2024-03-05T01:02:03", map[string]string{"format": "%FT%T"}, "2024-03-05 01:02:03"},
		{"go layout", "2024-03-05", map[string]string{"format": "2006-01-02"}, "2024-03-05 00:00:00"},
		{"custom output", "2024-03-05", map[string]string{"format": "%Y-%m-%d", "output": "%d.%m.%Y"}, "05.03.2024"},
		{"single digit fields", "2024-1-5 9:05:00", map[string]string{"format": "%Y-%m-%d %H:%M:%S"}, "2024-01-05 09:05:00"},
		{"single digit day name", "5 Jan 2024", map[string]string{"format": "%d %b %Y"}, "2024-01-05 00:00:00"},
		{"single digit composite", "2024-1-5T9:5:7", map[string]string{"format": "%FT%T"}, "2024-01-05 09:05:07"},
		{"adjacent fields", "20240305", map[string]string{"format": "%Y%m%d"}, "2024-03-05 00:00:00"},
		{"underscore separator", "2024_3_05", map[string]string{"format": "%Y_%m_%d"}, "2024-03-05 00:00:00"},
		{"literal text", "week of 2024-3-5", map[string]string{"format": "week of %Y-%m-%d"}, "2024-03-05 00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := apply(t, NameTimeFormat, String(tt.in), tt.params)
			require.NoError(t, err)
			assert.Equal(t, KindString, out.Kind)
			assert.Equal(t, tt.want, out.Str)
			assert.Equal(t, TypeTimestamp, out.TargetType)
		})
	}
}

func TestTimeFormat_Errors(t *testing.T) {
	_, err := apply(t, NameTimeFormat, String("2024-03-05"), nil)
	assert.ErrorIs(t, err, ErrMissingParam)

	_, err = apply(t, NameTimeFormat, String("2024-03-05"), map[string]string{"format": "%Q"})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = apply(t, NameTimeFormat, String("yesterday"), map[string]string{"format": "%Y-%m-%d"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = apply(t, NameTimeFormat, String("2024-03-05 trailing"), map[string]string{"format": "%Y-%m-%d"})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestPriceNormalize(t *testing.T) {
	tests := []struct {
		in   Value
		want int64
	}{
		{String("$1,299"), 1299},
		{String(" 42 USD"), 42},
		{String("0007"), 7},
		{Int(350), 350},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			out, err := apply(t, NamePriceNormalize, tt.in, nil)
			require.NoError(t, err)
			assert.Equal(t, KindInt, out.Kind)
			assert.Equal(t, tt.want, out.Int)
			assert.Equal(t, TypeInt64, out.TargetType)
		})
	}
}

func TestPriceNormalize_Errors(t *testing.T) {
	_, err := apply(t, NamePriceNormalize, String("free"), nil)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = apply(t, NamePriceNormalize, String("99999999999999999999"), nil)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestStringNormalize(t *testing.T) {
	out, err := apply(t, NameStringNormalize, String("  hello \t\n  big   world "), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello big world", out.Str)

	out, err = apply(t, NameStringNormalize, String("  Crème   Brûlée "), map[string]string{"strip_accents": "true"})
	require.NoError(t, err)
	assert.Equal(t, "Creme Brulee", out.Str)

	out, err = apply(t, NameStringNormalize, String("é"), map[string]string{"form": "nfc"})
	require.NoError(t, err)
	assert.Equal(t, "é", out.Str)

	out, err = apply(t, NameStringNormalize, String("ﬁne"), map[string]string{"form": "NFKC"})
	require.NoError(t, err)
	assert.Equal(t, "fine", out.Str)
}

func TestStringNormalize_BadParams(t *testing.T) {
	_, err := apply(t, NameStringNormalize, String("x"), map[string]string{"form": "NFX"})
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = apply(t, NameStringNormalize, String("x"), map[string]string{"strip_accents": "perhaps"})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestArrayJoin(t *testing.T) {
	out, err := apply(t, NameArrayJoin, String(" a ,b,  c "), nil)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", out.Str)

	out, err = apply(t, NameArrayJoin, String("x | y|z"), map[string]string{"delimiter": "|"})
	require.NoError(t, err)
	assert.Equal(t, "x|y|z", out.Str)

	out, err = apply(t, NameArrayJoin, String("single"), nil)
	require.NoError(t, err)
	assert.Equal(t, "single", out.Str)
}

func TestLayout(t *testing.T) {
	layout, err := Layout("%Y-%m-%d %H:%M:%S")
	require.NoError(t, err)
	assert.Equal(t, "2006-01-02 15:04:05", layout)

	layout, err = Layout("%%%A")
	require.NoError(t, err)
	assert.Equal(t, "%Monday", layout)

	layout, err = Layout("Jan 2 2006")
	require.NoError(t, err)
	assert.Equal(t, "Jan 2 2006", layout)

	_, err = Layout("%Y-%")
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"%Y-%m-%d %H:%M:%S", "2006-1-2 15:4:5"},
		{"%d %b %Y", "2 Jan 2006"},
		{"%I:%M %p", "3:4 PM"},
		{"%F %R", "2006-1-2 15:4"},
		{"%Y%m%d", "20060102"},
		{"%H%M", "1504"},
		{"%Y_%m_%d", "2006_1_02"},
		{"%m/%d/%y", "1/2/06"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			layout, err := ParseLayout(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, layout)
		})
	}
}

func TestLayout_RejectsLayoutLiterals(t *testing.T) {
	for _, format := range []string{"Q1 %Y-%m-%d", "%Y-%m-%d Mon", "%H:%M PM", "100%% %A", "%d Jan %Y"} {
		t.Run(format, func(t *testing.T) {
			_, err := Layout(format)
			assert.ErrorIs(t, err, ErrInvalidParam)

			_, err = ParseLayout(format)
			assert.ErrorIs(t, err, ErrInvalidParam)
		})
	}

	_, err := apply(t, NameTimeFormat, String("Q1 2024-03-05"), map[string]string{"format": "Q1 %Y-%m-%d"})
	assert.ErrorIs(t, err, ErrInvalidParam)
}
