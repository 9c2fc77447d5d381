package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebula-mapper/internal/mapping"
)

func mustParse(t *testing.T, yaml string) *mapping.GraphMapping {
	t.Helper()

	m, err := mapping.Parse([]byte(yaml))
	require.NoError(t, err)

	return m
}

func strPtr(s string) *string {
	return &s
}

func TestConvertType(t *testing.T) {
	tests := []struct {
		typ    string
		length int
		want   string
	}{
		{"int", 0, "INT64"},
		{"INT", 0, "INT64"},
		{"Integer", 0, "INT64"},
		{"float", 0, "DOUBLE"},
		{"boolean", 0, "BOOL"},
		{"timestamp", 0, "TIMESTAMP"},
		{"INT32", 0, "INT32"},
		{"string", 0, "STRING(256)"},
		{"STRING", 64, "STRING(64)"},
		{"varchar", 0, "VARCHAR(256)"},
		{"FIXED_STRING", 0, "FIXED_STRING(32)"},
		{"fixed_string(16)", 0, "FIXED_STRING(16)"},
		{"STRING(16)", 100, "STRING(100)"},
		{"STRING", 65535, "STRING(65535)"},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			got, err := ConvertType(tt.typ, tt.length)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertType_Errors(t *testing.T) {
	_, err := ConvertType("STRING", 100000)
	require.ErrorIs(t, err, ErrLengthExceeded)

	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, 100000, typeErr.Length)
	assert.Contains(t, err.Error(), "100000 > 65535")

	_, err = ConvertType("STRING(70000)", 0)
	require.ErrorIs(t, err, ErrLengthExceeded)

	_, err = ConvertType("GEOGRAPHY", 0)
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), `"GEOGRAPHY"`)
}

func TestValidateIdentifier(t *testing.T) {
	assert.NoError(t, ValidateIdentifier("valid_name"))
	assert.NoError(t, ValidateIdentifier("_x1"))
	assert.True(t, IsValidIdentifier("Place"))

	tests := []struct {
		name string
		want error
	}{
		{"", ErrInvalidIdentifier},
		{strings.Repeat("a", 129), ErrInvalidIdentifier},
		{"2bad", ErrInvalidIdentifier},
		{"has space", ErrInvalidIdentifier},
		{"where", ErrReservedKeyword},
		{"TAG", ErrReservedKeyword},
	}

	for _, tt := range tests {
		err := ValidateIdentifier(tt.name)
		require.ErrorIs(t, err, tt.want, "name %q", tt.name)

		var idErr *IdentifierError
		require.ErrorAs(t, err, &idErr)
		assert.Equal(t, tt.name, idErr.Name)
		assert.False(t, IsValidIdentifier(tt.name))
	}

	assert.NoError(t, ValidateIdentifier(strings.Repeat("a", 128)))
}

func TestValidateElement(t *testing.T) {
	e := &Element{Name: "Place", Properties: []Property{{Name: "a"}, {Name: "b"}}}
	require.NoError(t, ValidateElement(e))

	e.Properties = append(e.Properties, Property{Name: "a"})
	err := ValidateElement(e)
	require.ErrorIs(t, err, ErrDuplicateProperty)
	assert.Equal(t, `Place: identifier "a": duplicate property`, err.Error())

	e.Properties = []Property{{Name: "bad-name"}}
	err = ValidateElement(e)
	require.ErrorIs(t, err, ErrInvalidIdentifier)

	var idErr *IdentifierError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "Place", idErr.Element)
}

func TestGenerateStatements(t *testing.T) {
	m := mustParse(t, `
tags:
  Place:
    from: /places
    key: /cid
    properties:
      - json: /cid
        type: INT
        index: true
      - json: /name
        type: string
        max_length: 64
        index: true
      - json: /rating
        type: double
        optional: true
        default: "0.0"
      - json: /city
        type: STRING
        optional: true
        default: unknown
edges:
  Comment:
    from: /comments
    source: {tag: User, key: /uid}
    target: {tag: Place, key: /cid}
    properties:
      - json: /at
        type: TIMESTAMP
        index: true
`)

	stmts, err := GenerateStatements(m)
	require.NoError(t, err)

	want := []string{
		"CREATE TAG IF NOT EXISTS `Place` (\n" +
			"    `cid` INT64 NOT NULL,\n" +
			"    `name` STRING(64) NOT NULL,\n" +
			"    `rating` DOUBLE DEFAULT 0.0,\n" +
			"    `city` STRING(256) DEFAULT \"unknown\"\n" +
			") ttl_duration = 0, ttl_col = \"\";",
		"CREATE TAG INDEX IF NOT EXISTS `Place_cid_idx` ON `Place`(`cid`);",
		"CREATE TAG INDEX IF NOT EXISTS `Place_name_idx` ON `Place`(`name`(64));",
		"CREATE EDGE IF NOT EXISTS `Comment` (\n" +
			"    `at` TIMESTAMP NOT NULL\n" +
			") ttl_duration = 0, ttl_col = \"\";",
		"CREATE EDGE INDEX IF NOT EXISTS `Comment_at_idx` ON `Comment`(`at`);",
	}
	assert.Equal(t, want, stmts, spew.Sdump(stmts))
}

func TestGenerateStatements_SettingsLength(t *testing.T) {
	m := mustParse(t, `
settings:
  string_length: 128
tags:
  T:
    from: /t
    properties:
      - json: /a
        type: STRING
      - json: /b
        type: STRING
        max_length: 8
      - json: /c
        type: FIXED_STRING(4)
`)

	stmts, err := GenerateStatements(m)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "`a` STRING(128) NOT NULL")
	assert.Contains(t, stmts[0], "`b` STRING(8) NOT NULL")
	assert.Contains(t, stmts[0], "`c` FIXED_STRING(4) NOT NULL")
}

func TestGenerateStatements_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
		msg  string
	}{
		{
			name: "unsupported type",
			yaml: `
tags:
  T:
    from: /t
    properties:
      - json: /a
        type: POINT
`,
			want: ErrUnsupportedType,
			msg:  `tag T: property a: type "POINT": unsupported type`,
		},
		{
			name: "length exceeded",
			yaml: `
edges:
  E:
    from: /e
    source_tag: A
    target_tag: B
    properties:
      - json: /a
        type: STRING
        max_length: 70000
`,
			want: ErrLengthExceeded,
			msg:  "edge E: property a:",
		},
		{
			name: "reserved tag",
			yaml: `
tags:
  Vertex:
    from: /v
`,
			want: ErrReservedKeyword,
		},
		{
			name: "duplicate property",
			yaml: `
tags:
  T:
    from: /t
    properties:
      - {json: /a, name: x, type: INT}
      - {json: /b, name: x, type: INT}
`,
			want: ErrDuplicateProperty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := GenerateStatements(mustParse(t, tt.yaml))
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, stmts)

			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestGenerateIndexStatements(t *testing.T) {
	m := mustParse(t, `
tags:
  T:
    from: /t
    properties:
      - {json: /a, type: INT, index: true}
      - {json: /b, type: BOOL, index: true}
      - {json: /c, type: STRING, index: true}
      - {json: /d, type: DATE, index: true}
      - {json: /e, type: INT}
`)

	stmts, err := GenerateIndexStatements(m)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"CREATE TAG INDEX IF NOT EXISTS `T_a_idx` ON `T`(`a`);",
		"CREATE TAG INDEX IF NOT EXISTS `T_c_idx` ON `T`(`c`(256));",
	}, stmts)
}

func TestGenerateCleanupStatements(t *testing.T) {
	m := mustParse(t, `
tags:
  User:
    from: /users
    properties:
      - {json: /name, type: STRING}
  Post:
    from: /posts
    properties:
      - {json: /title, type: STRING}
edges:
  Wrote:
    from: /wrote
    source_tag: User
    target_tag: Post
    properties:
      - {json: /at, type: TIMESTAMP}
`)

	stmts := GenerateCleanupStatements(m)
	assert.Equal(t, []string{
		"DROP TAG INDEX IF EXISTS `User_name_idx`;",
		"DROP TAG INDEX IF EXISTS `Post_title_idx`;",
		"DROP EDGE INDEX IF EXISTS `Wrote_at_idx`;",
		"DROP TAG IF EXISTS `User`;",
		"DROP TAG IF EXISTS `Post`;",
		"DROP EDGE IF EXISTS `Wrote`;",
	}, stmts)

	lastIndex, firstDrop := -1, len(stmts)

	for i, s := range stmts {
		if strings.Contains(s, " INDEX ") {
			lastIndex = i
		} else if i < firstDrop {
			firstDrop = i
		}
	}

	assert.Less(t, lastIndex, firstDrop)
}

func TestBuildEdgeElement(t *testing.T) {
	m := mustParse(t, `
edges:
  Follows:
    from: /follows
    source: {tag: User, key: /a}
    target: {tag: Page, key: /b}
    properties:
      - {json: /since, type: string, optional: true}
`)

	e, err := BuildEdgeElement(&m.Edges[0], &m.Settings)
	require.NoError(t, err)

	assert.True(t, e.IsEdge)
	assert.Equal(t, "EDGE", e.Kind())
	assert.Equal(t, map[string]struct{}{"User": {}}, e.FromTags)
	assert.Equal(t, map[string]struct{}{"Page": {}}, e.ToTags)
	assert.Equal(t, []Property{{Name: "since", Type: "STRING(256)", Nullable: true, FixedLength: 256}}, e.Properties)
}

func TestMerge(t *testing.T) {
	existing := &Element{
		Name:   "Follows",
		IsEdge: true,
		Properties: []Property{
			{Name: "a", Type: "INT64"},
			{Name: "s", Type: "STRING(32)", FixedLength: 32, Default: strPtr(`"x"`)},
		},
		FromTags: map[string]struct{}{"User": {}},
		ToTags:   map[string]struct{}{"Page": {}},
	}
	update := &Element{
		Name:   "Follows",
		IsEdge: true,
		Properties: []Property{
			{Name: "s", Type: "STRING(64)", Nullable: true, FixedLength: 64, Default: strPtr(`"y"`)},
			{Name: "b", Type: "BOOL"},
			{Name: "a", Type: "INT64", Default: nil},
		},
		FromTags: map[string]struct{}{"Bot": {}},
		ToTags:   map[string]struct{}{"Page": {}},
	}

	merged, err := Merge(existing, update)
	require.NoError(t, err)

	require.Len(t, merged.Properties, 3)
	assert.Equal(t, []string{"a", "s", "b"}, []string{
		merged.Properties[0].Name, merged.Properties[1].Name, merged.Properties[2].Name,
	})

	s := merged.Property("s")
	assert.True(t, s.Nullable)
	assert.Equal(t, `"y"`, *s.Default)
	assert.Equal(t, 64, s.FixedLength)
	assert.Equal(t, "STRING(64)", s.Type)

	assert.Nil(t, merged.Property("a").Default)
	assert.Equal(t, map[string]struct{}{"User": {}, "Bot": {}}, merged.FromTags)
	assert.Equal(t, map[string]struct{}{"Page": {}}, merged.ToTags)

	// Inputs are left untouched.
	assert.Len(t, existing.Properties, 2)
	assert.Equal(t, `"x"`, *existing.Properties[1].Default)
	assert.Len(t, existing.FromTags, 1)
}

func TestMerge_KeepsLongerLength(t *testing.T) {
	existing := &Element{Name: "T", Properties: []Property{{Name: "s", Type: "STRING(100)", FixedLength: 100}}}
	update := &Element{Name: "T", Properties: []Property{{Name: "s", Type: "STRING(10)", FixedLength: 10}}}

	merged, err := Merge(existing, update)
	require.NoError(t, err)
	assert.Equal(t, Property{Name: "s", Type: "STRING(100)", FixedLength: 100}, merged.Properties[0])
	assert.Nil(t, merged.FromTags)
}

func TestMerge_Mismatch(t *testing.T) {
	_, err := Merge(&Element{Name: "A"}, &Element{Name: "B"})
	require.ErrorIs(t, err, ErrElementMismatch)

	_, err = Merge(&Element{Name: "A"}, &Element{Name: "A", IsEdge: true})
	require.ErrorIs(t, err, ErrElementMismatch)
	assert.True(t, errors.Is(err, ErrElementMismatch))
	assert.Contains(t, err.Error(), "TAG A vs EDGE A")
}
