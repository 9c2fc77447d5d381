package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func examplePath(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "examples"}, parts...)...)
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestRun_PlacesData(t *testing.T) {
	stdout, stderr, err := runCLI(t, "-no-schema",
		examplePath("places", "mapping.yaml"), examplePath("places", "data.json"))
	require.NoError(t, err, stderr)

	assert.Equal(t, []string{
		"INSERT VERTEX `User` (`uid`, `name`, `active`) VALUES " +
			`"u1":("u1", "Ann Lee", true), "u2":("u2", "Bob", false);`,
		"INSERT VERTEX `Place` (`cid`, `name`, `price`, `opened`) VALUES " +
			`"1":(1, "Cafe", 12, "2020-01-15 00:00:00"), "2":(2, "Bar", NULL, "2021-06-01 00:00:00");`,
		"INSERT EDGE `Reviewed` (`stars`, `text`) VALUES " +
			`"u1" -> "1":(5, "great"), "u2" -> "2":(3, NULL);`,
	}, lines(stdout), spew.Sdump(stdout))

	assert.Contains(t, stderr, "run_id=")
	assert.Contains(t, stderr, "count=3")
}

func TestRun_SchemaOnly(t *testing.T) {
	stdout, _, err := runCLI(t, "-schema-only", "-cleanup", examplePath("places", "mapping.yaml"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "DROP TAG INDEX IF EXISTS `User_uid_idx`;\n"))
	assert.Contains(t, stdout, "DROP EDGE IF EXISTS `Reviewed`;\n")
	assert.Contains(t, stdout, "CREATE TAG IF NOT EXISTS `User` (\n    `uid` STRING(128) NOT NULL,\n")
	assert.NotContains(t, stdout, "DEFAULT")
	assert.Contains(t, stdout, "    `price` INT64,\n")
	assert.Contains(t, stdout, "    `opened` TIMESTAMP NOT NULL\n")
	assert.Contains(t, stdout, "CREATE TAG INDEX IF NOT EXISTS `Place_name_idx` ON `Place`(`name`(128));\n")
	assert.NotContains(t, stdout, "INSERT")

	dropAt := strings.Index(stdout, "DROP EDGE IF EXISTS")
	createAt := strings.Index(stdout, "CREATE TAG")
	assert.Less(t, dropAt, createAt)
}

func TestRun_DynamicYAML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.ngql")

	_, stderr, err := runCLI(t, "-no-schema", "-minimal-quoting", "-o", out,
		examplePath("dynamic", "mapping.yaml"), examplePath("dynamic", "data.yaml"))
	require.NoError(t, err, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`UPSERT VERTEX Product "acme:A-1" (sku, tags, stock, vendor, weight) VALUES ("A-1", "red;large", 12, "acme", 1.5);`,
		`UPSERT VERTEX Product "acme:A-2" (sku, tags, discontinued, vendor) VALUES ("A-2", "blue", true, "acme");`,
	}, lines(string(data)))
}

func TestRun_JobsKeepInputOrder(t *testing.T) {
	dir := t.TempDir()

	mappingPath := filepath.Join(dir, "mapping.yaml")
	require.NoError(t, os.WriteFile(mappingPath, []byte(`
tags:
  N:
    from: /n
    properties:
      - {json: /v, type: INT}
`), 0o644))

	args := []string{"-no-schema", "-jobs", "4", mappingPath}
	want := make([]string, 0, 12)

	for i := range 12 {
		path := filepath.Join(dir, fmt.Sprintf("doc%02d.json", i))
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`{"n": {"id": %d, "v": %d}}`, i, i*10)), 0o644))

		args = append(args, path)
		want = append(want, fmt.Sprintf("INSERT VERTEX `N` (`v`) VALUES \"%d\":(%d);", i, i*10))
	}

	stdout, stderr, err := runCLI(t, args...)
	require.NoError(t, err, stderr)
	assert.Equal(t, want, lines(stdout))
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	badMapping := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badMapping, []byte(`
tags:
  Place:
    from: /places
    properties:
      - {json: /open, type: BOOL, transform: to_bool}
`), 0o644))

	badDoc := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badDoc, []byte(`{"places": [{"id": null}]}`), 0o644))

	places := examplePath("places", "mapping.yaml")

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no args", nil, "missing mapping file"},
		{"no input", []string{places}, "missing input document"},
		{"exclusive", []string{"-schema-only", "-no-schema", places}, "mutually exclusive"},
		{"jobs", []string{"-jobs", "0", places, badDoc}, "-jobs must be at least 1"},
		{"missing mapping", []string{filepath.Join(dir, "nope.yaml"), badDoc}, "failed to read mapping file"},
		{"invalid mapping", []string{badMapping, badDoc}, `did you mean "to_boolean"?`},
		{"missing input", []string{places, filepath.Join(dir, "nope.json")}, "failed to read document"},
		{"compile", []string{examplePath("places", "mapping.yaml"), badDoc}, "bad.json: tag User: resolve /users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Empty(t, stdout)
		})
	}
}

func TestRun_Help(t *testing.T) {
	_, stderr, err := runCLI(t, "-h")
	require.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, stderr, "Usage: nebula-mapper")
	assert.Contains(t, stderr, "-batch-size")
}
