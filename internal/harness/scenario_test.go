package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := filepath.Join(dir, "test.yaml")

	content := `
name: test_scenario
description: "Test scenario for validation"
prefixes:
  test: "http://example.org/test#"
builtins:
  - call: add
    args: ["?x", "int:1", {int: 2}]
    expect:
      result: true
      bindings: {x: "int:3"}
tables:
  - name: ints
    columns:
      - {name: n}
    order_by:
      - {column: n, ascending: false}
    select: {kind: nthSlice, n: 1, size: 2}
    rows:
      - ["int:1"]
    expect:
      rows: []
`
	require.NoError(t, os.WriteFile(scenarioPath, []byte(content), 0644))

	scenario, err := LoadScenario(scenarioPath)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "http://example.org/test#", scenario.Prefixes["test"])

	require.Len(t, scenario.BuiltIns, 1)
	c := scenario.BuiltIns[0]
	assert.Equal(t, "add#0", c.Name, "default case name")
	assert.Equal(t, []any{"?x", "int:1", map[string]any{"int": 2}}, c.Args)
	require.NotNil(t, c.Expect.Result)
	assert.True(t, *c.Expect.Result)
	assert.Equal(t, map[string]any{"x": "int:3"}, c.Expect.Bindings)

	require.Len(t, scenario.Tables, 1)
	tc := scenario.Tables[0]
	require.Len(t, tc.OrderBy, 1)
	require.NotNil(t, tc.OrderBy[0].Ascending)
	assert.False(t, *tc.OrderBy[0].Ascending)
	assert.Equal(t, &SelectCase{Kind: "nthSlice", N: 1, Size: 2}, tc.Select)
	assert.NotNil(t, tc.Expect.Rows, "rows: [] is an expectation of zero rows")
	assert.Empty(t, tc.Expect.Rows)
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_UnknownField(t *testing.T) {
	content := `
name: typo
description: "misspelled section"
builtin:
  - call: add
`
	_, err := ParseScenario([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nbuiltins: [{call: add, args: [], expect: {result: true}}]",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nbuiltins: [{call: add, args: [], expect: {result: true}}]",
			wantErr: "description is required",
		},
		{
			name:    "no cases",
			content: "name: n\ndescription: d",
			wantErr: "at least one builtins or tables case is required",
		},
		{
			name:    "missing call",
			content: "name: n\ndescription: d\nbuiltins: [{args: [], expect: {result: true}}]",
			wantErr: "builtins[0]: call is required",
		},
		{
			name:    "result and error",
			content: "name: n\ndescription: d\nbuiltins: [{call: add, expect: {result: true, error: ARITY}}]",
			wantErr: "exactly one of result and error",
		},
		{
			name:    "neither result nor error",
			content: "name: n\ndescription: d\nbuiltins: [{call: add, expect: {}}]",
			wantErr: "exactly one of result and error",
		},
		{
			name:    "bindings with error",
			content: "name: n\ndescription: d\nbuiltins: [{call: add, expect: {error: ARITY, bindings: {x: 'int:1'}}}]",
			wantErr: "bindings cannot be expected with an error",
		},
		{
			name:    "table without name",
			content: "name: n\ndescription: d\ntables: [{columns: [{name: c}], expect: {rows: []}}]",
			wantErr: "tables[0]: name is required",
		},
		{
			name:    "duplicate table",
			content: "name: n\ndescription: d\ntables: [{name: t, columns: [{name: c}], expect: {rows: []}}, {name: t, columns: [{name: c}], expect: {rows: []}}]",
			wantErr: `tables[1]: duplicate name "t"`,
		},
		{
			name:    "table without columns",
			content: "name: n\ndescription: d\ntables: [{name: t, expect: {rows: []}}]",
			wantErr: "columns are required",
		},
		{
			name:    "table without expectation",
			content: "name: n\ndescription: d\ntables: [{name: t, columns: [{name: c}], expect: {}}]",
			wantErr: "exactly one of rows and error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFindScenarios(t *testing.T) {
	files, err := FindScenarios("testdata/scenarios")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "scenarios", "math.yaml"),
		filepath.Join("testdata", "scenarios", "strings.yaml"),
		filepath.Join("testdata", "scenarios", "tables.yaml"),
	}, files)

	_, err = FindScenarios("testdata/missing")
	assert.Error(t, err)
}
