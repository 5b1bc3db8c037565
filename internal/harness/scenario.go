package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// A scenario groups built-in cases, which call one built-in and check its
// satisfaction and bindings, and table cases, which build and prepare a
// result table and check its rows.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Prefixes maps prefixes to namespaces for entity cells.
	Prefixes map[string]string `yaml:"prefixes,omitempty"`

	// BuiltIns are evaluated in order against a fresh runtime.
	BuiltIns []BuiltInCase `yaml:"builtins,omitempty"`

	// Tables are executed in order, each into its own result table.
	Tables []TableCase `yaml:"tables,omitempty"`
}

// BuiltInCase calls one built-in.
//
// Arguments are written as "?name" for an unbound variable, as tagged text
// ("int:20", "class:test:C1") or as a single-key tagged map ({int: 20}).
type BuiltInCase struct {
	// Name identifies the case. Defaults to "<call>#<index>".
	Name string `yaml:"name,omitempty"`

	// Call is the built-in name, with or without the swrlb: prefix.
	Call string `yaml:"call"`

	// Args are the ordered arguments.
	Args []any `yaml:"args"`

	// Expect describes the outcome.
	Expect BuiltInExpect `yaml:"expect"`
}

// BuiltInExpect is the expected outcome of a built-in call. Exactly one of
// Result and Error must be set.
type BuiltInExpect struct {
	// Result is the expected satisfaction.
	Result *bool `yaml:"result,omitempty"`

	// Error is the expected error code, e.g. "DIVISION_BY_ZERO".
	Error string `yaml:"error,omitempty"`

	// Bindings maps variable names (without "?") to the expected bound
	// value. A list expects a multi-value binding.
	Bindings map[string]any `yaml:"bindings,omitempty"`
}

// TableCase builds one result table.
type TableCase struct {
	Name     string       `yaml:"name"`
	Columns  []ColumnCase `yaml:"columns"`
	Distinct bool         `yaml:"distinct,omitempty"`
	OrderBy  []OrderCase  `yaml:"order_by,omitempty"`
	Select   *SelectCase  `yaml:"select,omitempty"`
	Rows     [][]any      `yaml:"rows,omitempty"`
	Expect   TableExpect  `yaml:"expect"`
}

// ColumnCase declares a column. An empty Aggregate is a plain column.
type ColumnCase struct {
	Name      string `yaml:"name"`
	Aggregate string `yaml:"aggregate,omitempty"`
}

// OrderCase orders by a named column. Ascending defaults to true.
type OrderCase struct {
	Column    string `yaml:"column"`
	Ascending *bool  `yaml:"ascending,omitempty"`
}

// SelectCase is a positional selection.
type SelectCase struct {
	Kind string `yaml:"kind"`
	N    int    `yaml:"n"`
	Size int    `yaml:"size,omitempty"`
}

// TableExpect is the expected outcome of a table case. Exactly one of Rows
// and Error must be set; an empty result is written as rows: [].
type TableExpect struct {
	Rows  [][]any `yaml:"rows"`
	Error string  `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "builtin:" vs "builtins:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir, sorted.
func FindScenarios(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ext := filepath.Ext(path); !info.IsDir() && (ext == ".yaml" || ext == ".yml") {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.BuiltIns) == 0 && len(s.Tables) == 0 {
		return fmt.Errorf("at least one builtins or tables case is required")
	}

	for i := range s.BuiltIns {
		c := &s.BuiltIns[i]
		if c.Call == "" {
			return fmt.Errorf("builtins[%d]: call is required", i)
		}
		if (c.Expect.Result == nil) == (c.Expect.Error == "") {
			return fmt.Errorf("builtins[%d]: expect needs exactly one of result and error", i)
		}
		if c.Expect.Error != "" && len(c.Expect.Bindings) > 0 {
			return fmt.Errorf("builtins[%d]: bindings cannot be expected with an error", i)
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("%s#%d", c.Call, i)
		}
	}

	seen := make(map[string]bool)
	for i, c := range s.Tables {
		if c.Name == "" {
			return fmt.Errorf("tables[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("tables[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true
		if len(c.Columns) == 0 {
			return fmt.Errorf("tables[%d]: columns are required", i)
		}
		if (c.Expect.Rows == nil) == (c.Expect.Error == "") {
			return fmt.Errorf("tables[%d]: expect needs exactly one of rows and error", i)
		}
	}

	return nil
}
