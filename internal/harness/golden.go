package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

// Snapshot captures the observable outcome of a scenario execution: per
// case, the satisfaction and bindings of built-in calls and the prepared
// rows of tables. Mismatch descriptions are not part of the snapshot.
type Snapshot struct {
	ScenarioName string
	Cases        []CaseResult
}

// toCanonicalMap converts a Snapshot to a map[string]any for canonical JSON serialization.
// This is required because ir.MarshalCanonical only handles IR types and primitives.
func (s *Snapshot) toCanonicalMap() map[string]any {
	cases := make([]any, len(s.Cases))
	for i, c := range s.Cases {
		m := map[string]any{
			"name": c.Name,
			"kind": c.Kind,
			"pass": c.Pass,
		}
		if c.Call != "" {
			m["call"] = c.Call
		}
		if c.Satisfied != nil {
			m["satisfied"] = *c.Satisfied
		}
		if c.Bindings != nil {
			m["bindings"] = c.Bindings
		}
		if c.Columns != nil {
			m["columns"] = c.Columns
		}
		if c.Rows != nil {
			rows := make([]any, len(c.Rows))
			for r, row := range c.Rows {
				rows[r] = ir.EncodeRow(row)
			}
			m["rows"] = rows
		}
		if c.ErrorCode != "" {
			m["error_code"] = c.ErrorCode
		}
		cases[i] = m
	}
	return map[string]any{
		"scenario": s.ScenarioName,
		"cases":    cases,
	}
}

// MarshalSnapshot serializes the snapshot of a result as canonical JSON.
func MarshalSnapshot(result *Result) ([]byte, error) {
	snapshot := Snapshot{ScenarioName: result.Scenario, Cases: result.Cases}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its snapshot against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the given result's snapshot against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := Snapshot{ScenarioName: scenarioName, Cases: result.Cases}
	data, err := ir.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
