package harness

import "github.com/sachitrajbhandari/swrlapi/internal/ir"

// Case kinds.
const (
	KindBuiltIn = "builtin"
	KindTable   = "table"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // "builtin" or "table"

	// Pass indicates the case matched its expectation.
	Pass bool `json:"pass"`

	// Errors contains mismatch descriptions. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Call is the resolved built-in name (builtin cases).
	Call string `json:"call,omitempty"`

	// Satisfied is the built-in result (builtin cases without error).
	Satisfied *bool `json:"satisfied,omitempty"`

	// Bindings are the values bound by the call, keyed by variable name.
	// Multi-value bindings hold a []ir.Value.
	Bindings map[string]any `json:"bindings,omitempty"`

	// Columns and Rows hold the prepared table (table cases).
	Columns []string     `json:"columns,omitempty"`
	Rows    [][]ir.Value `json:"rows,omitempty"`

	// ErrorCode is the code of the error the case produced, if any.
	ErrorCode string `json:"error_code,omitempty"`
}

// AddError adds a mismatch and marks the case as failed.
func (c *CaseResult) AddError(err string) {
	c.Errors = append(c.Errors, err)
	c.Pass = false
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass indicates overall test success.
	// True if every case passed.
	Pass bool `json:"pass"`

	// Cases holds per-case outcomes in scenario order: built-ins first,
	// then tables.
	Cases []CaseResult `json:"cases"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Cases:    []CaseResult{},
	}
}

// Add appends a case outcome and updates the overall status.
func (r *Result) Add(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if !c.Pass {
		r.Pass = false
	}
}

// Failed returns the cases that did not pass.
func (r *Result) Failed() []CaseResult {
	var failed []CaseResult
	for _, c := range r.Cases {
		if !c.Pass {
			failed = append(failed, c)
		}
	}
	return failed
}
