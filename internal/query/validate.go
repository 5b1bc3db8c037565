package query

import (
	"fmt"

	"github.com/sachitrajbhandari/swrlapi/internal/result"
)

// ValidationResult contains the outcome of checking a query before it runs.
//
// Errors make the query unexecutable. Warnings flag directives that are
// legal but have no effect or a surprising one.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the query has no errors.
func (r ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// Validate checks a query's schema, directives and rows.
//
// Errors:
//  1. Missing or duplicate column names
//  2. Unknown aggregate function or selection kind
//  3. Order keys naming an unknown column
//  4. Selection parameters <= 0
//  5. Rows whose width differs from the schema, or holding nil cells
//
// Warnings:
//  1. Ordering on an aggregate column
//  2. Distinct combined with aggregation (distinct is ignored)
//  3. A selection over the single row produced by an all-aggregate schema
//
// Validate is a pure function with no side effects.
func Validate(q Query) ValidationResult {
	v := &validator{
		errors:   []string{},
		warnings: []string{},
	}
	v.validateColumns(q)
	v.validateDirectives(q)
	v.validateRows(q)

	return ValidationResult{
		Errors:   v.errors,
		Warnings: v.warnings,
	}
}

// validator accumulates findings during traversal.
type validator struct {
	errors   []string
	warnings []string
}

func (v *validator) addError(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validateColumns(q Query) {
	if len(q.Columns) == 0 {
		v.addError("query %q declares no columns", q.Name)
	}
	seen := make(map[string]bool, len(q.Columns))
	for i, c := range q.Columns {
		if c.Name == "" {
			v.addError("column %d has no name", i)
			continue
		}
		if seen[c.Name] {
			v.addError("duplicate column %q", c.Name)
		}
		seen[c.Name] = true
		if _, err := result.ParseAggregate(c.Aggregate); err != nil {
			v.addError("column %q: unknown aggregate function %q", c.Name, c.Aggregate)
		}
	}
}

func (v *validator) validateDirectives(q Query) {
	aggregates := 0
	for _, c := range q.Columns {
		if c.Aggregate != "" {
			aggregates++
		}
	}

	for _, o := range q.OrderBy {
		i := q.columnIndex(o.Column)
		if i < 0 {
			v.addError("order by unknown column %q", o.Column)
			continue
		}
		if q.Columns[i].Aggregate != "" {
			v.addWarning("ordering on aggregate column %q", o.Column)
		}
	}

	if q.Distinct && aggregates > 0 {
		v.addWarning("distinct has no effect on an aggregated result")
	}

	if q.Select == nil {
		return
	}
	kind, ok := result.ParseSelectionKind(q.Select.Kind)
	if !ok {
		v.addError("unknown selection kind %q", q.Select.Kind)
		return
	}
	if q.Select.N <= 0 {
		v.addError("%s requires a positive argument, got %d", q.Select.Kind, q.Select.N)
	}
	if kind.IsSlice() && q.Select.Size <= 0 {
		v.addError("%s requires a positive slice size, got %d", q.Select.Kind, q.Select.Size)
	}
	if aggregates > 0 && aggregates == len(q.Columns) {
		v.addWarning("selection %s applies to a single aggregate row", q.Select.Kind)
	}
}

func (v *validator) validateRows(q Query) {
	for r, row := range q.Rows {
		if len(row) != len(q.Columns) {
			v.addError("row %d has %d cells, schema has %d columns", r, len(row), len(q.Columns))
			continue
		}
		for c, cell := range row {
			if cell == nil {
				v.addError("row %d column %q has no value", r, q.Columns[c].Name)
			}
		}
	}
}
