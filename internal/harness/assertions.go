package harness

import (
	"fmt"
	"sort"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

// AssertionError is returned when a case does not match its expectation.
type AssertionError struct {
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
}

// describe renders a value with its datatype, e.g. "xsd:int 20".
func describe(v ir.Value) string {
	if v == nil {
		return "nothing"
	}
	return ir.Datatype(v) + " " + v.Lexical()
}

// checkBindings compares expected bindings with the actual ones using
// subset semantics: variables not mentioned in expected are not checked.
// Values match when they are identical (same datatype and lexical form).
func (h *Harness) checkBindings(expected, actual map[string]any) []error {
	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		got, bound := actual[name]
		if !bound {
			errs = append(errs, &AssertionError{
				Expected: fmt.Sprintf("?%s to be bound", name),
				Actual:   "unbound",
			})
			continue
		}

		if list, ok := expected[name].([]any); ok {
			errs = append(errs, h.checkMultiBinding(name, list, got)...)
			continue
		}

		want, err := h.decode(expected[name])
		if err != nil {
			errs = append(errs, fmt.Errorf("bindings.%s: %w", name, err))
			continue
		}
		v, ok := got.(ir.Value)
		if !ok {
			errs = append(errs, &AssertionError{
				Expected: fmt.Sprintf("?%s = %s", name, describe(want)),
				Actual:   "a multi-value binding",
			})
			continue
		}
		if !ir.Identical(want, v) {
			errs = append(errs, &AssertionError{
				Expected: fmt.Sprintf("?%s = %s", name, describe(want)),
				Actual:   describe(v),
			})
		}
	}
	return errs
}

func (h *Harness) checkMultiBinding(name string, expected []any, got any) []error {
	values, ok := got.([]ir.Value)
	if !ok {
		return []error{&AssertionError{
			Expected: fmt.Sprintf("?%s to hold %d values", name, len(expected)),
			Actual:   "a single value",
		}}
	}
	if len(values) != len(expected) {
		return []error{&AssertionError{
			Expected: fmt.Sprintf("?%s to hold %d values", name, len(expected)),
			Actual:   fmt.Sprintf("%d values", len(values)),
		}}
	}
	var errs []error
	for i, raw := range expected {
		want, err := h.decode(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("bindings.%s[%d]: %w", name, i, err))
			continue
		}
		if !ir.Identical(want, values[i]) {
			errs = append(errs, &AssertionError{
				Expected: fmt.Sprintf("?%s[%d] = %s", name, i, describe(want)),
				Actual:   describe(values[i]),
			})
		}
	}
	return errs
}

// compareRows compares expected and actual rows cell by cell, in order.
func compareRows(expected, actual [][]ir.Value) []error {
	if len(expected) != len(actual) {
		return []error{&AssertionError{
			Expected: fmt.Sprintf("%d rows", len(expected)),
			Actual:   fmt.Sprintf("%d rows", len(actual)),
		}}
	}
	var errs []error
	for r := range expected {
		if len(expected[r]) != len(actual[r]) {
			errs = append(errs, &AssertionError{
				Expected: fmt.Sprintf("row %d with %d cells", r, len(expected[r])),
				Actual:   fmt.Sprintf("%d cells", len(actual[r])),
			})
			continue
		}
		for c := range expected[r] {
			if !ir.Identical(expected[r][c], actual[r][c]) {
				errs = append(errs, &AssertionError{
					Expected: fmt.Sprintf("row %d cell %d = %s", r, c, describe(expected[r][c])),
					Actual:   describe(actual[r][c]),
				})
			}
		}
	}
	return errs
}
