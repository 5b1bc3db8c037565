package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sachitrajbhandari/swrlapi/internal/builtin"
	"github.com/sachitrajbhandari/swrlapi/internal/factory"
	"github.com/sachitrajbhandari/swrlapi/internal/ir"
	"github.com/sachitrajbhandari/swrlapi/internal/query"
	"github.com/sachitrajbhandari/swrlapi/internal/result"
	"github.com/sachitrajbhandari/swrlapi/internal/store"
	"github.com/sachitrajbhandari/swrlapi/internal/testutil"
)

// Harness is the test execution engine.
// It evaluates built-in cases against a fresh runtime and runs table cases
// through the result engine and an in-memory export store, so every table
// is checked as it reads back from storage.
type Harness struct {
	runtime *builtin.Runtime
	factory *factory.ValueFactory
	store   *store.Store
	logger  *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Case failures are reported in the result; the error return is reserved
// for failures of the harness itself.
//
// Execution flow:
// 1. Create fresh in-memory database and runtime
// 2. Evaluate built-in cases in order
// 3. Execute, export and re-read table cases in order
// 4. Return result with per-case pass/fail
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:", store.WithIDGenerator(testutil.NewSequentialIDGenerator(scenario.Name)))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	resolver := factory.NewIRIResolver()
	for prefix, ns := range scenario.Prefixes {
		resolver.SetPrefix(prefix, ns)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	h := &Harness{
		runtime: builtin.NewRuntime(builtin.WithLogger(logger)),
		factory: factory.NewValueFactory(resolver),
		store:   st,
		logger:  logger,
	}

	ctx := context.Background()
	res := NewResult(scenario.Name)
	for _, c := range scenario.BuiltIns {
		res.Add(h.runBuiltIn(c))
	}
	for _, c := range scenario.Tables {
		res.Add(h.runTable(ctx, c))
	}
	return res, nil
}

// runBuiltIn evaluates one built-in case.
func (h *Harness) runBuiltIn(c BuiltInCase) CaseResult {
	cr := CaseResult{Name: c.Name, Kind: KindBuiltIn, Pass: true, Call: c.Call}
	if b, ok := builtin.ParseBuiltIn(c.Call); ok {
		cr.Call = b.String()
	}

	args, vars, err := h.arguments(c.Args)
	if err != nil {
		cr.AddError(fmt.Sprintf("args: %v", err))
		return cr
	}

	satisfied, err := h.runtime.Evaluate(builtin.Invocation{Name: c.Call, Args: args})
	if err != nil {
		checkError(&cr, c.Expect.Error, err)
		return cr
	}
	cr.Satisfied = &satisfied
	cr.Bindings = boundValues(vars)

	if c.Expect.Error != "" {
		cr.AddError((&AssertionError{
			Expected: "error " + c.Expect.Error,
			Actual:   fmt.Sprintf("result %t", satisfied),
		}).Error())
		return cr
	}
	if *c.Expect.Result != satisfied {
		cr.AddError((&AssertionError{
			Expected: fmt.Sprintf("result %t", *c.Expect.Result),
			Actual:   fmt.Sprintf("result %t", satisfied),
		}).Error())
	}
	for _, err := range h.checkBindings(c.Expect.Bindings, cr.Bindings) {
		cr.AddError(err.Error())
	}

	h.logger.Debug("built-in case evaluated",
		"case", c.Name,
		"builtin", cr.Call,
		"pass", cr.Pass,
	)
	return cr
}

// arguments converts case arguments. Variables with the same name share one
// *builtin.Variable; vars lists them in first-use order.
func (h *Harness) arguments(raw []any) ([]builtin.Argument, []*builtin.Variable, error) {
	var (
		args   = make([]builtin.Argument, 0, len(raw))
		vars   []*builtin.Variable
		byName = make(map[string]*builtin.Variable)
	)
	for i, r := range raw {
		if s, ok := r.(string); ok && strings.HasPrefix(s, "?") {
			name := strings.TrimPrefix(s, "?")
			v, ok := byName[name]
			if !ok {
				v = builtin.Var(name)
				byName[name] = v
				vars = append(vars, v)
			}
			args = append(args, v)
			continue
		}
		val, err := h.decode(r)
		if err != nil {
			return nil, nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		args = append(args, builtin.Val(val))
	}
	return args, vars, nil
}

// decode converts a cell written as tagged text or a tagged map.
func (h *Harness) decode(raw any) (ir.Value, error) {
	switch r := raw.(type) {
	case string:
		return h.factory.ParseTagged(r)
	case map[string]any:
		return h.factory.DecodeCell(r)
	}
	return nil, fmt.Errorf("%w: expected tag:value or {tag: value}, got %T", factory.ErrInvalidLiteral, raw)
}

func boundValues(vars []*builtin.Variable) map[string]any {
	bound := make(map[string]any)
	for _, v := range vars {
		if val, ok := v.Value(); ok {
			bound[v.Name] = val
		} else if m, ok := v.MultiValue(); ok {
			bound[v.Name] = m.Values()
		}
	}
	if len(bound) == 0 {
		return nil
	}
	return bound
}

// runTable executes one table case, exports the prepared table and compares
// the table read back from the store.
func (h *Harness) runTable(ctx context.Context, c TableCase) CaseResult {
	cr := CaseResult{Name: c.Name, Kind: KindTable, Pass: true}

	q, err := h.query(c)
	if err != nil {
		cr.AddError(err.Error())
		return cr
	}
	if v := query.Validate(q); len(v.Warnings) > 0 {
		h.logger.Debug("table case warnings", "case", c.Name, "warnings", v.Warnings)
	}

	tbl, err := query.Execute(q, result.WithLogger(h.logger))
	if err != nil {
		checkError(&cr, c.Expect.Error, err)
		return cr
	}

	rs, err := h.store.WriteResult(ctx, c.Name, tbl)
	if err != nil {
		cr.AddError(fmt.Sprintf("export: %v", err))
		return cr
	}
	_, stored, err := h.store.ReadResult(ctx, rs.ID)
	if err != nil {
		cr.AddError(fmt.Sprintf("read back: %v", err))
		return cr
	}
	cr.Columns = stored.ColumnNames()
	cr.Rows = stored.Rows()

	if c.Expect.Error != "" {
		cr.AddError((&AssertionError{
			Expected: "error " + c.Expect.Error,
			Actual:   fmt.Sprintf("%d rows", len(cr.Rows)),
		}).Error())
		return cr
	}
	expected, err := h.rows(c.Expect.Rows)
	if err != nil {
		cr.AddError(fmt.Sprintf("expect: %v", err))
		return cr
	}
	for _, err := range compareRows(expected, cr.Rows) {
		cr.AddError(err.Error())
	}

	h.logger.Debug("table case executed",
		"case", c.Name,
		"rows", len(cr.Rows),
		"pass", cr.Pass,
	)
	return cr
}

// query converts a table case into a query.
func (h *Harness) query(c TableCase) (query.Query, error) {
	q := query.Query{Name: c.Name, Distinct: c.Distinct}
	for _, col := range c.Columns {
		q.Columns = append(q.Columns, query.ColumnSpec{Name: col.Name, Aggregate: col.Aggregate})
	}
	for _, o := range c.OrderBy {
		ascending := o.Ascending == nil || *o.Ascending
		q.OrderBy = append(q.OrderBy, query.OrderSpec{Column: o.Column, Ascending: ascending})
	}
	if c.Select != nil {
		q.Select = &query.SelectionSpec{Kind: c.Select.Kind, N: c.Select.N, Size: c.Select.Size}
	}
	rows, err := h.rows(c.Rows)
	if err != nil {
		return query.Query{}, fmt.Errorf("rows: %w", err)
	}
	q.Rows = rows
	return q, nil
}

func (h *Harness) rows(raw [][]any) ([][]ir.Value, error) {
	rows := make([][]ir.Value, len(raw))
	for r, cells := range raw {
		rows[r] = make([]ir.Value, len(cells))
		for c, cell := range cells {
			v, err := h.decode(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d cell %d: %w", r, c, err)
			}
			rows[r][c] = v
		}
	}
	return rows, nil
}

// checkError records the code of err and compares it with the expected code.
func checkError(cr *CaseResult, expected string, err error) {
	cr.ErrorCode = errorCode(err)
	switch {
	case expected == "":
		cr.AddError(fmt.Sprintf("unexpected error: %v", err))
	case expected != cr.ErrorCode:
		cr.AddError((&AssertionError{
			Expected: "error " + expected,
			Actual:   err.Error(),
		}).Error())
	}
}

// errorCode extracts the code of a built-in or result error.
func errorCode(err error) string {
	var ee *builtin.EvalError
	if errors.As(err, &ee) {
		return string(ee.Code)
	}
	var re *result.ResultError
	if errors.As(err, &re) {
		return string(re.Code)
	}
	return "ERROR"
}
