package result

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

// Column is one column of a result schema.
type Column struct {
	Name      string
	Aggregate Aggregate
	Position  int
}

// IsAggregate reports whether the column is computed over all rows.
func (c Column) IsAggregate() bool { return c.Aggregate != NoAggregate }

// OrderKey orders rows by one column.
type OrderKey struct {
	Column    int
	Ascending bool
}

type state int

const (
	configuring state = iota
	building
	prepared
)

// Table is a SQWRL result table. It accumulates rows while Building, then
// Prepared runs aggregation, deduplication, ordering and selection once and
// exposes the rows through a forward cursor.
//
// A Table is owned by one query execution and is not safe for concurrent use.
type Table struct {
	columns   []Column
	rows      [][]ir.Value
	openRow   []ir.Value
	rowIsOpen bool

	distinct  bool
	order     []OrderKey
	selection Selection

	state  state
	cursor int

	logger *slog.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger used to trace Prepared.
//
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTable creates an empty table in the configuring phase.
func NewTable(opts ...Option) *Table {
	t := &Table{cursor: -1, logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Logger returns the logger the table traces through.
func (t *Table) Logger() *slog.Logger { return t.logger }

// NewPreparedTable creates a table that is already prepared, holding rows
// produced by an earlier Prepared call. Rows are copied and not processed
// again.
func NewPreparedTable(columns []Column, rows [][]ir.Value, opts ...Option) (*Table, error) {
	t := NewTable(opts...)
	for i, c := range columns {
		c.Position = i
		t.columns = append(t.columns, c)
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, newError(ErrCodeSchemaMismatch, "", "row %d has %d cells, schema has %d columns", i, len(row), len(columns))
		}
		t.rows = append(t.rows, slices.Clone(row))
	}
	t.state = prepared
	return t, nil
}

// AddColumn declares a plain column.
func (t *Table) AddColumn(name string) error {
	return t.addColumn(name, NoAggregate)
}

// AddAggregateColumn declares a column computed by an aggregate function.
func (t *Table) AddAggregateColumn(name string, fn Aggregate) error {
	if _, ok := aggregateNames[fn]; !ok {
		return newError(ErrCodeUnknownAggregate, name, "unknown aggregate function %d", int(fn))
	}
	return t.addColumn(name, fn)
}

func (t *Table) addColumn(name string, fn Aggregate) error {
	if t.state != configuring {
		return newError(ErrCodeSchemaMismatch, name, "columns must be declared before the first row")
	}
	if t.columnIndex(name) >= 0 {
		return newError(ErrCodeSchemaMismatch, name, "duplicate column")
	}
	t.columns = append(t.columns, Column{Name: name, Aggregate: fn, Position: len(t.columns)})
	return nil
}

// Configured closes the configuring phase. Opening the first row closes it
// implicitly.
func (t *Table) Configured() error {
	if t.state == prepared {
		return stateError("table is already prepared")
	}
	t.state = building
	return nil
}

// IsConfigured reports whether the schema is closed.
func (t *Table) IsConfigured() bool { return t.state != configuring }

// IsPrepared reports whether Prepared has run.
func (t *Table) IsPrepared() bool { return t.state == prepared }

// OpenRow starts a new row.
func (t *Table) OpenRow() error {
	if t.state == prepared {
		return stateError("table is already prepared")
	}
	if t.rowIsOpen {
		return stateError("a row is already open")
	}
	t.state = building
	t.rowIsOpen = true
	t.openRow = make([]ir.Value, 0, len(t.columns))
	return nil
}

// AddCell appends a value to the open row.
func (t *Table) AddCell(v ir.Value) error {
	if !t.rowIsOpen {
		return stateError("no open row")
	}
	if v == nil {
		return newError(ErrCodeSchemaMismatch, "", "nil cell value")
	}
	if len(t.openRow) >= len(t.columns) {
		return newError(ErrCodeSchemaMismatch, "", "row has more cells than the %d columns", len(t.columns))
	}
	t.openRow = append(t.openRow, v)
	return nil
}

// CloseRow appends the open row to the table. A row with the wrong number
// of cells is discarded.
func (t *Table) CloseRow() error {
	if !t.rowIsOpen {
		return stateError("no open row")
	}
	row := t.openRow
	t.rowIsOpen, t.openRow = false, nil
	if len(row) != len(t.columns) {
		return newError(ErrCodeSchemaMismatch, "", "row has %d cells, schema has %d columns", len(row), len(t.columns))
	}
	t.rows = append(t.rows, row)
	return nil
}

// AddRow opens, fills and closes one row.
func (t *Table) AddRow(values ...ir.Value) error {
	if err := t.OpenRow(); err != nil {
		return err
	}
	for _, v := range values {
		if err := t.AddCell(v); err != nil {
			t.rowIsOpen, t.openRow = false, nil
			return err
		}
	}
	return t.CloseRow()
}

// SetIsDistinct requests removal of duplicate rows.
func (t *Table) SetIsDistinct() error {
	if t.state == prepared {
		return stateError("table is already prepared")
	}
	t.distinct = true
	return nil
}

// SetOrderByColumn adds an order key. Keys apply in the order they are set.
func (t *Table) SetOrderByColumn(index int, ascending bool) error {
	if t.state == prepared {
		return stateError("table is already prepared")
	}
	if index < 0 || index >= len(t.columns) {
		return newError(ErrCodeOrderingOnNonExistentColumn, "", "no column at index %d", index)
	}
	t.order = append(t.order, OrderKey{Column: index, Ascending: ascending})
	return nil
}

// SetSelection sets the single selection directive.
func (t *Table) SetSelection(s Selection) error {
	if t.state == prepared {
		return stateError("table is already prepared")
	}
	if t.selection.Kind != SelectNone {
		return stateError("selection %s is already set", t.selection.Kind)
	}
	if _, ok := selectionNames[s.Kind]; !ok || s.Kind == SelectNone {
		return newError(ErrCodeInvalidSelectionParameter, "", "unknown selection kind %d", int(s.Kind))
	}
	if s.N <= 0 {
		return newError(ErrCodeInvalidSelectionParameter, "", "%s requires a positive argument, got %d", s.Kind, s.N)
	}
	if s.Kind.IsSlice() && s.Size <= 0 {
		return newError(ErrCodeInvalidSelectionParameter, "", "%s requires a positive slice size, got %d", s.Kind, s.Size)
	}
	if !s.Kind.IsSlice() {
		s.Size = 0
	}
	t.selection = s
	return nil
}

// SetLimit keeps the first n rows.
func (t *Table) SetLimit(n int) error { return t.SetSelection(Selection{Kind: SelectLimit, N: n}) }

// SetFirst keeps the first n rows.
func (t *Table) SetFirst(n int) error { return t.SetSelection(Selection{Kind: SelectFirst, N: n}) }

// SetLast keeps the last row.
func (t *Table) SetLast() error { return t.SetLastN(1) }

// SetLastN keeps the last n rows.
func (t *Table) SetLastN(n int) error { return t.SetSelection(Selection{Kind: SelectLast, N: n}) }

// SetNth keeps the row at position n.
func (t *Table) SetNth(n int) error { return t.SetSelection(Selection{Kind: SelectNth, N: n}) }

// SetNotNth removes the row at position n.
func (t *Table) SetNotNth(n int) error { return t.SetSelection(Selection{Kind: SelectNotNth, N: n}) }

// SetNthSlice keeps size rows starting at position nth.
func (t *Table) SetNthSlice(nth, size int) error {
	return t.SetSelection(Selection{Kind: SelectNthSlice, N: nth, Size: size})
}

// SetNotNthSlice removes size rows starting at position nth.
func (t *Table) SetNotNthSlice(nth, size int) error {
	return t.SetSelection(Selection{Kind: SelectNotNthSlice, N: nth, Size: size})
}

// SetNotFirst removes the first n rows.
func (t *Table) SetNotFirst(n int) error {
	return t.SetSelection(Selection{Kind: SelectNotFirst, N: n})
}

// SetNotLast removes the last n rows.
func (t *Table) SetNotLast(n int) error { return t.SetSelection(Selection{Kind: SelectNotLast, N: n}) }

// SetNthLastSlice keeps size rows ending at position nth counted from the
// end, where the last row is position 1.
func (t *Table) SetNthLastSlice(nth, size int) error {
	return t.SetSelection(Selection{Kind: SelectNthLastSlice, N: nth, Size: size})
}

// SetNotNthLastSlice removes the rows SetNthLastSlice would keep.
func (t *Table) SetNotNthLastSlice(nth, size int) error {
	return t.SetSelection(Selection{Kind: SelectNotNthLastSlice, N: nth, Size: size})
}

// Prepared finalizes the table: aggregate, then distinct (only without
// aggregation), then order, then select. The cursor is left before the
// first row.
func (t *Table) Prepared() error {
	if t.state == prepared {
		return stateError("table is already prepared")
	}
	if t.rowIsOpen {
		return stateError("a row is still open")
	}

	rows := t.rows
	t.logger.Debug("preparing result table",
		"columns", len(t.columns),
		"rows", len(rows),
	)

	aggregated := false
	if t.hasAggregates() {
		var err error
		if rows, err = t.aggregate(rows); err != nil {
			return err
		}
		aggregated = true
		t.logger.Debug("aggregated rows", "rows", len(rows))
	}

	if t.distinct && !aggregated {
		rows = distinctRows(rows)
		t.logger.Debug("removed duplicate rows", "rows", len(rows))
	}

	if len(t.order) > 0 {
		slices.SortStableFunc(rows, t.compareRows)
	}

	rows = t.selection.apply(rows)
	t.logger.Debug("result table prepared",
		"rows", len(rows),
		"selection", t.selection.Kind.String(),
	)

	t.rows = rows
	t.state = prepared
	t.cursor = -1
	return nil
}

func (t *Table) hasAggregates() bool {
	return slices.ContainsFunc(t.columns, Column.IsAggregate)
}

// aggregate groups rows by their plain columns, in first-seen order, and
// computes each aggregate column over its group. With no plain columns all
// rows form one group, so the result is exactly one row; over no rows that
// row exists only when every aggregate has a value for the empty multiset
// (count, countDistinct and sum).
func (t *Table) aggregate(rows [][]ir.Value) ([][]ir.Value, error) {
	if len(rows) == 0 {
		return t.emptyAggregate(), nil
	}
	type group struct {
		first  []ir.Value
		values [][]ir.Value // per column
	}
	var (
		groups []*group
		index  = make(map[string]*group)
	)
	for _, row := range rows {
		key := t.groupKey(row)
		g, ok := index[key]
		if !ok {
			g = &group{first: row, values: make([][]ir.Value, len(t.columns))}
			index[key] = g
			groups = append(groups, g)
		}
		for i, c := range t.columns {
			if c.IsAggregate() {
				g.values[i] = append(g.values[i], row[i])
			}
		}
	}

	out := make([][]ir.Value, 0, len(groups))
	for _, g := range groups {
		row := slices.Clone(g.first)
		for i, c := range t.columns {
			if !c.IsAggregate() {
				continue
			}
			v, err := c.Aggregate.apply(c.Name, g.values[i])
			if err != nil {
				return nil, err
			}
			row[i] = v
		}
		out = append(out, row)
	}
	return out, nil
}

func (t *Table) emptyAggregate() [][]ir.Value {
	row := make([]ir.Value, len(t.columns))
	for i, c := range t.columns {
		if !c.IsAggregate() {
			return nil
		}
		v, ok := c.Aggregate.empty()
		if !ok {
			return nil
		}
		row[i] = v
	}
	return [][]ir.Value{row}
}

func (t *Table) groupKey(row []ir.Value) string {
	var b strings.Builder
	for i, c := range t.columns {
		if !c.IsAggregate() {
			b.WriteString(ir.Key(row[i]))
			b.WriteByte(0x1e)
		}
	}
	return b.String()
}

// distinctRows keeps the first of each set of identical rows.
func distinctRows(rows [][]ir.Value) [][]ir.Value {
	seen := make(map[string]struct{}, len(rows))
	out := make([][]ir.Value, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		for _, v := range row {
			b.WriteString(ir.Key(v))
			b.WriteByte(0x1e)
		}
		key := b.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

func (t *Table) compareRows(a, b []ir.Value) int {
	for _, k := range t.order {
		c := ir.CompareTotal(a[k.Column], b[k.Column])
		if !k.Ascending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}
