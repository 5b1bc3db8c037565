package query

import (
	"fmt"

	"github.com/sachitrajbhandari/swrlapi/internal/result"
)

// Execute builds and prepares the result table for q.
//
// The table is driven through its phases in order: columns, rows, then the
// distinct, ordering and selection directives, then Prepared. The first
// table error aborts execution. Options are passed to the table.
func Execute(q Query, opts ...result.Option) (*result.Table, error) {
	t := result.NewTable(opts...)
	t.Logger().Debug("executing query",
		"query", q.Name,
		"columns", len(q.Columns),
		"rows", len(q.Rows),
	)

	for _, c := range q.Columns {
		if err := addColumn(t, c); err != nil {
			return nil, fmt.Errorf("query %s: %w", q.Name, err)
		}
	}
	if err := t.Configured(); err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Name, err)
	}

	for r, row := range q.Rows {
		if err := t.AddRow(row...); err != nil {
			return nil, fmt.Errorf("query %s: row %d: %w", q.Name, r, err)
		}
	}

	if err := applyDirectives(t, q); err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Name, err)
	}

	if err := t.Prepared(); err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Name, err)
	}
	return t, nil
}

func addColumn(t *result.Table, c ColumnSpec) error {
	fn, err := result.ParseAggregate(c.Aggregate)
	if err != nil {
		return err
	}
	if fn == result.NoAggregate {
		return t.AddColumn(c.Name)
	}
	return t.AddAggregateColumn(c.Name, fn)
}

func applyDirectives(t *result.Table, q Query) error {
	if q.Distinct {
		if err := t.SetIsDistinct(); err != nil {
			return err
		}
	}
	for _, o := range q.OrderBy {
		i := q.columnIndex(o.Column)
		if i < 0 {
			return &result.ResultError{
				Code:    result.ErrCodeOrderingOnNonExistentColumn,
				Column:  o.Column,
				Message: "no such column",
			}
		}
		if err := t.SetOrderByColumn(i, o.Ascending); err != nil {
			return err
		}
	}
	if q.Select != nil {
		kind, ok := result.ParseSelectionKind(q.Select.Kind)
		if !ok {
			return &result.ResultError{
				Code:    result.ErrCodeInvalidSelectionParameter,
				Message: fmt.Sprintf("unknown selection kind %q", q.Select.Kind),
			}
		}
		return t.SetSelection(result.Selection{Kind: kind, N: q.Select.N, Size: q.Select.Size})
	}
	return nil
}
