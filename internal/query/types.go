package query

import "github.com/sachitrajbhandari/swrlapi/internal/ir"

// Query describes one SQWRL result table: its columns, the rows the rule
// matcher produced for it, and the result directives applied on Execute.
//
// Example (conceptual):
//
//	Query{
//	  Name:    "salaries",
//	  Columns: []ColumnSpec{{Name: "dept"}, {Name: "total", Aggregate: "sum"}},
//	  OrderBy: []OrderSpec{{Column: "total", Ascending: false}},
//	  Select:  &SelectionSpec{Kind: "first", N: 3},
//	  Rows:    [][]ir.Value{{ir.String("eng"), ir.NewInt(20)}},
//	}
//
// corresponds to the SQWRL consequent
//
//	sqwrl:select(?dept) ^ sqwrl:sum(?salary) ^ sqwrl:orderByDescending(?total) ^ sqwrl:limit(3)
type Query struct {
	Name     string            // Query name, unique within a CUE file
	Prefixes map[string]string // prefix → namespace used to display entities
	Columns  []ColumnSpec
	Distinct bool
	OrderBy  []OrderSpec    // Applied in priority order
	Select   *SelectionSpec // nil = all rows
	Rows     [][]ir.Value
}

// ColumnSpec declares one result column. An empty Aggregate is a plain
// column.
type ColumnSpec struct {
	Name      string
	Aggregate string
}

// OrderSpec orders rows by a column, referenced by name.
type OrderSpec struct {
	Column    string
	Ascending bool
}

// SelectionSpec is a positional selection. Kind uses the names accepted by
// result.ParseSelectionKind ("limit", "nthSlice", ...). Size applies only to
// slice kinds.
type SelectionSpec struct {
	Kind string
	N    int
	Size int
}

// ColumnNames returns the declared column names in order.
func (q Query) ColumnNames() []string {
	names := make([]string, len(q.Columns))
	for i, c := range q.Columns {
		names[i] = c.Name
	}
	return names
}

// columnIndex returns the position of the named column, or -1.
func (q Query) columnIndex(name string) int {
	for i, c := range q.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}
