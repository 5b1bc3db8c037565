package compiler

import (
	_ "embed"
	"fmt"
	"sort"

	"cuelang.org/go/cue"

	"github.com/sachitrajbhandari/swrlapi/internal/factory"
	"github.com/sachitrajbhandari/swrlapi/internal/ir"
	"github.com/sachitrajbhandari/swrlapi/internal/query"
)

//go:embed schema.cue
var schemaSource string

// querySchema compiles the embedded schema in the context of v and returns
// the #Query definition.
func querySchema(v cue.Value) (cue.Value, error) {
	schema := v.Context().CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile query schema: %w", err)
	}
	return schema.LookupPath(cue.MakePath(cue.Def("#Query"))), nil
}

// CompileQueries compiles every query under the `query` field of v, in
// name order. A missing `query` field yields no queries.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`query: ages: { columns: [{name: "age"}] }`)
//	queries, err := CompileQueries(v, factory.NewValueFactory(nil))
func CompileQueries(v cue.Value, f *factory.ValueFactory) ([]query.Query, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	queriesVal := v.LookupPath(cue.ParsePath("query"))
	if !queriesVal.Exists() {
		return nil, nil
	}
	iter, err := queriesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var queries []query.Query
	for iter.Next() {
		q, err := CompileQuery(iter.Value(), f)
		if err != nil {
			return nil, err
		}
		queries = append(queries, *q)
	}
	sort.SliceStable(queries, func(i, j int) bool { return queries[i].Name < queries[j].Name })
	return queries, nil
}

// CompileQuery parses a CUE value into a Query. The value is unified with
// the embedded #Query schema first, so structural errors carry CUE
// positions. Cells are single-key tagged structs such as {int: 20} or
// {class: "test:C1"}; entities are named through f extended with the
// query's own prefixes.
func CompileQuery(v cue.Value, f *factory.ValueFactory) (*query.Query, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	q := &query.Query{}
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		q.Name = labels[len(labels)-1].String()
	}

	def, err := querySchema(v)
	if err != nil {
		return nil, err
	}
	unified := def.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	if q.Prefixes, err = parsePrefixes(unified); err != nil {
		return nil, err
	}
	if q.Columns, err = parseColumns(unified); err != nil {
		return nil, err
	}
	if distinctVal := unified.LookupPath(cue.ParsePath("distinct")); distinctVal.Exists() {
		if q.Distinct, err = distinctVal.Bool(); err != nil {
			return nil, formatCUEError(err)
		}
	}
	if q.OrderBy, err = parseOrderBy(unified); err != nil {
		return nil, err
	}
	if q.Select, err = parseSelection(unified); err != nil {
		return nil, err
	}

	vf := withPrefixes(f, q.Prefixes)
	if q.Rows, err = parseRows(unified, vf); err != nil {
		return nil, err
	}
	return q, nil
}

// withPrefixes returns a factory whose resolver knows f's prefixes plus
// extra. f itself is not modified.
func withPrefixes(f *factory.ValueFactory, extra map[string]string) *factory.ValueFactory {
	if len(extra) == 0 && f != nil {
		return f
	}
	resolver := factory.NewIRIResolver()
	if f != nil {
		for p, ns := range f.Resolver().Prefixes() {
			resolver.SetPrefix(p, ns)
		}
	}
	for p, ns := range extra {
		resolver.SetPrefix(p, ns)
	}
	return factory.NewValueFactory(resolver)
}

func parsePrefixes(v cue.Value) (map[string]string, error) {
	prefixesVal := v.LookupPath(cue.ParsePath("prefixes"))
	if !prefixesVal.Exists() {
		return nil, nil
	}
	iter, err := prefixesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	prefixes := make(map[string]string)
	for iter.Next() {
		ns, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		prefixes[iter.Label()] = ns
	}
	return prefixes, nil
}

func parseColumns(v cue.Value) ([]query.ColumnSpec, error) {
	iter, err := v.LookupPath(cue.ParsePath("columns")).List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var columns []query.ColumnSpec
	for iter.Next() {
		colVal := iter.Value()
		name, err := colVal.LookupPath(cue.ParsePath("name")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		col := query.ColumnSpec{Name: name}
		if aggVal := colVal.LookupPath(cue.ParsePath("aggregate")); aggVal.Exists() {
			if col.Aggregate, err = aggVal.String(); err != nil {
				return nil, formatCUEError(err)
			}
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func parseOrderBy(v cue.Value) ([]query.OrderSpec, error) {
	orderVal := v.LookupPath(cue.ParsePath("order_by"))
	if !orderVal.Exists() {
		return nil, nil
	}
	iter, err := orderVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var order []query.OrderSpec
	for iter.Next() {
		column, err := iter.Value().LookupPath(cue.ParsePath("column")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		ascending, err := iter.Value().LookupPath(cue.ParsePath("ascending")).Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		order = append(order, query.OrderSpec{Column: column, Ascending: ascending})
	}
	return order, nil
}

func parseSelection(v cue.Value) (*query.SelectionSpec, error) {
	selVal := v.LookupPath(cue.ParsePath("select"))
	if !selVal.Exists() {
		return nil, nil
	}
	kind, err := selVal.LookupPath(cue.ParsePath("kind")).String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	n, err := selVal.LookupPath(cue.ParsePath("n")).Int64()
	if err != nil {
		return nil, formatCUEError(err)
	}
	sel := &query.SelectionSpec{Kind: kind, N: int(n)}
	if sizeVal := selVal.LookupPath(cue.ParsePath("size")); sizeVal.Exists() {
		size, err := sizeVal.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		sel.Size = int(size)
	}
	return sel, nil
}

func parseRows(v cue.Value, f *factory.ValueFactory) ([][]ir.Value, error) {
	rowsVal := v.LookupPath(cue.ParsePath("rows"))
	if !rowsVal.Exists() {
		return nil, nil
	}
	rowIter, err := rowsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var rows [][]ir.Value
	for r := 0; rowIter.Next(); r++ {
		cellIter, err := rowIter.Value().List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var row []ir.Value
		for c := 0; cellIter.Next(); c++ {
			cell, err := parseCell(cellIter.Value(), f)
			if err != nil {
				if _, ok := err.(*CompileError); ok {
					return nil, err
				}
				return nil, &CompileError{
					Field:   fmt.Sprintf("rows[%d][%d]", r, c),
					Message: err.Error(),
					Pos:     cellIter.Value().Pos(),
				}
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseCell decodes a tagged cell struct through the value factory.
func parseCell(v cue.Value, f *factory.ValueFactory) (ir.Value, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	cell := make(map[string]any, 1)
	for iter.Next() {
		raw, err := scalar(iter.Value())
		if err != nil {
			return nil, err
		}
		cell[iter.Label()] = raw
	}
	return f.DecodeCell(cell)
}

// scalar extracts a Go scalar from a concrete CUE value.
func scalar(v cue.Value) (any, error) {
	switch v.Kind() {
	case cue.IntKind:
		i, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return i, nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return f, nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return s, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return b, nil
	}
	return nil, &CompileError{
		Field:   "cell",
		Message: fmt.Sprintf("unsupported value kind: %v", v.Kind()),
		Pos:     v.Pos(),
	}
}
