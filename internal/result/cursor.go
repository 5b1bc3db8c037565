package result

import (
	"slices"
	"strconv"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

// ColumnKey selects a column by position or by name.
type ColumnKey interface {
	resolve(t *Table) (int, error)
}

// Index selects a column by 0-based position.
type Index int

func (i Index) resolve(t *Table) (int, error) {
	if int(i) < 0 || int(i) >= len(t.columns) {
		return 0, newError(ErrCodeIndexOutOfRange, strconv.Itoa(int(i)), "no column at index %d", int(i))
	}
	return int(i), nil
}

// Name selects a column by name.
type Name string

func (n Name) resolve(t *Table) (int, error) {
	if i := t.columnIndex(string(n)); i >= 0 {
		return i, nil
	}
	return 0, newError(ErrCodeIndexOutOfRange, string(n), "no such column")
}

func (t *Table) columnIndex(name string) int {
	return slices.IndexFunc(t.columns, func(c Column) bool { return c.Name == name })
}

// NumberOfColumns returns the schema width.
func (t *Table) NumberOfColumns() int { return len(t.columns) }

// NumberOfRows returns the number of rows currently held.
func (t *Table) NumberOfRows() int { return len(t.rows) }

// Columns returns a copy of the schema.
func (t *Table) Columns() []Column { return slices.Clone(t.columns) }

// ColumnNames returns the column names in schema order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// IsDistinct reports whether duplicate removal was requested.
func (t *Table) IsDistinct() bool { return t.distinct }

// IsOrdered reports whether any order key is set.
func (t *Table) IsOrdered() bool { return len(t.order) > 0 }

// IsOrderedAscending reports whether the primary order key is ascending.
func (t *Table) IsOrderedAscending() bool { return len(t.order) > 0 && t.order[0].Ascending }

// OrderKeys returns the order keys in priority order.
func (t *Table) OrderKeys() []OrderKey { return slices.Clone(t.order) }

// Selection returns the selection directive.
func (t *Table) Selection() Selection { return t.selection }

// Rows returns a snapshot of the rows.
func (t *Table) Rows() [][]ir.Value {
	out := make([][]ir.Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = slices.Clone(row)
	}
	return out
}

// Next advances the cursor and reports whether a row became current.
func (t *Table) Next() (bool, error) {
	if t.state != prepared {
		return false, stateError("table is not prepared")
	}
	if t.cursor < len(t.rows) {
		t.cursor++
	}
	return t.cursor < len(t.rows), nil
}

// HasNext reports whether Next would make a row current.
func (t *Table) HasNext() bool {
	return t.state == prepared && t.cursor+1 < len(t.rows)
}

// Reset moves the cursor back before the first row.
func (t *Table) Reset() error {
	if t.state != prepared {
		return stateError("table is not prepared")
	}
	t.cursor = -1
	return nil
}

// GetValue returns the value of a column in the current row.
func (t *Table) GetValue(key ColumnKey) (ir.Value, error) {
	if t.state != prepared {
		return nil, stateError("table is not prepared")
	}
	i, err := key.resolve(t)
	if err != nil {
		return nil, err
	}
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return nil, stateError("no current row")
	}
	return t.rows[t.cursor][i], nil
}

// GetColumn returns every value of a column, in row order.
func (t *Table) GetColumn(key ColumnKey) ([]ir.Value, error) {
	if t.state != prepared {
		return nil, stateError("table is not prepared")
	}
	i, err := key.resolve(t)
	if err != nil {
		return nil, err
	}
	out := make([]ir.Value, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

func (t *Table) entity(key ColumnKey, kind ir.EntityKind) (ir.EntityRef, error) {
	v, err := t.GetValue(key)
	if err != nil {
		return ir.EntityRef{}, err
	}
	e, ok := v.(ir.EntityRef)
	if !ok || e.EntityKind != kind {
		return ir.EntityRef{}, newError(ErrCodeTypeMismatch, t.keyName(key), "expecting %s, got %s", kind, ir.Datatype(v))
	}
	return e, nil
}

func (t *Table) hasEntity(key ColumnKey, kind ir.EntityKind) (bool, error) {
	v, err := t.GetValue(key)
	if err != nil {
		return false, err
	}
	e, ok := v.(ir.EntityRef)
	return ok && e.EntityKind == kind, nil
}

func (t *Table) keyName(key ColumnKey) string {
	if i, err := key.resolve(t); err == nil {
		return t.columns[i].Name
	}
	return ""
}

// HasClassValue reports whether the current cell is a class.
func (t *Table) HasClassValue(key ColumnKey) (bool, error) { return t.hasEntity(key, ir.EntityClass) }

// GetClass returns the current cell as a class.
func (t *Table) GetClass(key ColumnKey) (ir.EntityRef, error) { return t.entity(key, ir.EntityClass) }

// HasNamedIndividualValue reports whether the current cell is a named individual.
func (t *Table) HasNamedIndividualValue(key ColumnKey) (bool, error) {
	return t.hasEntity(key, ir.EntityNamedIndividual)
}

// GetNamedIndividual returns the current cell as a named individual.
func (t *Table) GetNamedIndividual(key ColumnKey) (ir.EntityRef, error) {
	return t.entity(key, ir.EntityNamedIndividual)
}

// HasObjectPropertyValue reports whether the current cell is an object property.
func (t *Table) HasObjectPropertyValue(key ColumnKey) (bool, error) {
	return t.hasEntity(key, ir.EntityObjectProperty)
}

// GetObjectProperty returns the current cell as an object property.
func (t *Table) GetObjectProperty(key ColumnKey) (ir.EntityRef, error) {
	return t.entity(key, ir.EntityObjectProperty)
}

// HasDataPropertyValue reports whether the current cell is a data property.
func (t *Table) HasDataPropertyValue(key ColumnKey) (bool, error) {
	return t.hasEntity(key, ir.EntityDataProperty)
}

// GetDataProperty returns the current cell as a data property.
func (t *Table) GetDataProperty(key ColumnKey) (ir.EntityRef, error) {
	return t.entity(key, ir.EntityDataProperty)
}

// HasAnnotationPropertyValue reports whether the current cell is an annotation property.
func (t *Table) HasAnnotationPropertyValue(key ColumnKey) (bool, error) {
	return t.hasEntity(key, ir.EntityAnnotationProperty)
}

// GetAnnotationProperty returns the current cell as an annotation property.
func (t *Table) GetAnnotationProperty(key ColumnKey) (ir.EntityRef, error) {
	return t.entity(key, ir.EntityAnnotationProperty)
}

// HasLiteralValue reports whether the current cell is a literal.
func (t *Table) HasLiteralValue(key ColumnKey) (bool, error) {
	v, err := t.GetValue(key)
	if err != nil {
		return false, err
	}
	return ir.IsLiteral(v), nil
}

// GetLiteral returns the current cell as a literal.
func (t *Table) GetLiteral(key ColumnKey) (ir.Value, error) {
	v, err := t.GetValue(key)
	if err != nil {
		return nil, err
	}
	if !ir.IsLiteral(v) {
		return nil, newError(ErrCodeTypeMismatch, t.keyName(key), "expecting a literal, got %s", ir.Datatype(v))
	}
	return v, nil
}
