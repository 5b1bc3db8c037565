package store

import (
	"path/filepath"
	"testing"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
	"github.com/sachitrajbhandari/swrlapi/internal/result"
)

// createTestStore creates a new store in a temporary directory for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestTable builds a prepared table covering every value kind.
func createTestTable(t *testing.T) *result.Table {
	t.Helper()
	tbl := result.NewTable()
	for _, name := range []string{"entity", "number", "text"} {
		if err := tbl.AddColumn(name); err != nil {
			t.Fatalf("AddColumn(%s) failed: %v", name, err)
		}
	}
	rows := [][]ir.Value{
		{ir.NewEntityRef(ir.EntityClass, "http://example.org/test#C1", "test:C1"), ir.NewInt(20), ir.String("a")},
		{ir.NewEntityRef(ir.EntityNamedIndividual, "http://example.org/test#i1", "test:i1"), ir.NewDouble(2.5), ir.Boolean(true)},
	}
	for _, row := range rows {
		if err := tbl.AddRow(row...); err != nil {
			t.Fatalf("AddRow() failed: %v", err)
		}
	}
	if err := tbl.SetOrderByColumn(1, false); err != nil {
		t.Fatalf("SetOrderByColumn() failed: %v", err)
	}
	if err := tbl.Prepared(); err != nil {
		t.Fatalf("Prepared() failed: %v", err)
	}
	return tbl
}
