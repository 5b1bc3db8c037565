package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MigratesResultSchema(t *testing.T) {
	s := createTestStore(t)

	tests := []struct {
		table   string
		columns []string
	}{
		{"result_sets", []string{"id", "seq", "name", "schema_hash", "row_count", "is_distinct", "ir_version"}},
		{"result_columns", []string{"result_set_id", "position", "name", "aggregate"}},
		{"result_rows", []string{"result_set_id", "row_index", "row_hash"}},
		{"result_cells", []string{"result_set_id", "row_index", "position", "datatype", "lexical", "entity_iri", "entity_kind"}},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			assert.Equal(t, tt.columns, tableColumns(t, s.db, tt.table))
		})
	}

	assert.Contains(t, tableIndexes(t, s.db, "result_sets"), "idx_result_sets_name")
	assert.Equal(t, "1", pragma(t, s.db, "user_version"))
	assert.Equal(t, "1", pragma(t, s.db, "foreign_keys"))
}

func TestOpen_ReopenKeepsResults(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.db")

	s, err := Open(path, WithIDGenerator(NewFixedGenerator("rs-1")))
	require.NoError(t, err)
	_, err = s.WriteResult(ctx, "kept", createTestTable(t))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	for i := 0; i < 2; i++ {
		s, err = Open(path)
		require.NoError(t, err)
		sets, err := s.ListResults(ctx)
		require.NoError(t, err)
		require.Len(t, sets, 1)
		assert.Equal(t, "kept", sets[0].Name)
		assert.Equal(t, "1", pragma(t, s.db, "user_version"))
		require.NoError(t, s.Close())
	}
}

func TestOpen_InMemory(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:", WithIDGenerator(NewFixedGenerator("rs-1")))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.WriteResult(ctx, "scratch", createTestTable(t))
	require.NoError(t, err)

	_, tbl, err := s.ReadResult(ctx, "rs-1")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumberOfRows())
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/results.db")
	require.Error(t, err)
}

func TestClose_Unopened(t *testing.T) {
	assert.NoError(t, (&Store{}).Close())
}

func TestSchema_DeletingResultSetCascades(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, WithIDGenerator(NewFixedGenerator("rs-1")))
	_, err := s.WriteResult(ctx, "doomed", createTestTable(t))
	require.NoError(t, err)

	_, err = s.db.Exec(`DELETE FROM result_sets WHERE id = 'rs-1'`)
	require.NoError(t, err)

	for _, table := range []string{"result_columns", "result_rows", "result_cells"} {
		var n int
		require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, table)
	}
}

func TestSchema_CellsRequireRow(t *testing.T) {
	s := createTestStore(t)

	_, err := s.db.Exec(`
		INSERT INTO result_cells (result_set_id, row_index, position, datatype, lexical)
		VALUES ('missing', 0, 0, 'xsd:int', '1')
	`)
	assert.Error(t, err, "orphan cell must violate the row foreign key")
}

func tableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
	require.NoError(t, err)
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		columns = append(columns, name)
	}
	require.NoError(t, rows.Err())
	return columns
}

func tableIndexes(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = ?", table)
	require.NoError(t, err)
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		indexes = append(indexes, name)
	}
	require.NoError(t, rows.Err())
	return indexes
}

func pragma(t *testing.T, db *sql.DB, name string) string {
	t.Helper()
	var value string
	require.NoError(t, db.QueryRow("PRAGMA "+name).Scan(&value))
	return value
}
