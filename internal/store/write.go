package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
	"github.com/sachitrajbhandari/swrlapi/internal/result"
)

// ResultSet summarizes one exported result table.
type ResultSet struct {
	ID         string
	Seq        int64
	Name       string
	SchemaHash string
	Columns    []result.Column
	RowCount   int
	Distinct   bool
	IRVersion  string
}

// WriteResult persists a prepared table under a new result-set ID and
// returns its summary. The schema, every row with its content hash, and
// every cell (datatype, lexical form, entity IRI and kind) are written in
// one transaction.
//
// Seq is assigned as one past the highest stored seq, so ListResults
// returns result sets in the order they were written.
func (s *Store) WriteResult(ctx context.Context, name string, t *result.Table) (ResultSet, error) {
	if !t.IsPrepared() {
		return ResultSet{}, fmt.Errorf("write result %s: table is not prepared", name)
	}

	columns := t.Columns()
	names := make([]string, len(columns))
	aggregates := make([]string, len(columns))
	for i, c := range columns {
		names[i], aggregates[i] = c.Name, c.Aggregate.String()
	}
	schemaHash, err := ir.SchemaHash(names, aggregates)
	if err != nil {
		return ResultSet{}, fmt.Errorf("write result %s: %w", name, err)
	}

	rs := ResultSet{
		ID:         s.ids.Generate(),
		Name:       name,
		SchemaHash: schemaHash,
		Columns:    columns,
		RowCount:   t.NumberOfRows(),
		Distinct:   t.IsDistinct(),
		IRVersion:  ir.EncodingVersion,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ResultSet{}, fmt.Errorf("write result: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM result_sets`).Scan(&rs.Seq); err != nil {
		return ResultSet{}, fmt.Errorf("write result: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO result_sets
		(id, seq, name, schema_hash, row_count, is_distinct, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rs.ID,
		rs.Seq,
		rs.Name,
		rs.SchemaHash,
		rs.RowCount,
		rs.Distinct,
		rs.IRVersion,
	)
	if err != nil {
		return ResultSet{}, fmt.Errorf("write result: insert result set: %w", err)
	}

	for i, c := range columns {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO result_columns (result_set_id, position, name, aggregate)
			VALUES (?, ?, ?, ?)
		`, rs.ID, i, c.Name, aggregates[i])
		if err != nil {
			return ResultSet{}, fmt.Errorf("write result: insert column %s: %w", c.Name, err)
		}
	}

	for r, row := range t.Rows() {
		if err := writeRow(ctx, tx, rs.ID, r, row); err != nil {
			return ResultSet{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ResultSet{}, fmt.Errorf("write result: commit: %w", err)
	}
	return rs, nil
}

func writeRow(ctx context.Context, tx *sql.Tx, id string, index int, row []ir.Value) error {
	hash, err := ir.RowHash(row)
	if err != nil {
		return fmt.Errorf("write result: row %d: %w", index, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO result_rows (result_set_id, row_index, row_hash)
		VALUES (?, ?, ?)
	`, id, index, hash)
	if err != nil {
		return fmt.Errorf("write result: insert row %d: %w", index, err)
	}

	for pos, v := range row {
		lexical := v.Lexical()
		var iri, kind sql.NullString
		if e, ok := v.(ir.EntityRef); ok {
			lexical = e.DisplayName
			iri = sql.NullString{String: e.IRI, Valid: true}
			kind = sql.NullString{String: e.EntityKind.String(), Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO result_cells
			(result_set_id, row_index, position, datatype, lexical, entity_iri, entity_kind)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, index, pos, ir.Datatype(v), lexical, iri, kind)
		if err != nil {
			return fmt.Errorf("write result: insert cell %d/%d: %w", index, pos, err)
		}
	}
	return nil
}
