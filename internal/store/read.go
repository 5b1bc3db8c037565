package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
	"github.com/sachitrajbhandari/swrlapi/internal/result"
)

// ListResults returns every stored result set ordered by seq.
// Column lists are not loaded; use ReadResult for a full result set.
//
// Returns an empty slice (not nil) if the store holds no result sets.
func (s *Store) ListResults(ctx context.Context) ([]ResultSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, name, schema_hash, row_count, is_distinct, ir_version
		FROM result_sets
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query result sets: %w", err)
	}
	defer rows.Close()

	sets := []ResultSet{}
	for rows.Next() {
		rs, err := scanResultSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate result sets: %w", err)
	}
	return sets, nil
}

// ReadResult loads a result set and rebuilds it as a prepared table with
// the stored row order. Returns an error wrapping sql.ErrNoRows if id is
// unknown.
func (s *Store) ReadResult(ctx context.Context, id string) (ResultSet, *result.Table, error) {
	rs, err := scanResultSet(s.db.QueryRowContext(ctx, `
		SELECT id, seq, name, schema_hash, row_count, is_distinct, ir_version
		FROM result_sets
		WHERE id = ?
	`, id))
	if err != nil {
		return ResultSet{}, nil, fmt.Errorf("read result %s: %w", id, err)
	}

	if rs.Columns, err = s.readColumns(ctx, id); err != nil {
		return ResultSet{}, nil, err
	}
	cells, err := s.readRows(ctx, id, rs.RowCount, len(rs.Columns))
	if err != nil {
		return ResultSet{}, nil, err
	}

	t, err := result.NewPreparedTable(rs.Columns, cells)
	if err != nil {
		return ResultSet{}, nil, fmt.Errorf("read result %s: %w", id, err)
	}
	return rs, t, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanResultSet(row rowScanner) (ResultSet, error) {
	var rs ResultSet
	err := row.Scan(&rs.ID, &rs.Seq, &rs.Name, &rs.SchemaHash, &rs.RowCount, &rs.Distinct, &rs.IRVersion)
	if err != nil {
		return ResultSet{}, fmt.Errorf("scan result set: %w", err)
	}
	return rs, nil
}

func (s *Store) readColumns(ctx context.Context, id string) ([]result.Column, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, name, aggregate
		FROM result_columns
		WHERE result_set_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var columns []result.Column
	for rows.Next() {
		var (
			c   result.Column
			agg string
		)
		if err := rows.Scan(&c.Position, &c.Name, &agg); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		if c.Aggregate, err = result.ParseAggregate(agg); err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}
	return columns, nil
}

func (s *Store) readRows(ctx context.Context, id string, rowCount, width int) ([][]ir.Value, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT row_index, position, datatype, lexical, entity_iri, entity_kind
		FROM result_cells
		WHERE result_set_id = ?
		ORDER BY row_index ASC, position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query cells: %w", err)
	}
	defer rows.Close()

	out := make([][]ir.Value, rowCount)
	for i := range out {
		out[i] = make([]ir.Value, width)
	}
	for rows.Next() {
		var (
			r, pos            int
			datatype, lexical string
			iri, kind         sql.NullString
		)
		if err := rows.Scan(&r, &pos, &datatype, &lexical, &iri, &kind); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		if r < 0 || r >= rowCount || pos < 0 || pos >= width {
			return nil, fmt.Errorf("cell %d/%d outside %dx%d result set", r, pos, rowCount, width)
		}
		v, err := decodeCell(datatype, lexical, iri, kind)
		if err != nil {
			return nil, fmt.Errorf("cell %d/%d: %w", r, pos, err)
		}
		out[r][pos] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cells: %w", err)
	}
	for r, row := range out {
		for pos, v := range row {
			if v == nil {
				return nil, fmt.Errorf("cell %d/%d is missing", r, pos)
			}
		}
	}
	return out, nil
}

// decodeCell rebuilds a typed value from its stored columns.
func decodeCell(datatype, lexical string, iri, kind sql.NullString) (ir.Value, error) {
	if kind.Valid {
		k, ok := ir.ParseEntityKind(kind.String)
		if !ok {
			return nil, fmt.Errorf("unknown entity kind %q", kind.String)
		}
		return ir.NewEntityRef(k, iri.String, lexical), nil
	}
	return ir.ParseLiteral(datatype, lexical)
}
