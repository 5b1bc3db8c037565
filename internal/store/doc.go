// Package store provides SQLite-backed storage for exported result tables.
//
// A stored result set holds:
//   - result_sets: ID, logical seq, query name, schema hash, row count
//   - result_columns: column name and aggregate function per position
//   - result_rows: one content hash per row (ir.RowHash)
//   - result_cells: datatype and lexical form per cell, plus IRI and
//     entity kind for entity references
//
// Ordering always uses seq (a logical counter), never timestamps, so
// ListResults is deterministic.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
