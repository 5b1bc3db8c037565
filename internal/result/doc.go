// Package result implements SQWRL result tables.
//
// A Table is filled row by row, then Prepared once. Preparation applies, in
// order: aggregation over aggregate columns (plain columns act as grouping
// keys), duplicate removal when distinct was requested and nothing was
// aggregated, a stable sort on the order keys, and finally the single
// positional selection. After preparation the table is read through a
// forward cursor with typed accessors keyed by Index or Name.
//
// Misuse of the table is reported as *ResultError.
package result
