// Package query describes SQWRL result queries as plain data and runs them
// against the result engine.
//
// A Query carries the column schema, the rows produced by rule matching and
// the result directives (distinct, order by, one positional selection).
// Validate reports problems without side effects; Execute drives a
// result.Table through its phases and returns it prepared.
//
// Queries usually come from CUE specs compiled by package compiler, or from
// YAML scenarios in package harness.
package query
