// Package compiler turns CUE query specs into query.Query values.
//
// Specs are written as
//
//	query: <name>: {
//	    prefixes: test: "http://example.org/test#"
//	    columns: [{name: "c"}, {name: "n", aggregate: "count"}]
//	    order_by: [{column: "c"}]
//	    select: {kind: "first", n: 3}
//	    rows: [[{class: "test:C1"}, {int: 20}]]
//	}
//
// Each query is unified with the embedded #Query schema before it is read,
// so malformed specs fail with CUE source positions in a *CompileError.
package compiler
