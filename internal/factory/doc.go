// Package factory resolves IRIs to prefixed names and builds values.
//
// The IRIResolver is the only place prefixed names are computed. The
// ValueFactory uses it to give every entity reference a display name at
// creation time, and decodes the tagged cell form ({int: 20},
// {class: "test:C1"}, "string:abc") shared by YAML scenarios, CUE query
// specs and the command line.
package factory
