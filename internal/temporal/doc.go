// Package temporal implements the XSD date, time, dateTime and duration
// datatypes used by the built-in runtime and the value layer.
//
// The package owns three concerns:
//   - Parsing and canonical formatting of lexical forms
//   - A total order per datatype
//   - Calendar arithmetic (durations added to or subtracted from points in time)
//
// Values without a time-zone designator are compared as if they were in UTC.
// This package imports nothing internal.
package temporal
