// Package builtin evaluates SWRL core built-ins.
//
// A Runtime maps each BuiltIn to an operator. An invocation names a built-in
// and passes an ordered argument list in which each argument is a bound
// value, a Variable or a MultiValueVariable. Functional built-ins (math,
// string functions and temporal operations) compute a result from arguments
// 1..n-1 and bind it to argument 0 when that argument is an unbound
// variable, or compare against it otherwise. Predicates (comparisons,
// contains, matches and the like) require every argument to be bound.
//
// Failures are *EvalError values. IsShapeError reports errors that make the
// call itself malformed; IsValueError reports errors that only reject the
// current argument values.
package builtin
