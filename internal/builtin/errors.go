package builtin

import (
	"errors"
	"fmt"
)

// EvalError represents a failed built-in evaluation.
//
// Shape errors (ARITY, UNBOUND_ARGUMENT_NOT_ALLOWED, UNSUPPORTED_BUILT_IN)
// mean the call itself is malformed and the enclosing rule cannot run.
// Value errors (ARGUMENT_TYPE, DIVISION_BY_ZERO, INVALID_REGULAR_EXPRESSION)
// depend on the data and mean the current substitution does not match.
type EvalError struct {
	// Code identifies the error category.
	Code ErrorCode

	// BuiltIn is the prefixed name of the built-in, e.g. "swrlb:add".
	BuiltIn string

	// Argument is the 0-based position of the offending argument, or -1.
	Argument int

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes evaluation errors.
type ErrorCode string

const (
	// ErrCodeArity indicates the wrong number of arguments.
	ErrCodeArity ErrorCode = "ARITY"

	// ErrCodeArgumentType indicates an argument of the wrong kind or a
	// malformed literal.
	ErrCodeArgumentType ErrorCode = "ARGUMENT_TYPE"

	// ErrCodeUnboundArgument indicates an unbound argument where a value is required.
	ErrCodeUnboundArgument ErrorCode = "UNBOUND_ARGUMENT_NOT_ALLOWED"

	// ErrCodeDivisionByZero indicates a zero divisor.
	ErrCodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"

	// ErrCodeInvalidRegex indicates a pattern that does not compile.
	ErrCodeInvalidRegex ErrorCode = "INVALID_REGULAR_EXPRESSION"

	// ErrCodeUnsupported indicates a built-in that is unknown or not implemented.
	ErrCodeUnsupported ErrorCode = "UNSUPPORTED_BUILT_IN"
)

// Error implements the error interface.
func (e *EvalError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Code, e.BuiltIn, e.Message)
	if e.Argument >= 0 {
		msg = fmt.Sprintf("%s: %s: argument %d: %s", e.Code, e.BuiltIn, e.Argument+1, e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *EvalError) Unwrap() error { return e.Err }

// IsShapeError reports whether err makes the enclosing rule malformed.
// Uses errors.As to handle wrapped errors.
func IsShapeError(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		switch ee.Code {
		case ErrCodeArity, ErrCodeUnboundArgument, ErrCodeUnsupported:
			return true
		}
	}
	return false
}

// IsValueError reports whether err only rejects the current substitution.
func IsValueError(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		switch ee.Code {
		case ErrCodeArgumentType, ErrCodeDivisionByZero, ErrCodeInvalidRegex:
			return true
		}
	}
	return false
}

// HasCode reports whether err is an EvalError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var ee *EvalError
	return errors.As(err, &ee) && ee.Code == code
}

func newArityError(name string, want Arity, got int) *EvalError {
	return &EvalError{
		Code:     ErrCodeArity,
		BuiltIn:  name,
		Argument: -1,
		Message:  fmt.Sprintf("expecting %s arguments, got %d", want, got),
	}
}

func newArgumentTypeError(name string, arg int, format string, args ...any) *EvalError {
	return &EvalError{
		Code:     ErrCodeArgumentType,
		BuiltIn:  name,
		Argument: arg,
		Message:  fmt.Sprintf(format, args...),
	}
}

func newUnboundError(name string, arg int) *EvalError {
	return &EvalError{
		Code:     ErrCodeUnboundArgument,
		BuiltIn:  name,
		Argument: arg,
		Message:  "argument must be bound",
	}
}

func newDivisionByZeroError(name string, arg int) *EvalError {
	return &EvalError{
		Code:     ErrCodeDivisionByZero,
		BuiltIn:  name,
		Argument: arg,
		Message:  "zero passed as divisor",
	}
}

func newRegexError(name string, arg int, pattern string, err error) *EvalError {
	return &EvalError{
		Code:     ErrCodeInvalidRegex,
		BuiltIn:  name,
		Argument: arg,
		Message:  fmt.Sprintf("invalid regular expression %q", pattern),
		Err:      err,
	}
}

func newUnsupportedError(name string) *EvalError {
	return &EvalError{
		Code:     ErrCodeUnsupported,
		BuiltIn:  name,
		Argument: -1,
		Message:  "built-in is not implemented",
	}
}
