package result

import (
	"errors"
	"fmt"
)

// ResultError represents a misuse of a result table.
//
// Result errors always indicate a configuration bug in the query driving
// the table, never a data-dependent condition, and are fatal to the query.
type ResultError struct {
	// Code identifies the error category.
	Code ResultErrorCode

	// Column names the column involved, if any.
	Column string

	// Message is a human-readable description.
	Message string
}

// ResultErrorCode categorizes result errors.
type ResultErrorCode string

const (
	// ErrCodeSchemaMismatch indicates a row whose width differs from the schema,
	// or a column declared after rows were added.
	ErrCodeSchemaMismatch ResultErrorCode = "SCHEMA_MISMATCH"

	// ErrCodeInvalidSelectionParameter indicates a selection argument <= 0.
	ErrCodeInvalidSelectionParameter ResultErrorCode = "INVALID_SELECTION_PARAMETER"

	// ErrCodeOrderingOnNonExistentColumn indicates an order key outside the schema.
	ErrCodeOrderingOnNonExistentColumn ResultErrorCode = "ORDERING_ON_NON_EXISTENT_COLUMN"

	// ErrCodeTypeMismatch indicates a typed accessor used on a cell of
	// another kind, or an aggregate over values it cannot combine.
	ErrCodeTypeMismatch ResultErrorCode = "TYPE_MISMATCH"

	// ErrCodeIndexOutOfRange indicates an unknown column name or index.
	ErrCodeIndexOutOfRange ResultErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeInvalidState indicates an operation not allowed in the
	// table's current state.
	ErrCodeInvalidState ResultErrorCode = "INVALID_STATE"

	// ErrCodeUnknownAggregate indicates an aggregate function name that is
	// not recognized.
	ErrCodeUnknownAggregate ResultErrorCode = "UNKNOWN_AGGREGATE"
)

// Error implements the error interface.
func (e *ResultError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: %s (column=%s)", e.Code, e.Message, e.Column)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HasCode reports whether err is a ResultError with the given code.
// Uses errors.As to handle wrapped errors.
func HasCode(err error, code ResultErrorCode) bool {
	var re *ResultError
	return errors.As(err, &re) && re.Code == code
}

// IsTypeMismatch reports whether err is a TYPE_MISMATCH error.
func IsTypeMismatch(err error) bool { return HasCode(err, ErrCodeTypeMismatch) }

// IsOutOfRange reports whether err is an INDEX_OUT_OF_RANGE error.
func IsOutOfRange(err error) bool { return HasCode(err, ErrCodeIndexOutOfRange) }

func newError(code ResultErrorCode, column, format string, args ...any) *ResultError {
	return &ResultError{Code: code, Column: column, Message: fmt.Sprintf(format, args...)}
}

func stateError(format string, args ...any) *ResultError {
	return newError(ErrCodeInvalidState, "", format, args...)
}
