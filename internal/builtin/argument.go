package builtin

import (
	"errors"
	"strings"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

// ErrAlreadySet is returned when a write-once slot is written twice.
var ErrAlreadySet = errors.New("slot already set")

// Once is a write-once slot. The zero value is empty.
type Once[T any] struct {
	v   T
	set bool
}

// Set fills the slot. It fails if the slot is already filled.
func (o *Once[T]) Set(v T) error {
	if o.set {
		return ErrAlreadySet
	}
	o.v, o.set = v, true
	return nil
}

// Get returns the slot's value and whether it has been set.
func (o *Once[T]) Get() (T, bool) { return o.v, o.set }

// IsSet reports whether the slot has been filled.
func (o *Once[T]) IsSet() bool { return o.set }

// Argument is a sealed interface over the argument forms a built-in can
// receive: a bound value, a single-valued variable, or a multi-valued
// variable. Only types in this package implement it.
type Argument interface {
	// String renders the argument for messages and CLI output.
	String() string

	argument() // Sealed
}

// Bound is an argument that already holds a value.
type Bound struct {
	Value ir.Value
}

func (Bound) argument() {}

func (b Bound) String() string { return b.Value.Lexical() }

// Val wraps a value as a bound argument.
func Val(v ir.Value) Bound { return Bound{Value: v} }

// Variable is a named argument slot that a built-in may fill once. A
// multi-valued built-in such as tokenize fills its multi-value slot
// instead of its value slot.
type Variable struct {
	Name  string
	value Once[ir.Value]
	multi Once[*MultiValueVariable]
}

func (*Variable) argument() {}

// Var creates an unbound variable.
func Var(name string) *Variable { return &Variable{Name: name} }

// IsBound reports whether either slot of the variable has been filled.
func (v *Variable) IsBound() bool { return v.value.IsSet() || v.multi.IsSet() }

// Value returns the single value bound to the variable.
func (v *Variable) Value() (ir.Value, bool) { return v.value.Get() }

// MultiValue returns the multi-valued binding of the variable, if any.
func (v *Variable) MultiValue() (*MultiValueVariable, bool) { return v.multi.Get() }

// Bind fills the variable's value slot.
func (v *Variable) Bind(val ir.Value) error { return v.value.Set(val) }

func (v *Variable) String() string {
	if val, ok := v.value.Get(); ok {
		return "?" + v.Name + "=" + val.Lexical()
	}
	if mv, ok := v.multi.Get(); ok {
		return mv.String()
	}
	return "?" + v.Name
}

// MultiValueVariable is a named argument holding an ordered sequence of
// values, written once.
type MultiValueVariable struct {
	Name   string
	values Once[[]ir.Value]
}

func (*MultiValueVariable) argument() {}

// MultiVar creates an unbound multi-valued variable.
func MultiVar(name string) *MultiValueVariable { return &MultiValueVariable{Name: name} }

// IsBound reports whether the sequence has been written.
func (m *MultiValueVariable) IsBound() bool { return m.values.IsSet() }

// Values returns a copy of the bound sequence.
func (m *MultiValueVariable) Values() []ir.Value {
	vals, _ := m.values.Get()
	return append([]ir.Value(nil), vals...)
}

// Bind writes the sequence.
func (m *MultiValueVariable) Bind(vals []ir.Value) error {
	return m.values.Set(append([]ir.Value(nil), vals...))
}

func (m *MultiValueVariable) String() string {
	vals, ok := m.values.Get()
	if !ok {
		return "?" + m.Name
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.Lexical()
	}
	return "?" + m.Name + "=[" + strings.Join(parts, ", ") + "]"
}

// Invocation is a single built-in call: a name and its ordered arguments.
// The argument list is owned by one evaluation attempt.
type Invocation struct {
	Name string
	Args []Argument
}

// isUnbound reports whether arg is a variable with nothing bound yet.
func isUnbound(arg Argument) bool {
	switch a := arg.(type) {
	case *Variable:
		return !a.IsBound()
	case *MultiValueVariable:
		return !a.IsBound()
	}
	return false
}
