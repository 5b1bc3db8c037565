package builtin

import (
	"log/slog"
	"slices"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

// operator evaluates one built-in against an arity-checked call.
type operator func(c *call) (bool, error)

// Runtime evaluates built-in invocations. It owns its own operator table,
// is immutable after construction, and is safe for concurrent use.
type Runtime struct {
	ops    map[BuiltIn]operator
	logger *slog.Logger
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for dispatch and failure messages.
//
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithoutBuiltIns removes built-ins from the runtime. Invoking a removed
// built-in fails with UNSUPPORTED_BUILT_IN.
func WithoutBuiltIns(builtIns ...BuiltIn) Option {
	return func(r *Runtime) {
		for _, b := range builtIns {
			delete(r.ops, b)
		}
	}
}

// NewRuntime creates a Runtime with the full core library.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		ops:    operators(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func operators() map[BuiltIn]operator {
	ops := map[BuiltIn]operator{
		GreaterThan:        compareWith(GreaterThan),
		LessThan:           compareWith(LessThan),
		Equal:              compareWith(Equal),
		NotEqual:           compareWith(NotEqual),
		LessThanOrEqual:    compareWith(LessThanOrEqual),
		GreaterThanOrEqual: compareWith(GreaterThanOrEqual),

		Add:             evalAdd,
		Subtract:        evalSubtract,
		Multiply:        evalMultiply,
		Divide:          evalDivide,
		IntegerDivide:   evalIntegerDivide,
		Mod:             evalMod,
		Pow:             evalPow,
		UnaryPlus:       evalUnaryPlus,
		UnaryMinus:      evalUnaryMinus,
		Abs:             evalAbs,
		Ceiling:         roundingWith(Ceiling),
		Floor:           roundingWith(Floor),
		Round:           roundingWith(Round),
		RoundHalfToEven: roundingWith(RoundHalfToEven),
		Sin:             trigWith(Sin),
		Cos:             trigWith(Cos),
		Tan:             trigWith(Tan),

		BooleanNot: evalBooleanNot,

		StringEqualIgnoreCase: evalStringEqualIgnoreCase,
		StringConcat:          evalStringConcat,
		Substring:             evalSubstring,
		StringLength:          evalStringLength,
		NormalizeSpace:        evalNormalizeSpace,
		UpperCase:             evalUpperCase,
		LowerCase:             evalLowerCase,
		Translate:             evalTranslate,
		Contains:              evalContains,
		ContainsIgnoreCase:    evalContainsIgnoreCase,
		StartsWith:            evalStartsWith,
		EndsWith:              evalEndsWith,
		SubstringBefore:       evalSubstringBefore,
		SubstringAfter:        evalSubstringAfter,
		Matches:               evalMatches,
		Replace:               evalReplace,
		Tokenize:              evalTokenize,
	}
	for b, op := range temporalOperators() {
		ops[b] = op
	}
	for _, b := range []BuiltIn{
		ResolveURI, AnyURI, ListConcat, ListIntersection, ListSubtraction,
		Member, Length, First, Rest, Sublist, Empty,
	} {
		ops[b] = evalUnsupported
	}
	return ops
}

// Evaluate runs one invocation. It reports whether the built-in is satisfied
// and binds at most one previously unbound variable on success.
func (r *Runtime) Evaluate(inv Invocation) (bool, error) {
	b, ok := ParseBuiltIn(inv.Name)
	if !ok {
		err := newUnsupportedError(inv.Name)
		r.logger.Warn("unknown built-in", "builtin", inv.Name)
		return false, err
	}
	name := b.String()

	op, ok := r.ops[b]
	if !ok {
		err := newUnsupportedError(name)
		r.logger.Warn("built-in disabled", "builtin", name)
		return false, err
	}

	if arity := b.Arity(); !arity.Accepts(len(inv.Args)) {
		err := newArityError(name, arity, len(inv.Args))
		r.logger.Warn("built-in arity mismatch",
			"builtin", name,
			"want", arity.String(),
			"got", len(inv.Args),
		)
		return false, err
	}

	r.logger.Debug("evaluating built-in",
		"builtin", name,
		"args", len(inv.Args),
	)

	satisfied, err := op(&call{name: name, args: inv.Args})
	if err != nil {
		if IsShapeError(err) {
			r.logger.Warn("built-in call is malformed",
				"builtin", name,
				"error", err,
			)
		} else {
			r.logger.Debug("built-in rejected arguments",
				"builtin", name,
				"error", err,
			)
		}
		return false, err
	}
	return satisfied, nil
}

// Call evaluates b with the given arguments.
func (r *Runtime) Call(b BuiltIn, args ...Argument) (bool, error) {
	return r.Evaluate(Invocation{Name: b.String(), Args: args})
}

// Names returns the prefixed names of every built-in this runtime knows,
// sorted.
func (r *Runtime) Names() []string {
	names := make([]string, 0, len(r.ops))
	for b := range r.ops {
		names = append(names, b.String())
	}
	slices.Sort(names)
	return names
}

// Arity returns the arity of the named built-in.
func (r *Runtime) Arity(name string) (Arity, bool) {
	b, ok := ParseBuiltIn(name)
	if !ok {
		return Arity{}, false
	}
	if _, ok := r.ops[b]; !ok {
		return Arity{}, false
	}
	return b.Arity(), true
}

// call gives operators typed access to the arguments of one invocation.
type call struct {
	name string
	args []Argument
}

// value returns the value of argument i, failing when it is unbound.
func (c *call) value(i int) (ir.Value, error) {
	switch a := c.args[i].(type) {
	case Bound:
		if a.Value == nil {
			return nil, newArgumentTypeError(c.name, i, "missing value")
		}
		return a.Value, nil
	case *Variable:
		if v, ok := a.Value(); ok {
			return v, nil
		}
		if a.multi.IsSet() {
			return nil, newArgumentTypeError(c.name, i, "multi-valued argument is not allowed")
		}
		return nil, newUnboundError(c.name, i)
	case *MultiValueVariable:
		return nil, newArgumentTypeError(c.name, i, "multi-valued argument is not allowed")
	}
	return nil, newArgumentTypeError(c.name, i, "missing argument")
}

// values returns the values of arguments from..n-1.
func (c *call) values(from int) ([]ir.Value, error) {
	vals := make([]ir.Value, 0, len(c.args)-from)
	for i := from; i < len(c.args); i++ {
		v, err := c.value(i)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// checkBoundFrom fails if any argument at position from or later is unbound.
func (c *call) checkBoundFrom(from int) error {
	for i := from; i < len(c.args); i++ {
		if isUnbound(c.args[i]) {
			return newUnboundError(c.name, i)
		}
	}
	return nil
}

func (c *call) numeric(i int) (ir.Numeric, error) {
	v, err := c.value(i)
	if err != nil {
		return ir.Numeric{}, err
	}
	n, ok := v.(ir.Numeric)
	if !ok {
		return ir.Numeric{}, newArgumentTypeError(c.name, i, "expecting numeric, got %s", ir.Datatype(v))
	}
	return n, nil
}

func (c *call) numerics(from int) ([]ir.Numeric, error) {
	nums := make([]ir.Numeric, 0, len(c.args)-from)
	for i := from; i < len(c.args); i++ {
		n, err := c.numeric(i)
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, nil
}

// integer returns argument i as an int64. Floating values must be whole.
func (c *call) integer(i int) (int64, error) {
	n, err := c.numeric(i)
	if err != nil {
		return 0, err
	}
	if !n.IsWhole() {
		return 0, newArgumentTypeError(c.name, i, "expecting an integer, got %s", n.Lexical())
	}
	return n.Int64(), nil
}

func (c *call) str(i int) (string, error) {
	v, err := c.value(i)
	if err != nil {
		return "", err
	}
	s, ok := v.(ir.String)
	if !ok {
		return "", newArgumentTypeError(c.name, i, "expecting xsd:string, got %s", ir.Datatype(v))
	}
	return string(s), nil
}

func (c *call) boolean(i int) (bool, error) {
	v, err := c.value(i)
	if err != nil {
		return false, err
	}
	b, ok := v.(ir.Boolean)
	if !ok {
		return false, newArgumentTypeError(c.name, i, "expecting xsd:boolean, got %s", ir.Datatype(v))
	}
	return bool(b), nil
}

// outputUnbound reports whether argument 0 is a variable awaiting a result.
func (c *call) outputUnbound() bool {
	return isUnbound(c.args[0])
}

// bindResult completes a functional built-in. An unbound argument 0 is
// bound to result and the call succeeds; a bound argument 0 succeeds only
// if it equals result. A string in argument 0 is read as the lexical form
// of a temporal result.
func (c *call) bindResult(result ir.Value) (bool, error) {
	switch a := c.args[0].(type) {
	case *Variable:
		if !a.IsBound() {
			if err := a.Bind(result); err != nil {
				return false, newArgumentTypeError(c.name, 0, "%v", err)
			}
			return true, nil
		}
	case *MultiValueVariable:
		return false, newArgumentTypeError(c.name, 0, "multi-valued variable cannot receive a single result")
	}

	got, err := c.value(0)
	if err != nil {
		return false, err
	}
	if s, ok := got.(ir.String); ok && result.Kind().IsTemporal() {
		parsed, err := ir.ParseLiteral(ir.Datatype(result), string(s))
		if err != nil {
			return false, newArgumentTypeError(c.name, 0, "%v", err)
		}
		got = parsed
	}
	return ir.Equal(got, result), nil
}

func evalUnsupported(c *call) (bool, error) {
	return false, newUnsupportedError(c.name)
}
