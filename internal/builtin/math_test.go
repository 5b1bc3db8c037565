package builtin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

func assertNumeric(t *testing.T, v ir.Value, kind ir.NumericKind, lexical string) {
	t.Helper()
	n, ok := v.(ir.Numeric)
	require.True(t, ok, "expected numeric, got %s", ir.Datatype(v))
	assert.Equal(t, kind, n.NumericKind())
	assert.Equal(t, lexical, n.Lexical())
}

func TestAddProperties(t *testing.T) {
	rt := NewRuntime()
	operands := []ir.Numeric{
		ir.NewByte(3), ir.NewShort(-200), ir.NewInt(70000), ir.NewLong(1 << 40),
		ir.NewFloat(1.5), ir.NewDouble(-0.25),
	}
	for _, a := range operands {
		for _, b := range operands {
			sum := a.Float64() + b.Float64()

			// Unbound output always succeeds and binds the sum.
			out := Var("c")
			ok, err := rt.Call(Add, out, Val(a), Val(b))
			require.NoError(t, err)
			require.True(t, ok)
			got, _ := out.Value()
			assert.Equal(t, sum, got.(ir.Numeric).Float64(), "%s + %s", a.Lexical(), b.Lexical())
			assert.GreaterOrEqual(t, got.(ir.Numeric).NumericKind(), max(a.NumericKind(), b.NumericKind()))

			// Bound output succeeds iff it equals the sum.
			ok, err = rt.Call(Add, Val(ir.NewDouble(sum)), Val(a), Val(b))
			require.NoError(t, err)
			assert.True(t, ok)
			ok, err = rt.Call(Add, Val(ir.NewDouble(sum+1)), Val(a), Val(b))
			require.NoError(t, err)
			assert.False(t, ok)
		}
	}
}

func TestAddPromotion(t *testing.T) {
	assertNumeric(t, bindOne(t, Add, vals(ir.NewInt(20), ir.NewInt(30))...), ir.Int, "50")
	assertNumeric(t, bindOne(t, Add, vals(ir.NewByte(100), ir.NewByte(100))...), ir.Short, "200")
	assertNumeric(t, bindOne(t, Add, vals(ir.NewInt(1), ir.NewDouble(2))...), ir.Double, "3.0")
	assertNumeric(t, bindOne(t, Add, vals(ir.NewInt(1), ir.NewFloat(0.5))...), ir.Float, "1.5")
	assertNumeric(t, bindOne(t, Add, vals(ir.NewLong(math.MaxInt64), ir.NewLong(1))...), ir.Double, "9.223372036854776E18")
	assertNumeric(t, bindOne(t, Add, vals(ir.NewShort(7))...), ir.Short, "7")
	assertNumeric(t, bindOne(t, Add, vals(ir.NewInt(1), ir.NewInt(2), ir.NewInt(3), ir.NewInt(4))...), ir.Int, "10")
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name    string
		b       BuiltIn
		args    []ir.Value
		kind    ir.NumericKind
		lexical string
	}{
		{"multiply", Multiply, []ir.Value{ir.NewInt(6), ir.NewInt(7)}, ir.Int, "42"},
		{"multiply overflow", Multiply, []ir.Value{ir.NewLong(math.MaxInt64), ir.NewInt(2)}, ir.Double, "1.8446744073709552E19"},
		{"subtract", Subtract, []ir.Value{ir.NewInt(5), ir.NewInt(8)}, ir.Int, "-3"},
		{"subtract doubles", Subtract, []ir.Value{ir.NewDouble(1.5), ir.NewInt(1)}, ir.Double, "0.5"},
		{"divide whole", Divide, []ir.Value{ir.NewInt(10), ir.NewInt(5)}, ir.Int, "2"},
		{"divide fraction", Divide, []ir.Value{ir.NewInt(10), ir.NewInt(4)}, ir.Float, "2.5"},
		{"divide double", Divide, []ir.Value{ir.NewDouble(1), ir.NewInt(3)}, ir.Double, "0.3333333333333333"},
		{"integer divide truncates", IntegerDivide, []ir.Value{ir.NewInt(-7), ir.NewInt(2)}, ir.Int, "-3"},
		{"integer divide floats", IntegerDivide, []ir.Value{ir.NewDouble(7.5), ir.NewInt(2)}, ir.Double, "3.0"},
		{"mod", Mod, []ir.Value{ir.NewInt(7), ir.NewInt(3)}, ir.Int, "1"},
		{"mod negative", Mod, []ir.Value{ir.NewInt(-7), ir.NewInt(3)}, ir.Int, "-1"},
		{"mod floats", Mod, []ir.Value{ir.NewDouble(5.5), ir.NewInt(2)}, ir.Double, "1.5"},
		{"pow", Pow, []ir.Value{ir.NewInt(2), ir.NewInt(10)}, ir.Int, "1024"},
		{"pow widens", Pow, []ir.Value{ir.NewByte(2), ir.NewByte(10)}, ir.Short, "1024"},
		{"pow negative exponent", Pow, []ir.Value{ir.NewInt(2), ir.NewInt(-1)}, ir.Float, "0.5"},
		{"pow overflow", Pow, []ir.Value{ir.NewLong(10), ir.NewInt(20)}, ir.Double, "1.0E20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNumeric(t, bindOne(t, tt.b, vals(tt.args...)...), tt.kind, tt.lexical)
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	rt := NewRuntime()
	for _, b := range []BuiltIn{Divide, IntegerDivide, Mod} {
		t.Run(b.String(), func(t *testing.T) {
			ok, err := rt.Call(b, Var("x"), Val(ir.NewInt(1)), Val(ir.NewInt(0)))
			assert.False(t, ok)
			assert.True(t, HasCode(err, ErrCodeDivisionByZero))
			assert.True(t, IsValueError(err))
		})
	}
	_, err := rt.Call(Divide, Var("x"), Val(ir.NewInt(1)), Val(ir.NewDouble(0)))
	assert.True(t, HasCode(err, ErrCodeDivisionByZero))
}

func TestUnaryOperators(t *testing.T) {
	tests := []struct {
		name    string
		b       BuiltIn
		arg     ir.Value
		kind    ir.NumericKind
		lexical string
	}{
		{"unary plus keeps kind", UnaryPlus, ir.NewShort(4), ir.Short, "4"},
		{"unary minus", UnaryMinus, ir.NewInt(4), ir.Int, "-4"},
		{"unary minus min byte", UnaryMinus, ir.NewByte(-128), ir.Short, "128"},
		{"unary minus min long", UnaryMinus, ir.NewLong(math.MinInt64), ir.Double, "9.223372036854776E18"},
		{"abs", Abs, ir.NewDouble(-2.5), ir.Double, "2.5"},
		{"abs positive", Abs, ir.NewInt(3), ir.Int, "3"},
		{"ceiling", Ceiling, ir.NewDouble(2.1), ir.Double, "3.0"},
		{"ceiling integral", Ceiling, ir.NewInt(2), ir.Int, "2"},
		{"floor", Floor, ir.NewDouble(-2.1), ir.Double, "-3.0"},
		{"round half up", Round, ir.NewDouble(2.5), ir.Double, "3.0"},
		{"round negative half", Round, ir.NewDouble(-2.5), ir.Double, "-2.0"},
		{"round just below half", Round, ir.NewDouble(0.49999999999999994), ir.Double, "0.0"},
		{"round large odd", Round, ir.NewDouble(4503599627370497), ir.Double, "4.503599627370497E15"},
		{"round half to even", RoundHalfToEven, ir.NewDouble(2.5), ir.Double, "2.0"},
		{"round half to even odd", RoundHalfToEven, ir.NewFloat(3.5), ir.Float, "4.0"},
		{"sin is double", Sin, ir.NewInt(0), ir.Double, "0.0"},
		{"cos is double", Cos, ir.NewByte(0), ir.Double, "1.0"},
		{"tan is double", Tan, ir.NewFloat(0), ir.Double, "0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNumeric(t, bindOne(t, tt.b, Val(tt.arg)), tt.kind, tt.lexical)
		})
	}
}

func TestArithmeticArgumentErrors(t *testing.T) {
	rt := NewRuntime()

	_, err := rt.Call(Subtract, Var("x"), Var("a"), Val(ir.NewInt(1)))
	assert.True(t, HasCode(err, ErrCodeUnboundArgument))

	_, err = rt.Call(Abs, Var("x"), Val(ir.Boolean(true)))
	assert.True(t, HasCode(err, ErrCodeArgumentType))

	_, err = rt.Call(Multiply, Var("x"), Val(ir.NewInt(2)), Val(ir.String("3")))
	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ErrCodeArgumentType, ee.Code)
	assert.Equal(t, 2, ee.Argument)
}

func TestTrigComparesAsDouble(t *testing.T) {
	rt := NewRuntime()
	ok, err := rt.Call(Cos, Val(ir.NewInt(1)), Val(ir.NewInt(0)))
	require.NoError(t, err)
	assert.True(t, ok)
}
