package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
	"github.com/sachitrajbhandari/swrlapi/internal/temporal"
)

func mustDate(t *testing.T, s string) ir.Value {
	t.Helper()
	d, err := temporal.ParseDate(s)
	require.NoError(t, err)
	return ir.Date{Date: d}
}

func mustDuration(t *testing.T, s string) ir.Value {
	t.Helper()
	d, err := temporal.ParseDuration(s)
	require.NoError(t, err)
	return ir.Duration{Duration: d}
}

func TestComparisons(t *testing.T) {
	rt := NewRuntime()
	tests := []struct {
		name string
		b    BuiltIn
		x, y ir.Value
		want bool
	}{
		{"int less than long", LessThan, ir.NewInt(2), ir.NewLong(3), true},
		{"byte equals double", Equal, ir.NewByte(2), ir.NewDouble(2), true},
		{"float greater", GreaterThan, ir.NewFloat(2.5), ir.NewInt(2), true},
		{"strings by code point", LessThan, ir.String("B"), ir.String("a"), true},
		{"strings equal", Equal, ir.String("x"), ir.String("x"), true},
		{"booleans", LessThan, ir.Boolean(false), ir.Boolean(true), true},
		{"dates", GreaterThan, mustDate(t, "2020-01-02"), mustDate(t, "2020-01-01"), true},
		{"durations", LessThanOrEqual, mustDuration(t, "P1M"), mustDuration(t, "P1M"), true},
		{"greater or equal", GreaterThanOrEqual, ir.NewInt(3), ir.NewInt(4), false},
		{"not equal", NotEqual, ir.NewInt(3), ir.NewInt(4), true},
		{"kind mismatch is not equal", Equal, ir.NewInt(1), ir.String("1"), false},
		{"kind mismatch is not-equal", NotEqual, ir.NewInt(1), ir.String("1"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := rt.Call(tt.b, Val(tt.x), Val(tt.y))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestComparisonAliases(t *testing.T) {
	rt := NewRuntime()
	ok, err := rt.Evaluate(Invocation{Name: "swrlb:lessOrEqual", Args: vals(ir.NewInt(2), ir.NewInt(2))})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rt.Evaluate(Invocation{Name: "greaterOrEqual", Args: vals(ir.NewInt(1), ir.NewInt(2))})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestComparisonErrors(t *testing.T) {
	rt := NewRuntime()

	_, err := rt.Call(LessThan, Val(ir.NewInt(1)), Val(ir.String("a")))
	assert.True(t, HasCode(err, ErrCodeArgumentType))
	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 1, ee.Argument)

	_, err = rt.Call(LessThanOrEqual, Val(ir.NewInt(1)), Val(ir.String("a")))
	assert.True(t, HasCode(err, ErrCodeArgumentType))

	_, err = rt.Call(Equal, Var("x"), Val(ir.NewInt(1)))
	assert.True(t, HasCode(err, ErrCodeUnboundArgument))

	_, err = rt.Call(GreaterThan, Val(ir.NewInt(1)), Var("y"))
	assert.True(t, HasCode(err, ErrCodeUnboundArgument))
}

func TestComparisonOnEntities(t *testing.T) {
	rt := NewRuntime()
	c1 := ir.NewEntityRef(ir.EntityClass, "http://ex.org/#C1", "ex:C1")
	c1Again := ir.NewEntityRef(ir.EntityClass, "http://ex.org/#C1", "other:C1")
	i1 := ir.NewEntityRef(ir.EntityNamedIndividual, "http://ex.org/#C1", "ex:C1")

	ok, err := rt.Call(Equal, Val(c1), Val(c1Again))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rt.Call(Equal, Val(c1), Val(i1))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = rt.Call(LessThan, Val(c1), Val(c1Again))
	assert.True(t, HasCode(err, ErrCodeArgumentType))
}

func TestComparisonProperties(t *testing.T) {
	rt := NewRuntime()
	values := []ir.Value{
		ir.NewByte(-3), ir.NewInt(0), ir.NewLong(7), ir.NewFloat(7), ir.NewDouble(2.5),
		ir.NewDouble(-3.5), ir.NewShort(2),
	}
	for _, x := range values {
		for _, y := range values {
			eq, err := rt.Call(Equal, Val(x), Val(y))
			require.NoError(t, err)
			ne, err := rt.Call(NotEqual, Val(x), Val(y))
			require.NoError(t, err)
			assert.NotEqual(t, eq, ne, "%s vs %s", x.Lexical(), y.Lexical())

			lt, err := rt.Call(LessThan, Val(x), Val(y))
			require.NoError(t, err)
			le, err := rt.Call(LessThanOrEqual, Val(x), Val(y))
			require.NoError(t, err)
			assert.Equal(t, lt || eq, le, "%s <= %s", x.Lexical(), y.Lexical())

			gt, err := rt.Call(GreaterThan, Val(x), Val(y))
			require.NoError(t, err)
			ge, err := rt.Call(GreaterThanOrEqual, Val(x), Val(y))
			require.NoError(t, err)
			assert.Equal(t, gt || eq, ge, "%s >= %s", x.Lexical(), y.Lexical())
		}
	}
}
