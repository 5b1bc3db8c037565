package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericLexical(t *testing.T) {
	tests := []struct {
		name string
		n    Numeric
		want string
	}{
		{"byte", NewByte(-7), "-7"},
		{"short", NewShort(300), "300"},
		{"int", NewInt(25), "25"},
		{"long", NewLong(math.MaxInt64), "9223372036854775807"},
		{"float fraction", NewFloat(2.5), "2.5"},
		{"float whole", NewFloat(3), "3.0"},
		{"double whole", NewDouble(25), "25.0"},
		{"double tenth", NewDouble(0.1), "0.1"},
		{"double large", NewDouble(1e21), "1.0E21"},
		{"double small", NewDouble(1.5e-7), "1.5E-7"},
		{"positive infinity", NewDouble(math.Inf(1)), "INF"},
		{"negative infinity", NewFloat(float32(math.Inf(-1))), "-INF"},
		{"nan", NewDouble(math.NaN()), "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.n.Lexical())
		})
	}
}

func TestParseNumericKind(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want NumericKind
	}{
		{"xsd:byte", Byte},
		{"short", Short},
		{"xsd:int", Int},
		{"xsd:long", Long},
		{"xsd:integer", Long},
		{"float", Float},
		{"xsd:decimal", Double},
	} {
		got, ok := ParseNumericKind(tt.in)
		require.True(t, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, ok := ParseNumericKind("xsd:string")
	assert.False(t, ok)
}

func TestParseNumeric(t *testing.T) {
	n, err := ParseNumeric(Int, "+42")
	require.NoError(t, err)
	assert.Equal(t, NewInt(42), n)

	n, err = ParseNumeric(Double, "-INF")
	require.NoError(t, err)
	assert.True(t, math.IsInf(n.Float64(), -1))

	_, err = ParseNumeric(Byte, "200")
	assert.Error(t, err)

	_, err = ParseNumeric(Long, "1.5")
	assert.Error(t, err)
}

func TestLeastNarrowInt(t *testing.T) {
	tests := []struct {
		name  string
		v     int64
		floor NumericKind
		want  NumericKind
	}{
		{"fits byte", 100, Byte, Byte},
		{"needs short", 300, Byte, Short},
		{"floor wins", 5, Int, Int},
		{"needs long", 1 << 40, Short, Long},
		{"float floor keeps float", 50, Float, Float},
		{"double floor keeps double", 50, Double, Double},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LeastNarrowInt(tt.v, tt.floor)
			assert.Equal(t, tt.want, got.NumericKind())
			assert.Equal(t, float64(tt.v), got.Float64())
		})
	}
}

func TestLeastNarrowFloat(t *testing.T) {
	tests := []struct {
		name  string
		f     float64
		floor NumericKind
		want  NumericKind
	}{
		{"whole stays integral", 4, Int, Int},
		{"whole from bytes", 4, Byte, Byte},
		{"exact half is float", 2.5, Int, Float},
		{"tenth needs double", 0.1, Int, Double},
		{"double floor", 2.5, Double, Double},
		{"whole at float floor", 4, Float, Float},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LeastNarrowFloat(tt.f, tt.floor)
			assert.Equal(t, tt.want, got.NumericKind())
			assert.Equal(t, tt.f, got.Float64())
		})
	}
}

func TestNumericIsWhole(t *testing.T) {
	assert.True(t, NewInt(3).IsWhole())
	assert.True(t, NewDouble(3).IsWhole())
	assert.False(t, NewDouble(3.5).IsWhole())
	assert.False(t, NewDouble(math.Inf(1)).IsWhole())
}
