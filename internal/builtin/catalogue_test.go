package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuiltIn(t *testing.T) {
	tests := []struct {
		name string
		want BuiltIn
		ok   bool
	}{
		{"add", Add, true},
		{"swrlb:add", Add, true},
		{"http://www.w3.org/2003/11/swrlb#add", Add, true},
		{"lessOrEqual", LessThanOrEqual, true},
		{"swrlb:greaterOrEqual", GreaterThanOrEqual, true},
		{"subtractDateTimesYieldingDayTimeDuration", SubtractDateTimesYieldingDayTimeDuration, true},
		{"listConcat", ListConcat, true},
		{"swrlb:nope", 0, false},
		{"ex:add", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBuiltIn(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuiltInNames(t *testing.T) {
	assert.Equal(t, "swrlb:stringConcat", StringConcat.String())
	assert.Equal(t, "http://www.w3.org/2003/11/swrlb#tokenize", Tokenize.IRI())
	assert.Equal(t, "BuiltIn(9999)", BuiltIn(9999).String())

	// Every catalogued name parses back to itself.
	for b := range catalogue {
		got, ok := ParseBuiltIn(b.String())
		require.True(t, ok, b.String())
		assert.Equal(t, b, got)
	}
}

func TestArity(t *testing.T) {
	tests := []struct {
		b        BuiltIn
		text     string
		accepts  []int
		rejected []int
	}{
		{Equal, "2", []int{2}, []int{1, 3}},
		{Add, "at least 2", []int{2, 3, 10}, []int{0, 1}},
		{Substring, "3 to 4", []int{3, 4}, []int{2, 5}},
		{DateTime, "8", []int{8}, []int{7, 9}},
		{Member, "at least 0", []int{0, 5}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.b.String(), func(t *testing.T) {
			a := tt.b.Arity()
			assert.Equal(t, tt.text, a.String())
			for _, n := range tt.accepts {
				assert.True(t, a.Accepts(n), "accepts %d", n)
			}
			for _, n := range tt.rejected {
				assert.False(t, a.Accepts(n), "rejects %d", n)
			}
		})
	}
}
