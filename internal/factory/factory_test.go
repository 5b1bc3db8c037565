package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
	"github.com/sachitrajbhandari/swrlapi/internal/temporal"
)

const testNS = "http://example.org/test#"

func newTestFactory() *ValueFactory {
	r := NewIRIResolver()
	r.SetPrefix("test", testNS)
	return NewValueFactory(r)
}

func TestPrefixedNameOf(t *testing.T) {
	r := NewIRIResolver()
	r.SetPrefix("test", testNS)
	r.SetPrefix("ex", "http://example.org/")

	tests := []struct {
		iri  string
		want string
		ok   bool
	}{
		{testNS + "C1", "test:C1", true},
		{"http://example.org/other", "ex:other", true},
		{ClassOWLClass, "owl:Class", true},
		{NamespaceSWRLB + "add", "swrlb:add", true},
		{"urn:nothing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			got, ok := r.PrefixedNameOf(tt.iri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrefixedNameOfDeterministicTie(t *testing.T) {
	r := NewIRIResolver()
	r.SetPrefix("b", testNS)
	r.SetPrefix("a", testNS)
	for i := 0; i < 10; i++ {
		got, ok := r.PrefixedNameOf(testNS + "x")
		require.True(t, ok)
		assert.Equal(t, "a:x", got)
	}
}

func TestExpand(t *testing.T) {
	r := NewIRIResolver()
	r.SetPrefix("", "http://default.org/#")

	iri, err := r.Expand("xsd:int")
	require.NoError(t, err)
	assert.Equal(t, NamespaceXSD+"int", iri)

	iri, err = r.Expand(":thing")
	require.NoError(t, err)
	assert.Equal(t, "http://default.org/#thing", iri)

	iri, err = r.Expand("http://full.org/x")
	require.NoError(t, err)
	assert.Equal(t, "http://full.org/x", iri)

	_, err = r.Expand("nope:x")
	assert.ErrorIs(t, err, ErrUnknownPrefix)
	_, err = r.Expand("bare")
	assert.ErrorIs(t, err, ErrUnknownPrefix)
}

func TestEntityCreationSetsDisplayName(t *testing.T) {
	f := newTestFactory()

	c, err := f.Class(testNS + "C1")
	require.NoError(t, err)
	assert.Equal(t, "test:C1", c.DisplayName)
	assert.Equal(t, ir.EntityClass, c.EntityKind)

	i, err := f.NamedIndividual(testNS + "i1")
	require.NoError(t, err)
	assert.Equal(t, ir.EntityNamedIndividual, i.EntityKind)

	p, err := f.ObjectProperty(testNS + "p")
	require.NoError(t, err)
	assert.Equal(t, ir.EntityObjectProperty, p.EntityKind)

	d, err := f.DataProperty(testNS + "d")
	require.NoError(t, err)
	assert.Equal(t, ir.EntityDataProperty, d.EntityKind)

	a, err := f.AnnotationProperty(testNS + "a")
	require.NoError(t, err)
	assert.Equal(t, "test:a", a.Lexical())

	_, err = f.Class("urn:unmapped")
	assert.ErrorIs(t, err, ErrUnresolvedIRI)
}

func TestDisplayNameIsNotRecomputed(t *testing.T) {
	f := newTestFactory()
	c, err := f.Class(testNS + "C1")
	require.NoError(t, err)

	f.Resolver().SetPrefix("other", testNS)
	f.Resolver().SetPrefix("test", "http://elsewhere/")
	assert.Equal(t, "test:C1", c.Lexical())
}

func TestLiteralValue(t *testing.T) {
	f := newTestFactory()
	d, err := temporal.ParseDate("2020-01-01")
	require.NoError(t, err)

	tests := []struct {
		name     string
		in       any
		datatype string
		lexical  string
	}{
		{"bool", true, "xsd:boolean", "true"},
		{"string", "abc", "xsd:string", "abc"},
		{"int8", int8(3), "xsd:byte", "3"},
		{"int16", int16(3), "xsd:short", "3"},
		{"int32", int32(3), "xsd:int", "3"},
		{"int64", int64(3), "xsd:long", "3"},
		{"small int", 20, "xsd:int", "20"},
		{"big int", 1 << 40, "xsd:long", "1099511627776"},
		{"float32", float32(2.5), "xsd:float", "2.5"},
		{"float64", 2.5, "xsd:double", "2.5"},
		{"date", d, "xsd:date", "2020-01-01"},
		{"passthrough", ir.String("x"), "xsd:string", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := f.LiteralValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.datatype, ir.Datatype(v))
			assert.Equal(t, tt.lexical, v.Lexical())
		})
	}

	_, err = f.LiteralValue([]int{1})
	assert.ErrorIs(t, err, ErrInvalidLiteral)
}

func TestLeastNarrowNumeric(t *testing.T) {
	f := newTestFactory()
	got := f.LeastNarrowNumeric(25, []ir.Value{ir.NewInt(20), ir.NewInt(30)})
	assert.Equal(t, ir.Int, got.NumericKind())
	assert.Equal(t, "25", got.Lexical())

	got = f.LeastNarrowNumeric(2.5, []ir.Value{ir.NewByte(2), ir.NewShort(3), ir.String("x")})
	assert.Equal(t, ir.Float, got.NumericKind())

	assert.Equal(t, ir.Byte, WidestKind(nil))
	assert.Equal(t, ir.Double, WidestKind([]ir.Value{ir.NewInt(1), ir.NewDouble(1)}))
}
