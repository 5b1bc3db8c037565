package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

func TestDecode(t *testing.T) {
	f := newTestFactory()

	tests := []struct {
		name     string
		tag      string
		raw      any
		datatype string
		lexical  string
	}{
		{"int from number", "int", 20, "xsd:int", "20"},
		{"int from int64", "int", int64(20), "xsd:int", "20"},
		{"int from whole float", "int", float64(20), "xsd:int", "20"},
		{"long from string", "long", "9000000000", "xsd:long", "9000000000"},
		{"double from float", "double", 2.5, "xsd:double", "2.5"},
		{"float from string", "float", "0.5", "xsd:float", "0.5"},
		{"boolean", "boolean", true, "xsd:boolean", "true"},
		{"string", "string", "abc", "xsd:string", "abc"},
		{"dateTime", "dateTime", "2002-10-10T12:00:00Z", "xsd:dateTime", "2002-10-10T12:00:00Z"},
		{"duration", "duration", "P1Y", "xsd:duration", "P1Y"},
		{"class", "class", "test:C1", "owl:Class", "test:C1"},
		{"individual by IRI", "individual", testNS + "i1", "owl:NamedIndividual", "test:i1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := f.Decode(tt.tag, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.datatype, ir.Datatype(v))
			assert.Equal(t, tt.lexical, v.Lexical())
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	f := newTestFactory()

	_, err := f.Decode("decimal128", "1")
	assert.ErrorIs(t, err, ErrUnknownTag)

	_, err = f.Decode("int", 2.5)
	assert.ErrorIs(t, err, ErrInvalidLiteral)

	_, err = f.Decode("byte", 300)
	assert.ErrorIs(t, err, ErrInvalidLiteral)

	_, err = f.Decode("string", 5)
	assert.ErrorIs(t, err, ErrInvalidLiteral)

	_, err = f.Decode("class", 5)
	assert.ErrorIs(t, err, ErrInvalidLiteral)

	_, err = f.Decode("class", "missing:C1")
	assert.ErrorIs(t, err, ErrUnknownPrefix)
}

func TestDecodeCell(t *testing.T) {
	f := newTestFactory()

	v, err := f.DecodeCell(map[string]any{"short": 7})
	require.NoError(t, err)
	assert.Equal(t, "xsd:short", ir.Datatype(v))

	_, err = f.DecodeCell(map[string]any{"int": 1, "long": 2})
	assert.ErrorIs(t, err, ErrInvalidLiteral)

	_, err = f.DecodeCell(map[string]any{})
	assert.ErrorIs(t, err, ErrInvalidLiteral)
}

func TestParseTagged(t *testing.T) {
	f := newTestFactory()

	v, err := f.ParseTagged("class:test:C1")
	require.NoError(t, err)
	assert.Equal(t, ir.KindEntity, v.Kind())
	assert.Equal(t, "test:C1", v.Lexical())

	v, err = f.ParseTagged("string:a:b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", v.Lexical())

	_, err = f.ParseTagged("20")
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestTags(t *testing.T) {
	tags := Tags()
	assert.Len(t, tags, 17)
	assert.Contains(t, tags, "annotationProperty")
	assert.IsIncreasing(t, tags)
}
