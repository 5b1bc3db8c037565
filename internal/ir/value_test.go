package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	// Compile-time check that every variant implements Value
	var _ Value = Boolean(true)
	var _ Value = String("abc")
	var _ Value = NewInt(1)
	var _ Value = Date{}
	var _ Value = Time{}
	var _ Value = DateTime{}
	var _ Value = Duration{}
	var _ Value = EntityRef{}
}

func TestDatatype(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Boolean(true), "xsd:boolean"},
		{String("x"), "xsd:string"},
		{NewByte(1), "xsd:byte"},
		{NewShort(1), "xsd:short"},
		{NewInt(1), "xsd:int"},
		{NewLong(1), "xsd:long"},
		{NewFloat(1), "xsd:float"},
		{NewDouble(1), "xsd:double"},
		{NewEntityRef(EntityClass, "http://x/C", ""), "owl:Class"},
		{NewEntityRef(EntityNamedIndividual, "http://x/i", ""), "owl:NamedIndividual"},
		{NewEntityRef(EntityObjectProperty, "http://x/p", ""), "owl:ObjectProperty"},
		{NewEntityRef(EntityDataProperty, "http://x/d", ""), "owl:DatatypeProperty"},
		{NewEntityRef(EntityAnnotationProperty, "http://x/a", ""), "owl:AnnotationProperty"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Datatype(tt.v))
		})
	}
}

func TestEntityRefLexical(t *testing.T) {
	withName := NewEntityRef(EntityClass, "http://example.org/test#C1", "test:C1")
	assert.Equal(t, "test:C1", withName.Lexical())
	assert.Equal(t, KindEntity, withName.Kind())
	assert.False(t, IsLiteral(withName))

	bare := NewEntityRef(EntityClass, "http://example.org/test#C1", "")
	assert.Equal(t, "http://example.org/test#C1", bare.Lexical())
}

func TestParseLiteralRoundTrip(t *testing.T) {
	tests := []struct {
		datatype string
		lexical  string
		kind     Kind
	}{
		{"xsd:boolean", "true", KindBoolean},
		{"xsd:string", "héllo", KindString},
		{"xsd:int", "20", KindNumeric},
		{"xsd:double", "2.5", KindNumeric},
		{"xsd:date", "2024-02-29Z", KindDate},
		{"xsd:time", "13:20:00", KindTime},
		{"xsd:dateTime", "2002-10-10T12:00:00-05:00", KindDateTime},
		{"xsd:duration", "P1Y2M", KindDuration},
	}
	for _, tt := range tests {
		t.Run(tt.datatype, func(t *testing.T) {
			v, err := ParseLiteral(tt.datatype, tt.lexical)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.datatype, Datatype(v))
			assert.Equal(t, tt.lexical, v.Lexical())
			assert.True(t, IsLiteral(v))
		})
	}
}

func TestParseLiteralErrors(t *testing.T) {
	_, err := ParseLiteral("xsd:boolean", "yes")
	assert.Error(t, err)
	_, err = ParseLiteral("xsd:int", "abc")
	assert.Error(t, err)
	_, err = ParseLiteral("xsd:date", "2023-02-30")
	assert.Error(t, err)
	_, err = ParseLiteral("xsd:anyURI", "http://x")
	assert.Error(t, err)
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "dateTime", KindDateTime.String())
	assert.True(t, KindDuration.IsTemporal())
	assert.False(t, KindString.IsTemporal())

	k, ok := ParseEntityKind("objectProperty")
	require.True(t, ok)
	assert.Equal(t, EntityObjectProperty, k)
	_, ok = ParseEntityKind("datatype")
	assert.False(t, ok)
}
