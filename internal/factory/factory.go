package factory

import (
	"fmt"
	"math"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
	"github.com/sachitrajbhandari/swrlapi/internal/temporal"
)

// ValueFactory builds values for built-in arguments and result cells.
// Entity references get their display name from the resolver at creation
// time; an IRI the resolver cannot shorten is a configuration error.
type ValueFactory struct {
	resolver *IRIResolver
}

// NewValueFactory creates a factory over resolver. A nil resolver gets the
// standard prefixes.
func NewValueFactory(resolver *IRIResolver) *ValueFactory {
	if resolver == nil {
		resolver = NewIRIResolver()
	}
	return &ValueFactory{resolver: resolver}
}

// Resolver returns the resolver the factory names entities with.
func (f *ValueFactory) Resolver() *IRIResolver { return f.resolver }

// Entity creates an entity reference of the given kind from a full IRI.
func (f *ValueFactory) Entity(kind ir.EntityKind, iri string) (ir.EntityRef, error) {
	name, ok := f.resolver.PrefixedNameOf(iri)
	if !ok {
		return ir.EntityRef{}, fmt.Errorf("%w: %s %s", ErrUnresolvedIRI, kind, iri)
	}
	return ir.NewEntityRef(kind, iri, name), nil
}

// EntityByName creates an entity reference from a prefixed name or a full IRI.
func (f *ValueFactory) EntityByName(kind ir.EntityKind, name string) (ir.EntityRef, error) {
	iri, err := f.resolver.Expand(name)
	if err != nil {
		return ir.EntityRef{}, err
	}
	return f.Entity(kind, iri)
}

// Class creates a class reference.
func (f *ValueFactory) Class(iri string) (ir.EntityRef, error) {
	return f.Entity(ir.EntityClass, iri)
}

// NamedIndividual creates a named individual reference.
func (f *ValueFactory) NamedIndividual(iri string) (ir.EntityRef, error) {
	return f.Entity(ir.EntityNamedIndividual, iri)
}

// ObjectProperty creates an object property reference.
func (f *ValueFactory) ObjectProperty(iri string) (ir.EntityRef, error) {
	return f.Entity(ir.EntityObjectProperty, iri)
}

// DataProperty creates a data property reference.
func (f *ValueFactory) DataProperty(iri string) (ir.EntityRef, error) {
	return f.Entity(ir.EntityDataProperty, iri)
}

// AnnotationProperty creates an annotation property reference.
func (f *ValueFactory) AnnotationProperty(iri string) (ir.EntityRef, error) {
	return f.Entity(ir.EntityAnnotationProperty, iri)
}

// LiteralValue wraps a Go value as a literal. Sized integer types map to
// their XSD counterparts; a plain int becomes xsd:int when it fits and
// xsd:long otherwise.
func (f *ValueFactory) LiteralValue(v any) (ir.Value, error) {
	switch val := v.(type) {
	case ir.Value:
		return val, nil
	case bool:
		return ir.Boolean(val), nil
	case string:
		return ir.String(val), nil
	case int8:
		return ir.NewByte(val), nil
	case int16:
		return ir.NewShort(val), nil
	case int32:
		return ir.NewInt(val), nil
	case int64:
		return ir.NewLong(val), nil
	case int:
		if val >= math.MinInt32 && val <= math.MaxInt32 {
			return ir.NewInt(int32(val)), nil
		}
		return ir.NewLong(int64(val)), nil
	case float32:
		return ir.NewFloat(val), nil
	case float64:
		return ir.NewDouble(val), nil
	case temporal.Date:
		return ir.Date{Date: val}, nil
	case temporal.Time:
		return ir.Time{Time: val}, nil
	case temporal.DateTime:
		return ir.DateTime{DateTime: val}, nil
	case temporal.Duration:
		return ir.Duration{Duration: val}, nil
	}
	return nil, fmt.Errorf("%w: cannot make a literal from %T", ErrInvalidLiteral, v)
}

// LeastNarrowNumeric wraps value as the narrowest numeric kind that is no
// narrower than the widest numeric among inputs and holds value exactly.
// Non-numeric inputs are ignored; with no numeric inputs the floor is byte.
func (f *ValueFactory) LeastNarrowNumeric(value float64, inputs []ir.Value) ir.Numeric {
	return ir.LeastNarrowFloat(value, WidestKind(inputs))
}

// WidestKind returns the widest numeric kind among values, or ir.Byte when
// none are numeric.
func WidestKind(values []ir.Value) ir.NumericKind {
	widest := ir.Byte
	for _, v := range values {
		if n, ok := v.(ir.Numeric); ok && n.NumericKind() > widest {
			widest = n.NumericKind()
		}
	}
	return widest
}
