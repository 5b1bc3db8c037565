package ir

import (
	"fmt"

	"github.com/sachitrajbhandari/swrlapi/internal/temporal"
)

// Value is a sealed interface over the closed set of value kinds.
// Only Boolean, String, Numeric, Date, Time, DateTime, Duration and
// EntityRef implement it, so type switches over Value can be exhaustive.
type Value interface {
	// Kind reports the variant.
	Kind() Kind

	// Lexical returns the canonical lexical form. For entity references
	// this is the display name when one is known, otherwise the IRI.
	Lexical() string

	value() // Sealed - only types in this package implement it
}

// Kind identifies a Value variant.
type Kind int

const (
	KindBoolean Kind = iota + 1
	KindString
	KindNumeric
	KindDate
	KindTime
	KindDateTime
	KindDuration
	KindEntity
)

var kindNames = map[Kind]string{
	KindBoolean:  "boolean",
	KindString:   "string",
	KindNumeric:  "numeric",
	KindDate:     "date",
	KindTime:     "time",
	KindDateTime: "dateTime",
	KindDuration: "duration",
	KindEntity:   "entity",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTemporal reports whether the kind is one of the date/time/duration kinds.
func (k Kind) IsTemporal() bool {
	return k == KindDate || k == KindTime || k == KindDateTime || k == KindDuration
}

// Boolean is an xsd:boolean literal.
type Boolean bool

func (Boolean) value()     {}
func (Boolean) Kind() Kind { return KindBoolean }
func (b Boolean) Lexical() string {
	if b {
		return "true"
	}
	return "false"
}

// String is an xsd:string literal.
type String string

func (String) value()            {}
func (String) Kind() Kind        { return KindString }
func (s String) Lexical() string { return string(s) }

// Date is an xsd:date literal.
type Date struct{ temporal.Date }

func (Date) value()            {}
func (Date) Kind() Kind        { return KindDate }
func (d Date) Lexical() string { return d.String() }

// Time is an xsd:time literal.
type Time struct{ temporal.Time }

func (Time) value()            {}
func (Time) Kind() Kind        { return KindTime }
func (t Time) Lexical() string { return t.String() }

// DateTime is an xsd:dateTime literal.
type DateTime struct{ temporal.DateTime }

func (DateTime) value()             {}
func (DateTime) Kind() Kind         { return KindDateTime }
func (dt DateTime) Lexical() string { return dt.String() }

// Duration is an xsd:duration literal.
type Duration struct{ temporal.Duration }

func (Duration) value()            {}
func (Duration) Kind() Kind        { return KindDuration }
func (d Duration) Lexical() string { return d.String() }

// EntityKind distinguishes the OWL entities an EntityRef can name.
type EntityKind int

const (
	EntityClass EntityKind = iota + 1
	EntityNamedIndividual
	EntityObjectProperty
	EntityDataProperty
	EntityAnnotationProperty
)

var entityKindNames = map[EntityKind]string{
	EntityClass:              "class",
	EntityNamedIndividual:    "individual",
	EntityObjectProperty:     "objectProperty",
	EntityDataProperty:       "dataProperty",
	EntityAnnotationProperty: "annotationProperty",
}

func (k EntityKind) String() string {
	if name, ok := entityKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EntityKind(%d)", int(k))
}

// ParseEntityKind maps the names produced by EntityKind.String back to kinds.
func ParseEntityKind(name string) (EntityKind, bool) {
	for k, n := range entityKindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// EntityRef names an OWL entity by IRI. DisplayName carries the prefixed
// form resolved when the value was created and is never recomputed.
type EntityRef struct {
	IRI         string
	DisplayName string
	EntityKind  EntityKind
}

func (EntityRef) value()     {}
func (EntityRef) Kind() Kind { return KindEntity }

func (e EntityRef) Lexical() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.IRI
}

// NewEntityRef creates an entity reference.
func NewEntityRef(kind EntityKind, iri, displayName string) EntityRef {
	return EntityRef{IRI: iri, DisplayName: displayName, EntityKind: kind}
}

// IsLiteral reports whether v is a data value rather than an entity reference.
func IsLiteral(v Value) bool {
	return v != nil && v.Kind() != KindEntity
}

// Datatype returns the prefixed datatype name of a literal, or the OWL
// entity type for an entity reference.
func Datatype(v Value) string {
	switch val := v.(type) {
	case Boolean:
		return "xsd:boolean"
	case String:
		return "xsd:string"
	case Numeric:
		return "xsd:" + val.NumericKind().String()
	case Date:
		return "xsd:date"
	case Time:
		return "xsd:time"
	case DateTime:
		return "xsd:dateTime"
	case Duration:
		return "xsd:duration"
	case EntityRef:
		switch val.EntityKind {
		case EntityClass:
			return "owl:Class"
		case EntityNamedIndividual:
			return "owl:NamedIndividual"
		case EntityObjectProperty:
			return "owl:ObjectProperty"
		case EntityDataProperty:
			return "owl:DatatypeProperty"
		case EntityAnnotationProperty:
			return "owl:AnnotationProperty"
		}
	}
	return ""
}

// ParseLiteral rebuilds a literal from its prefixed datatype and lexical form.
func ParseLiteral(datatype, lexical string) (Value, error) {
	switch datatype {
	case "xsd:boolean":
		switch lexical {
		case "true", "1":
			return Boolean(true), nil
		case "false", "0":
			return Boolean(false), nil
		}
		return nil, fmt.Errorf("invalid xsd:boolean %q", lexical)
	case "xsd:string":
		return String(lexical), nil
	case "xsd:date":
		d, err := temporal.ParseDate(lexical)
		if err != nil {
			return nil, err
		}
		return Date{d}, nil
	case "xsd:time":
		t, err := temporal.ParseTime(lexical)
		if err != nil {
			return nil, err
		}
		return Time{t}, nil
	case "xsd:dateTime":
		dt, err := temporal.ParseDateTime(lexical)
		if err != nil {
			return nil, err
		}
		return DateTime{dt}, nil
	case "xsd:duration", "xsd:yearMonthDuration", "xsd:dayTimeDuration":
		d, err := temporal.ParseDuration(lexical)
		if err != nil {
			return nil, err
		}
		return Duration{d}, nil
	}
	if kind, ok := ParseNumericKind(datatype); ok {
		return ParseNumeric(kind, lexical)
	}
	return nil, fmt.Errorf("unsupported datatype %q", datatype)
}
