package factory

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

var (
	// ErrUnknownTag is returned for a literal tag outside the supported set.
	ErrUnknownTag = errors.New("unknown value tag")

	// ErrInvalidLiteral is returned when a raw value does not fit its tag.
	ErrInvalidLiteral = errors.New("invalid literal")
)

// entityTags maps the entity tags of tagged cells to entity kinds.
var entityTags = map[string]ir.EntityKind{
	"class":              ir.EntityClass,
	"individual":         ir.EntityNamedIndividual,
	"objectProperty":     ir.EntityObjectProperty,
	"dataProperty":       ir.EntityDataProperty,
	"annotationProperty": ir.EntityAnnotationProperty,
}

// literalTags maps literal tags to XSD datatypes.
var literalTags = map[string]string{
	"byte":     "xsd:byte",
	"short":    "xsd:short",
	"int":      "xsd:int",
	"long":     "xsd:long",
	"float":    "xsd:float",
	"double":   "xsd:double",
	"string":   "xsd:string",
	"boolean":  "xsd:boolean",
	"date":     "xsd:date",
	"time":     "xsd:time",
	"dateTime": "xsd:dateTime",
	"duration": "xsd:duration",
}

// Tags lists every supported value tag in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(entityTags)+len(literalTags))
	for t := range entityTags {
		tags = append(tags, t)
	}
	for t := range literalTags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Decode builds a value from a tag and a raw scalar as produced by YAML,
// CUE or JSON decoding. Numeric tags accept numbers or lexical strings;
// entity tags accept a prefixed name or a full IRI.
func (f *ValueFactory) Decode(tag string, raw any) (ir.Value, error) {
	if kind, ok := entityTags[tag]; ok {
		name, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a name, got %T", ErrInvalidLiteral, tag, raw)
		}
		return f.EntityByName(kind, name)
	}
	datatype, ok := literalTags[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	lexical, err := lexicalOf(tag, raw)
	if err != nil {
		return nil, err
	}
	v, err := ir.ParseLiteral(datatype, lexical)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLiteral, err)
	}
	return v, nil
}

// DecodeCell decodes a single-key tagged map such as {"int": 20}.
func (f *ValueFactory) DecodeCell(cell map[string]any) (ir.Value, error) {
	if len(cell) != 1 {
		keys := make([]string, 0, len(cell))
		for k := range cell {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: a cell needs exactly one tag, got %v", ErrInvalidLiteral, keys)
	}
	for tag, raw := range cell {
		return f.Decode(tag, raw)
	}
	return nil, nil
}

// ParseTagged decodes the "tag:value" text form used on the command line,
// e.g. "int:20", "string:abc" or "class:test:C1".
func (f *ValueFactory) ParseTagged(s string) (ir.Value, error) {
	tag, raw, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q is not of the form tag:value", ErrUnknownTag, s)
	}
	return f.Decode(tag, raw)
}

// lexicalOf renders a raw scalar as the lexical form for tag.
func lexicalOf(tag string, raw any) (string, error) {
	switch val := raw.(type) {
	case string:
		return val, nil
	case bool:
		if tag == "boolean" {
			return strconv.FormatBool(val), nil
		}
	case int:
		if isNumericTag(tag) {
			return strconv.Itoa(val), nil
		}
	case int64:
		if isNumericTag(tag) {
			return strconv.FormatInt(val, 10), nil
		}
	case uint64:
		if isNumericTag(tag) {
			return strconv.FormatUint(val, 10), nil
		}
	case float64:
		switch tag {
		case "float", "double":
			return strconv.FormatFloat(val, 'g', -1, 64), nil
		case "byte", "short", "int", "long":
			if val != math.Trunc(val) || math.Abs(val) > 1<<63 {
				return "", fmt.Errorf("%w: %s expects a whole number, got %v", ErrInvalidLiteral, tag, val)
			}
			return strconv.FormatInt(int64(val), 10), nil
		}
	}
	return "", fmt.Errorf("%w: %s cannot hold %T", ErrInvalidLiteral, tag, raw)
}

func isNumericTag(tag string) bool {
	switch tag {
	case "byte", "short", "int", "long", "float", "double":
		return true
	}
	return false
}
