package ir

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// ErrIncomparable is returned by Compare when two values have no order
// between them.
var ErrIncomparable = errors.New("values are not comparable")

// Compare orders two values of compatible kinds. Numerics compare by
// magnitude regardless of sub-kind; every other kind compares only with
// itself. Entity references have no order.
func Compare(a, b Value) (int, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("%w: missing value", ErrIncomparable)
	}
	if a.Kind() != b.Kind() {
		return 0, fmt.Errorf("%w: %s and %s", ErrIncomparable, a.Kind(), b.Kind())
	}
	switch x := a.(type) {
	case Boolean:
		return cmp.Compare(boolRank(bool(x)), boolRank(bool(b.(Boolean)))), nil
	case String:
		return strings.Compare(string(x), string(b.(String))), nil
	case Numeric:
		return compareNumeric(x, b.(Numeric)), nil
	case Date:
		return x.Date.Compare(b.(Date).Date), nil
	case Time:
		return x.Time.Compare(b.(Time).Time), nil
	case DateTime:
		return x.DateTime.Compare(b.(DateTime).DateTime), nil
	case Duration:
		return x.Duration.Compare(b.(Duration).Duration), nil
	}
	return 0, fmt.Errorf("%w: %s has no order", ErrIncomparable, a.Kind())
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Equal reports value equality. Numerics are equal when their magnitudes
// are equal; entity references are equal when they name the same IRI with
// the same entity kind. Values of unlike kinds are never equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return false
	}
	if x, ok := a.(EntityRef); ok {
		y := b.(EntityRef)
		return x.IRI == y.IRI && x.EntityKind == y.EntityKind
	}
	c, err := Compare(a, b)
	return err == nil && c == 0
}

// Identical reports whether two values have the same datatype and the same
// lexical identity. Unlike Equal, int 2 and long 2 are not identical.
func Identical(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Key(a) == Key(b)
}

// Key returns a string identity for v suitable for map keys. Literals key on
// datatype and canonical lexical form; entity references on kind and IRI.
func Key(v Value) string {
	if e, ok := v.(EntityRef); ok {
		return e.EntityKind.String() + "\x1f" + e.IRI
	}
	return Datatype(v) + "\x1f" + v.Lexical()
}

// CompareTotal is a total order over all values for sorting. Values are
// ranked by kind first, then by Compare within a kind. Entity references
// sort by IRI, then entity kind.
func CompareTotal(a, b Value) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	if x, ok := a.(EntityRef); ok {
		y := b.(EntityRef)
		if c := strings.Compare(x.IRI, y.IRI); c != 0 {
			return c
		}
		return cmp.Compare(x.EntityKind, y.EntityKind)
	}
	c, _ := Compare(a, b)
	return c
}
