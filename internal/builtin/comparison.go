package builtin

import (
	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

// compareWith builds one member of the comparison family. Both arguments
// must be bound. Entity references support only equal and notEqual.
func compareWith(b BuiltIn) operator {
	return func(c *call) (bool, error) {
		if err := c.checkBoundFrom(0); err != nil {
			return false, err
		}
		x, err := c.value(0)
		if err != nil {
			return false, err
		}
		y, err := c.value(1)
		if err != nil {
			return false, err
		}

		switch b {
		case Equal:
			return ir.Equal(x, y), nil
		case NotEqual:
			return !ir.Equal(x, y), nil
		}

		if ir.Equal(x, y) && (b == LessThanOrEqual || b == GreaterThanOrEqual) {
			return true, nil
		}
		order, err := c.order(x, y)
		if err != nil {
			return false, err
		}
		switch b {
		case LessThan, LessThanOrEqual:
			return order < 0, nil
		case GreaterThan, GreaterThanOrEqual:
			return order > 0, nil
		}
		return false, newUnsupportedError(c.name)
	}
}

// order compares two bound values of the same kind. The kind of x selects
// the ordering; a y of another kind is a type error on argument 1.
func (c *call) order(x, y ir.Value) (int, error) {
	if x.Kind() == ir.KindEntity {
		return 0, newArgumentTypeError(c.name, 0, "%s has no order", ir.Datatype(x))
	}
	if x.Kind() != y.Kind() {
		return 0, newArgumentTypeError(c.name, 1, "expecting %s, got %s", x.Kind(), ir.Datatype(y))
	}
	order, err := ir.Compare(x, y)
	if err != nil {
		return 0, newArgumentTypeError(c.name, 1, "%v", err)
	}
	return order, nil
}
