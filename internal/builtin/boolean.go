package builtin

import "github.com/sachitrajbhandari/swrlapi/internal/ir"

func evalBooleanNot(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	operand, err := c.boolean(1)
	if err != nil {
		return false, err
	}
	if c.outputUnbound() {
		return c.bindResult(ir.Boolean(!operand))
	}
	result, err := c.boolean(0)
	if err != nil {
		return false, err
	}
	return result != operand, nil
}
