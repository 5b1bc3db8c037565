package builtin

import (
	"math"
	"math/bits"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

// Numeric results take the narrowest kind that holds them exactly and is no
// narrower than the widest input. Integral inputs are computed in int64; on
// overflow the result falls back to double.

func widest(nums []ir.Numeric) ir.NumericKind {
	kind := ir.Byte
	for _, n := range nums {
		kind = max(kind, n.NumericKind())
	}
	return kind
}

// fold combines nums left to right starting from identity.
func fold(nums []ir.Numeric, identity int64,
	intOp func(a, b int64) (int64, bool),
	floatOp func(a, b float64) float64,
) ir.Numeric {
	floor := widest(nums)
	if floor.IsIntegral() {
		acc, ok := identity, true
		for _, n := range nums {
			if acc, ok = intOp(acc, n.Int64()); !ok {
				break
			}
		}
		if ok {
			return ir.LeastNarrowInt(acc, floor)
		}
		floor = ir.Double
	}
	facc := float64(identity)
	for _, n := range nums {
		facc = floatOp(facc, n.Float64())
	}
	return ir.LeastNarrowFloat(facc, floor)
}

func addInt(a, b int64) (int64, bool) {
	s := a + b
	return s, (s > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	d := a - b
	return d, (d < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	hi, lo := bits.Mul64(uint64(absInt(a)), uint64(absInt(b)))
	if hi != 0 || lo > math.MaxInt64 || a == math.MinInt64 || b == math.MinInt64 {
		return 0, false
	}
	p := int64(lo)
	if (a < 0) != (b < 0) {
		p = -p
	}
	return p, true
}

func absInt(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

func powInt(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

func isZero(n ir.Numeric) bool {
	if n.IsIntegral() {
		return n.Int64() == 0
	}
	return n.Float64() == 0
}

func evalAdd(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	nums, err := c.numerics(1)
	if err != nil {
		return false, err
	}
	return c.bindResult(fold(nums, 0, addInt, func(a, b float64) float64 { return a + b }))
}

func evalMultiply(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	nums, err := c.numerics(1)
	if err != nil {
		return false, err
	}
	return c.bindResult(fold(nums, 1, mulInt, func(a, b float64) float64 { return a * b }))
}

// binaryOperands returns arguments 1 and 2 of a ternary arithmetic built-in.
func (c *call) binaryOperands() (ir.Numeric, ir.Numeric, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return ir.Numeric{}, ir.Numeric{}, err
	}
	a, err := c.numeric(1)
	if err != nil {
		return ir.Numeric{}, ir.Numeric{}, err
	}
	b, err := c.numeric(2)
	if err != nil {
		return ir.Numeric{}, ir.Numeric{}, err
	}
	return a, b, nil
}

func evalSubtract(c *call) (bool, error) {
	a, b, err := c.binaryOperands()
	if err != nil {
		return false, err
	}
	floor := widest([]ir.Numeric{a, b})
	if floor.IsIntegral() {
		if d, ok := subInt(a.Int64(), b.Int64()); ok {
			return c.bindResult(ir.LeastNarrowInt(d, floor))
		}
		floor = ir.Double
	}
	return c.bindResult(ir.LeastNarrowFloat(a.Float64()-b.Float64(), floor))
}

// evalDivide always divides in floating point; a whole quotient of integral
// inputs stays integral.
func evalDivide(c *call) (bool, error) {
	a, b, err := c.binaryOperands()
	if err != nil {
		return false, err
	}
	if isZero(b) {
		return false, newDivisionByZeroError(c.name, 2)
	}
	floor := widest([]ir.Numeric{a, b})
	return c.bindResult(ir.LeastNarrowFloat(a.Float64()/b.Float64(), floor))
}

// evalIntegerDivide truncates the quotient toward zero.
func evalIntegerDivide(c *call) (bool, error) {
	a, b, err := c.binaryOperands()
	if err != nil {
		return false, err
	}
	if isZero(b) {
		return false, newDivisionByZeroError(c.name, 2)
	}
	floor := widest([]ir.Numeric{a, b})
	if floor.IsIntegral() {
		if a.Int64() != math.MinInt64 || b.Int64() != -1 {
			return c.bindResult(ir.LeastNarrowInt(a.Int64()/b.Int64(), floor))
		}
		floor = ir.Double
	}
	return c.bindResult(ir.LeastNarrowFloat(math.Trunc(a.Float64()/b.Float64()), floor))
}

func evalMod(c *call) (bool, error) {
	a, b, err := c.binaryOperands()
	if err != nil {
		return false, err
	}
	if isZero(b) {
		return false, newDivisionByZeroError(c.name, 2)
	}
	floor := widest([]ir.Numeric{a, b})
	if floor.IsIntegral() {
		return c.bindResult(ir.LeastNarrowInt(a.Int64()%b.Int64(), floor))
	}
	return c.bindResult(ir.LeastNarrowFloat(math.Mod(a.Float64(), b.Float64()), floor))
}

func evalPow(c *call) (bool, error) {
	a, b, err := c.binaryOperands()
	if err != nil {
		return false, err
	}
	floor := widest([]ir.Numeric{a, b})
	if floor.IsIntegral() && b.Int64() >= 0 {
		if p, ok := powInt(a.Int64(), b.Int64()); ok {
			return c.bindResult(ir.LeastNarrowInt(p, floor))
		}
		floor = ir.Double
	}
	return c.bindResult(ir.LeastNarrowFloat(math.Pow(a.Float64(), b.Float64()), floor))
}

// unaryOperand returns argument 1 of a unary built-in.
func (c *call) unaryOperand() (ir.Numeric, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return ir.Numeric{}, err
	}
	return c.numeric(1)
}

func evalUnaryPlus(c *call) (bool, error) {
	n, err := c.unaryOperand()
	if err != nil {
		return false, err
	}
	return c.bindResult(n)
}

func evalUnaryMinus(c *call) (bool, error) {
	n, err := c.unaryOperand()
	if err != nil {
		return false, err
	}
	return c.bindResult(negate(n))
}

func evalAbs(c *call) (bool, error) {
	n, err := c.unaryOperand()
	if err != nil {
		return false, err
	}
	if n.Float64() < 0 || (!n.IsIntegral() && math.Signbit(n.Float64())) {
		return c.bindResult(negate(n))
	}
	return c.bindResult(n)
}

func negate(n ir.Numeric) ir.Numeric {
	if n.IsIntegral() {
		if n.Int64() == math.MinInt64 {
			return ir.LeastNarrowFloat(-n.Float64(), ir.Double)
		}
		return ir.LeastNarrowInt(-n.Int64(), n.NumericKind())
	}
	return ir.LeastNarrowFloat(-n.Float64(), n.NumericKind())
}

// roundingWith builds ceiling, floor, round and roundHalfToEven. Integral
// operands are returned unchanged.
func roundingWith(b BuiltIn) operator {
	var fn func(float64) float64
	switch b {
	case Ceiling:
		fn = math.Ceil
	case Floor:
		fn = math.Floor
	case Round:
		fn = func(x float64) float64 {
			f := math.Floor(x)
			if x-f >= 0.5 {
				f++
			}
			return f
		}
	default:
		fn = math.RoundToEven
	}
	return func(c *call) (bool, error) {
		n, err := c.unaryOperand()
		if err != nil {
			return false, err
		}
		if n.IsIntegral() {
			return c.bindResult(n)
		}
		return c.bindResult(ir.LeastNarrowFloat(fn(n.Float64()), n.NumericKind()))
	}
}

// trigWith builds sin, cos and tan. Results are always double.
func trigWith(b BuiltIn) operator {
	var fn func(float64) float64
	switch b {
	case Sin:
		fn = math.Sin
	case Cos:
		fn = math.Cos
	default:
		fn = math.Tan
	}
	return func(c *call) (bool, error) {
		n, err := c.unaryOperand()
		if err != nil {
			return false, err
		}
		return c.bindResult(ir.NewDouble(fn(n.Float64())))
	}
}
