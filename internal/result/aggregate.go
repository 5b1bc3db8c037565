package result

import (
	"math"
	"slices"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

// Aggregate is a SQWRL aggregate function. The zero value marks a plain
// column.
type Aggregate int

const (
	NoAggregate Aggregate = iota
	Avg
	Min
	Max
	Sum
	Median
	Count
	CountDistinct
)

var aggregateNames = map[Aggregate]string{
	Avg:           "avg",
	Min:           "min",
	Max:           "max",
	Sum:           "sum",
	Median:        "median",
	Count:         "count",
	CountDistinct: "countDistinct",
}

func (a Aggregate) String() string {
	return aggregateNames[a]
}

// ParseAggregate resolves an aggregate function name. The empty string is
// NoAggregate.
func ParseAggregate(name string) (Aggregate, error) {
	if name == "" {
		return NoAggregate, nil
	}
	for a, n := range aggregateNames {
		if n == name {
			return a, nil
		}
	}
	return NoAggregate, newError(ErrCodeUnknownAggregate, "", "unknown aggregate function %q", name)
}

// AggregateNames returns the recognized aggregate function names in
// declaration order.
func AggregateNames() []string {
	names := make([]string, 0, len(aggregateNames))
	for a := Avg; a <= CountDistinct; a++ {
		names = append(names, a.String())
	}
	return names
}

// apply computes the aggregate over a non-empty multiset of values.
func (a Aggregate) apply(column string, values []ir.Value) (ir.Value, error) {
	switch a {
	case Count:
		return ir.LeastNarrowInt(int64(len(values)), ir.Int), nil
	case CountDistinct:
		return ir.LeastNarrowInt(int64(len(distinctValues(values))), ir.Int), nil
	case Min, Max:
		sorted, err := sortedValues(a, column, values)
		if err != nil {
			return nil, err
		}
		if a == Min {
			return sorted[0], nil
		}
		return sorted[len(sorted)-1], nil
	case Median:
		sorted, err := sortedValues(a, column, values)
		if err != nil {
			return nil, err
		}
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid], nil
		}
		lo, hi := sorted[mid-1], sorted[mid]
		if x, ok := lo.(ir.Numeric); ok {
			y := hi.(ir.Numeric)
			return ir.LeastNarrowFloat((x.Float64()+y.Float64())/2, widest([]ir.Numeric{x, y})), nil
		}
		return lo, nil
	case Sum, Avg:
		nums, err := numericValues(a, column, values)
		if err != nil {
			return nil, err
		}
		sum := sumNumerics(nums)
		if a == Sum {
			return sum, nil
		}
		return ir.LeastNarrowFloat(sum.Float64()/float64(len(nums)), widest(nums)), nil
	}
	return nil, newError(ErrCodeUnknownAggregate, column, "unknown aggregate function %d", int(a))
}

// empty returns the aggregate of an empty multiset, if it has one.
func (a Aggregate) empty() (ir.Value, bool) {
	switch a {
	case Count, CountDistinct, Sum:
		return ir.LeastNarrowInt(0, ir.Int), true
	}
	return nil, false
}

// distinctValues keeps the first of each set of values equal under
// ir.Equal, so int 20, long 20 and double 20.0 count once.
func distinctValues(values []ir.Value) []ir.Value {
	var out []ir.Value
	for _, v := range values {
		if !slices.ContainsFunc(out, func(d ir.Value) bool { return ir.Equal(d, v) }) {
			out = append(out, v)
		}
	}
	return out
}

// sortedValues returns values in ascending order. All values must share a
// kind that has an order.
func sortedValues(a Aggregate, column string, values []ir.Value) ([]ir.Value, error) {
	first := values[0]
	for _, v := range values {
		if v.Kind() != first.Kind() || v.Kind() == ir.KindEntity {
			return nil, newError(ErrCodeTypeMismatch, column,
				"%s over %s and %s", a, ir.Datatype(first), ir.Datatype(v))
		}
	}
	sorted := slices.Clone(values)
	slices.SortStableFunc(sorted, ir.CompareTotal)
	return sorted, nil
}

func numericValues(a Aggregate, column string, values []ir.Value) ([]ir.Numeric, error) {
	nums := make([]ir.Numeric, len(values))
	for i, v := range values {
		n, ok := v.(ir.Numeric)
		if !ok {
			return nil, newError(ErrCodeTypeMismatch, column, "%s over non-numeric %s", a, ir.Datatype(v))
		}
		nums[i] = n
	}
	return nums, nil
}

func widest(nums []ir.Numeric) ir.NumericKind {
	kind := ir.Byte
	for _, n := range nums {
		kind = max(kind, n.NumericKind())
	}
	return kind
}

// sumNumerics adds exactly in int64 when every value is integral and falls
// back to double on overflow.
func sumNumerics(nums []ir.Numeric) ir.Numeric {
	floor := widest(nums)
	if floor.IsIntegral() {
		var acc int64
		overflow := false
		for _, n := range nums {
			v := n.Int64()
			if (v > 0 && acc > math.MaxInt64-v) || (v < 0 && acc < math.MinInt64-v) {
				overflow = true
				break
			}
			acc += v
		}
		if !overflow {
			return ir.LeastNarrowInt(acc, floor)
		}
		floor = ir.Double
	}
	var f float64
	for _, n := range nums {
		f += n.Float64()
	}
	return ir.LeastNarrowFloat(f, floor)
}
