package ir

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumericKind is a position on the promotion ladder
// byte < short < int < long < float < double.
type NumericKind int

const (
	Byte NumericKind = iota + 1
	Short
	Int
	Long
	Float
	Double
)

var numericKindNames = map[NumericKind]string{
	Byte:   "byte",
	Short:  "short",
	Int:    "int",
	Long:   "long",
	Float:  "float",
	Double: "double",
}

func (k NumericKind) String() string {
	if name, ok := numericKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NumericKind(%d)", int(k))
}

// IsIntegral reports whether the kind is one of byte, short, int or long.
func (k NumericKind) IsIntegral() bool { return k >= Byte && k <= Long }

// ParseNumericKind accepts "int" or "xsd:int" style names. The unbounded
// XSD types map onto the widest kind of their family.
func ParseNumericKind(name string) (NumericKind, bool) {
	name = strings.TrimPrefix(name, "xsd:")
	switch name {
	case "integer":
		return Long, true
	case "decimal":
		return Double, true
	}
	for k, n := range numericKindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Numeric is a number tagged with its ladder position. Integral kinds keep
// their magnitude in an int64, floating kinds in a float64 (a float kind
// holds a value already rounded to float32 precision).
type Numeric struct {
	kind NumericKind
	i    int64
	f    float64
}

func (Numeric) value()     {}
func (Numeric) Kind() Kind { return KindNumeric }

// NewByte creates an xsd:byte.
func NewByte(v int8) Numeric { return Numeric{kind: Byte, i: int64(v)} }

// NewShort creates an xsd:short.
func NewShort(v int16) Numeric { return Numeric{kind: Short, i: int64(v)} }

// NewInt creates an xsd:int.
func NewInt(v int32) Numeric { return Numeric{kind: Int, i: int64(v)} }

// NewLong creates an xsd:long.
func NewLong(v int64) Numeric { return Numeric{kind: Long, i: v} }

// NewFloat creates an xsd:float.
func NewFloat(v float32) Numeric { return Numeric{kind: Float, f: float64(v)} }

// NewDouble creates an xsd:double.
func NewDouble(v float64) Numeric { return Numeric{kind: Double, f: v} }

// NumericKind returns the ladder position.
func (n Numeric) NumericKind() NumericKind { return n.kind }

// IsIntegral reports whether n holds an integral kind.
func (n Numeric) IsIntegral() bool { return n.kind.IsIntegral() }

// Int64 returns the value as int64, truncating floating kinds.
func (n Numeric) Int64() int64 {
	if n.IsIntegral() {
		return n.i
	}
	return int64(n.f)
}

// Float64 returns the value as float64.
func (n Numeric) Float64() float64 {
	if n.IsIntegral() {
		return float64(n.i)
	}
	return n.f
}

// IsWhole reports whether the value has no fractional part.
func (n Numeric) IsWhole() bool {
	if n.IsIntegral() {
		return true
	}
	return !math.IsInf(n.f, 0) && n.f == math.Trunc(n.f)
}

// Lexical returns the canonical lexical form ("25", "2.5", "1.0E21", "INF").
func (n Numeric) Lexical() string {
	switch n.kind {
	case Float:
		return formatFloat(n.f, 32)
	case Double:
		return formatFloat(n.f, 64)
	}
	return strconv.FormatInt(n.i, 10)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if mant, exp, ok := strings.Cut(s, "e"); ok {
		if !strings.Contains(mant, ".") {
			mant += ".0"
		}
		e, _ := strconv.Atoi(exp)
		return mant + "E" + strconv.Itoa(e)
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ParseNumeric parses a lexical form as the given kind.
func ParseNumeric(kind NumericKind, lexical string) (Numeric, error) {
	switch kind {
	case Byte, Short, Int, Long:
		bits := map[NumericKind]int{Byte: 8, Short: 16, Int: 32, Long: 64}[kind]
		v, err := strconv.ParseInt(strings.TrimPrefix(lexical, "+"), 10, bits)
		if err != nil {
			return Numeric{}, fmt.Errorf("invalid xsd:%s %q", kind, lexical)
		}
		return Numeric{kind: kind, i: v}, nil
	case Float, Double:
		bits := 64
		if kind == Float {
			bits = 32
		}
		text := lexical
		switch lexical {
		case "INF", "+INF":
			text = "+Inf"
		case "-INF":
			text = "-Inf"
		}
		v, err := strconv.ParseFloat(text, bits)
		if err != nil {
			return Numeric{}, fmt.Errorf("invalid xsd:%s %q", kind, lexical)
		}
		return Numeric{kind: kind, f: v}, nil
	}
	return Numeric{}, fmt.Errorf("unknown numeric kind %d", int(kind))
}

// fitsIntegral reports whether v is within the range of an integral kind.
func fitsIntegral(v int64, k NumericKind) bool {
	switch k {
	case Byte:
		return v >= math.MinInt8 && v <= math.MaxInt8
	case Short:
		return v >= math.MinInt16 && v <= math.MaxInt16
	case Int:
		return v >= math.MinInt32 && v <= math.MaxInt32
	case Long:
		return true
	}
	return false
}

// LeastNarrowInt returns v as the narrowest kind, no narrower than floor,
// that represents it exactly. Values beyond float precision end as double.
func LeastNarrowInt(v int64, floor NumericKind) Numeric {
	if floor < Byte {
		floor = Byte
	}
	for k := floor; k <= Long; k++ {
		if fitsIntegral(v, k) {
			return Numeric{kind: k, i: v}
		}
	}
	f := float64(v)
	if floor <= Float && float64(float32(f)) == f {
		return Numeric{kind: Float, f: f}
	}
	return Numeric{kind: Double, f: f}
}

// LeastNarrowFloat returns f as the narrowest kind, no narrower than floor,
// that represents it exactly. Whole values computed from integral inputs
// stay integral.
func LeastNarrowFloat(f float64, floor NumericKind) Numeric {
	if floor < Byte {
		floor = Byte
	}
	if floor.IsIntegral() && f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return LeastNarrowInt(int64(f), floor)
	}
	if floor <= Float && float64(float32(f)) == f {
		return Numeric{kind: Float, f: f}
	}
	return Numeric{kind: Double, f: f}
}

// compareNumeric orders two numerics by magnitude regardless of kind.
// NaN sorts before every other value and equals itself.
func compareNumeric(a, b Numeric) int {
	switch {
	case a.IsIntegral() && b.IsIntegral():
		return cmp.Compare(a.i, b.i)
	case a.IsIntegral():
		return -compareIntFloat(b.f, a.i)
	case b.IsIntegral():
		return compareIntFloat(a.f, b.i)
	}
	return cmp.Compare(a.f, b.f)
}

// compareIntFloat compares a float against an int64 without losing the
// precision of large integers.
func compareIntFloat(f float64, i int64) int {
	if math.IsNaN(f) {
		return -1
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return cmp.Compare(int64(f), i)
	}
	return cmp.Compare(f, float64(i))
}
