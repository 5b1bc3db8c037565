package builtin

import (
	"fmt"
	"strings"

	"github.com/sachitrajbhandari/swrlapi/internal/factory"
)

// BuiltIn identifies one built-in of the SWRL core library.
type BuiltIn int

// Comparison built-ins.
const (
	GreaterThan BuiltIn = iota + 1
	LessThan
	Equal
	NotEqual
	LessThanOrEqual
	GreaterThanOrEqual
)

// Math built-ins.
const (
	Add BuiltIn = iota + 100
	Subtract
	Multiply
	Divide
	IntegerDivide
	Mod
	Pow
	UnaryPlus
	UnaryMinus
	Abs
	Ceiling
	Floor
	Round
	RoundHalfToEven
	Sin
	Cos
	Tan
)

// Boolean built-ins.
const (
	BooleanNot BuiltIn = iota + 200
)

// String built-ins.
const (
	StringEqualIgnoreCase BuiltIn = iota + 300
	StringConcat
	Substring
	StringLength
	NormalizeSpace
	UpperCase
	LowerCase
	Translate
	Contains
	ContainsIgnoreCase
	StartsWith
	EndsWith
	SubstringBefore
	SubstringAfter
	Matches
	Replace
	Tokenize
)

// Date, time and duration built-ins.
const (
	YearMonthDuration BuiltIn = iota + 400
	DayTimeDuration
	DateTime
	Date
	Time
	AddYearMonthDurations
	SubtractYearMonthDurations
	MultiplyYearMonthDuration
	DivideYearMonthDuration
	AddDayTimeDurations
	SubtractDayTimeDurations
	MultiplyDayTimeDuration
	DivideDayTimeDuration
	SubtractDates
	SubtractTimes
	AddYearMonthDurationToDateTime
	AddDayTimeDurationToDateTime
	SubtractYearMonthDurationFromDateTime
	SubtractDayTimeDurationFromDateTime
	AddYearMonthDurationToDate
	AddDayTimeDurationToDate
	SubtractYearMonthDurationFromDate
	SubtractDayTimeDurationFromDate
	AddDayTimeDurationToTime
	SubtractDayTimeDurationFromTime
	SubtractDateTimesYieldingYearMonthDuration
	SubtractDateTimesYieldingDayTimeDuration
)

// URI and list built-ins. These are catalogued but not implemented.
const (
	ResolveURI BuiltIn = iota + 500
	AnyURI
	ListConcat
	ListIntersection
	ListSubtraction
	Member
	Length
	First
	Rest
	Sublist
	Empty
)

// Unbounded marks an arity with no upper limit.
const Unbounded = -1

// Arity is the accepted argument count range of a built-in.
type Arity struct {
	Min int
	Max int // Unbounded for variadic built-ins
}

func exactly(n int) Arity        { return Arity{Min: n, Max: n} }
func atLeast(n int) Arity        { return Arity{Min: n, Max: Unbounded} }
func between(min, max int) Arity { return Arity{Min: min, Max: max} }

// Accepts reports whether n arguments satisfy the arity.
func (a Arity) Accepts(n int) bool {
	return n >= a.Min && (a.Max == Unbounded || n <= a.Max)
}

func (a Arity) String() string {
	switch {
	case a.Max == Unbounded:
		return fmt.Sprintf("at least %d", a.Min)
	case a.Min == a.Max:
		return fmt.Sprintf("%d", a.Min)
	}
	return fmt.Sprintf("%d to %d", a.Min, a.Max)
}

type entry struct {
	name  string
	arity Arity
}

// catalogue lists every built-in with its local name and arity. Arity is
// checked before any argument is inspected.
var catalogue = map[BuiltIn]entry{
	GreaterThan:        {"greaterThan", exactly(2)},
	LessThan:           {"lessThan", exactly(2)},
	Equal:              {"equal", exactly(2)},
	NotEqual:           {"notEqual", exactly(2)},
	LessThanOrEqual:    {"lessThanOrEqual", exactly(2)},
	GreaterThanOrEqual: {"greaterThanOrEqual", exactly(2)},

	Add:             {"add", atLeast(2)},
	Subtract:        {"subtract", exactly(3)},
	Multiply:        {"multiply", atLeast(2)},
	Divide:          {"divide", exactly(3)},
	IntegerDivide:   {"integerDivide", exactly(3)},
	Mod:             {"mod", exactly(3)},
	Pow:             {"pow", exactly(3)},
	UnaryPlus:       {"unaryPlus", exactly(2)},
	UnaryMinus:      {"unaryMinus", exactly(2)},
	Abs:             {"abs", exactly(2)},
	Ceiling:         {"ceiling", exactly(2)},
	Floor:           {"floor", exactly(2)},
	Round:           {"round", exactly(2)},
	RoundHalfToEven: {"roundHalfToEven", exactly(2)},
	Sin:             {"sin", exactly(2)},
	Cos:             {"cos", exactly(2)},
	Tan:             {"tan", exactly(2)},

	BooleanNot: {"booleanNot", exactly(2)},

	StringEqualIgnoreCase: {"stringEqualIgnoreCase", exactly(2)},
	StringConcat:          {"stringConcat", atLeast(2)},
	Substring:             {"substring", between(3, 4)},
	StringLength:          {"stringLength", exactly(2)},
	NormalizeSpace:        {"normalizeSpace", exactly(2)},
	UpperCase:             {"upperCase", exactly(2)},
	LowerCase:             {"lowerCase", exactly(2)},
	Translate:             {"translate", exactly(4)},
	Contains:              {"contains", exactly(2)},
	ContainsIgnoreCase:    {"containsIgnoreCase", exactly(2)},
	StartsWith:            {"startsWith", exactly(2)},
	EndsWith:              {"endsWith", exactly(2)},
	SubstringBefore:       {"substringBefore", exactly(3)},
	SubstringAfter:        {"substringAfter", exactly(3)},
	Matches:               {"matches", exactly(2)},
	Replace:               {"replace", exactly(4)},
	Tokenize:              {"tokenize", exactly(3)},

	YearMonthDuration:                          {"yearMonthDuration", exactly(3)},
	DayTimeDuration:                            {"dayTimeDuration", exactly(5)},
	DateTime:                                   {"dateTime", exactly(8)},
	Date:                                       {"date", exactly(5)},
	Time:                                       {"time", exactly(5)},
	AddYearMonthDurations:                      {"addYearMonthDurations", atLeast(3)},
	SubtractYearMonthDurations:                 {"subtractYearMonthDurations", exactly(3)},
	MultiplyYearMonthDuration:                  {"multiplyYearMonthDuration", exactly(3)},
	DivideYearMonthDuration:                    {"divideYearMonthDuration", exactly(3)},
	AddDayTimeDurations:                        {"addDayTimeDurations", atLeast(3)},
	SubtractDayTimeDurations:                   {"subtractDayTimeDurations", exactly(3)},
	MultiplyDayTimeDuration:                    {"multiplyDayTimeDuration", exactly(3)},
	DivideDayTimeDuration:                      {"divideDayTimeDuration", exactly(3)},
	SubtractDates:                              {"subtractDates", exactly(3)},
	SubtractTimes:                              {"subtractTimes", exactly(3)},
	AddYearMonthDurationToDateTime:             {"addYearMonthDurationToDateTime", exactly(3)},
	AddDayTimeDurationToDateTime:               {"addDayTimeDurationToDateTime", exactly(3)},
	SubtractYearMonthDurationFromDateTime:      {"subtractYearMonthDurationFromDateTime", exactly(3)},
	SubtractDayTimeDurationFromDateTime:        {"subtractDayTimeDurationFromDateTime", exactly(3)},
	AddYearMonthDurationToDate:                 {"addYearMonthDurationToDate", exactly(3)},
	AddDayTimeDurationToDate:                   {"addDayTimeDurationToDate", exactly(3)},
	SubtractYearMonthDurationFromDate:          {"subtractYearMonthDurationFromDate", exactly(3)},
	SubtractDayTimeDurationFromDate:            {"subtractDayTimeDurationFromDate", exactly(3)},
	AddDayTimeDurationToTime:                   {"addDayTimeDurationToTime", exactly(3)},
	SubtractDayTimeDurationFromTime:            {"subtractDayTimeDurationFromTime", exactly(3)},
	SubtractDateTimesYieldingYearMonthDuration: {"subtractDateTimesYieldingYearMonthDuration", exactly(3)},
	SubtractDateTimesYieldingDayTimeDuration:   {"subtractDateTimesYieldingDayTimeDuration", exactly(3)},

	ResolveURI:       {"resolveURI", atLeast(0)},
	AnyURI:           {"anyURI", atLeast(0)},
	ListConcat:       {"listConcat", atLeast(0)},
	ListIntersection: {"listIntersection", atLeast(0)},
	ListSubtraction:  {"listSubtraction", atLeast(0)},
	Member:           {"member", atLeast(0)},
	Length:           {"length", atLeast(0)},
	First:            {"first", atLeast(0)},
	Rest:             {"rest", atLeast(0)},
	Sublist:          {"sublist", atLeast(0)},
	Empty:            {"empty", atLeast(0)},
}

// aliases accepts the shorter comparison names some rule sets use.
var aliases = map[string]BuiltIn{
	"lessOrEqual":    LessThanOrEqual,
	"greaterOrEqual": GreaterThanOrEqual,
}

var byName = func() map[string]BuiltIn {
	m := make(map[string]BuiltIn, len(catalogue)+len(aliases))
	for b, e := range catalogue {
		m[e.name] = b
	}
	for name, b := range aliases {
		m[name] = b
	}
	return m
}()

// String returns the prefixed name, e.g. "swrlb:add".
func (b BuiltIn) String() string {
	if e, ok := catalogue[b]; ok {
		return "swrlb:" + e.name
	}
	return fmt.Sprintf("BuiltIn(%d)", int(b))
}

// IRI returns the full IRI of the built-in.
func (b BuiltIn) IRI() string {
	return factory.NamespaceSWRLB + catalogue[b].name
}

// Arity returns the accepted argument count range.
func (b BuiltIn) Arity() Arity { return catalogue[b].arity }

// ParseBuiltIn resolves "add", "swrlb:add" or the full swrlb IRI.
func ParseBuiltIn(name string) (BuiltIn, bool) {
	local := strings.TrimPrefix(name, factory.NamespaceSWRLB)
	local = strings.TrimPrefix(local, "swrlb:")
	b, ok := byName[local]
	return b, ok
}
