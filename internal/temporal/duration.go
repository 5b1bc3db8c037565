package temporal

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	nsPerSecond = int64(1_000_000_000)
	nsPerMinute = 60 * nsPerSecond
	nsPerHour   = 60 * nsPerMinute
	nsPerDay    = 24 * nsPerHour
)

var durationRe = regexp.MustCompile(
	`^(-)?P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)D)?(T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)(?:\.(\d{1,9}))?S)?)?$`)

// Duration is an xsd:duration split into a month component and an exact
// component in nanoseconds. Both components always share the same sign.
//
// A duration with Nanos == 0 is a valid xsd:yearMonthDuration; one with
// Months == 0 is a valid xsd:dayTimeDuration.
type Duration struct {
	Months int64
	Nanos  int64
}

// ParseDuration parses the xsd:duration lexical form, e.g. "P1Y2M3DT4H5M6.5S".
func ParseDuration(s string) (Duration, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, malformed("xsd:duration", s, "")
	}
	if m[2] == "" && m[3] == "" && m[4] == "" && m[5] == "" {
		return Duration{}, malformed("xsd:duration", s, "no components")
	}
	if m[5] == "T" {
		return Duration{}, malformed("xsd:duration", s, "empty time section")
	}

	var d Duration
	var ok bool
	if d.Months, ok = accumulate(0, m[2], 12); !ok {
		return Duration{}, malformed("xsd:duration", s, "years out of range")
	}
	if d.Months, ok = accumulate(d.Months, m[3], 1); !ok {
		return Duration{}, malformed("xsd:duration", s, "months out of range")
	}
	for _, part := range []struct {
		digits string
		unit   int64
	}{
		{m[4], nsPerDay},
		{m[6], nsPerHour},
		{m[7], nsPerMinute},
		{m[8], nsPerSecond},
	} {
		if d.Nanos, ok = accumulate(d.Nanos, part.digits, part.unit); !ok {
			return Duration{}, malformed("xsd:duration", s, "value out of range")
		}
	}
	if d.Nanos, ok = addChecked(d.Nanos, int64(parseFraction(m[9]))); !ok {
		return Duration{}, malformed("xsd:duration", s, "value out of range")
	}
	if m[1] == "-" {
		d = d.Neg()
	}
	return d, nil
}

// YearMonth builds an xsd:yearMonthDuration.
func YearMonth(years, months int64) (Duration, error) {
	total, ok := mulChecked(years, 12)
	if ok {
		total, ok = addChecked(total, months)
	}
	if !ok {
		return Duration{}, fmt.Errorf("%w: %d years %d months", ErrOverflow, years, months)
	}
	d := Duration{Months: total}
	return d, nil
}

// DayTime builds an xsd:dayTimeDuration from whole components.
func DayTime(days, hours, minutes, seconds int64) (Duration, error) {
	var total int64
	for _, part := range []struct{ n, unit int64 }{
		{days, nsPerDay}, {hours, nsPerHour}, {minutes, nsPerMinute}, {seconds, nsPerSecond},
	} {
		scaled, ok := mulChecked(part.n, part.unit)
		if ok {
			total, ok = addChecked(total, scaled)
		}
		if !ok {
			return Duration{}, fmt.Errorf("%w: %dD %dH %dM %dS", ErrOverflow, days, hours, minutes, seconds)
		}
	}
	return Duration{Nanos: total}, nil
}

// IsYearMonth reports whether d has no day-time component.
func (d Duration) IsYearMonth() bool { return d.Nanos == 0 }

// IsDayTime reports whether d has no year-month component.
func (d Duration) IsDayTime() bool { return d.Months == 0 }

// Neg returns -d.
func (d Duration) Neg() Duration { return Duration{Months: -d.Months, Nanos: -d.Nanos} }

// Compare orders durations by their month component, then by the exact
// component. This is a total order; P1M sorts after P30D.
func (d Duration) Compare(o Duration) int {
	switch {
	case d.Months < o.Months:
		return -1
	case d.Months > o.Months:
		return 1
	case d.Nanos < o.Nanos:
		return -1
	case d.Nanos > o.Nanos:
		return 1
	}
	return 0
}

// Add returns d+o. The result must not mix signs between components.
func (d Duration) Add(o Duration) (Duration, error) {
	months, ok1 := addChecked(d.Months, o.Months)
	nanos, ok2 := addChecked(d.Nanos, o.Nanos)
	if !ok1 || !ok2 {
		return Duration{}, fmt.Errorf("%w: %s + %s", ErrOverflow, d, o)
	}
	if (months < 0 && nanos > 0) || (months > 0 && nanos < 0) {
		return Duration{}, fmt.Errorf("%w: %s + %s mixes signs", ErrMalformed, d, o)
	}
	return Duration{Months: months, Nanos: nanos}, nil
}

// Sub returns d-o.
func (d Duration) Sub(o Duration) (Duration, error) { return d.Add(o.Neg()) }

// Scale multiplies both components by f, rounding half away from zero.
func (d Duration) Scale(f float64) (Duration, error) {
	months, ok1 := roundToInt64(float64(d.Months) * f)
	nanos, ok2 := roundToInt64(float64(d.Nanos) * f)
	if !ok1 || !ok2 {
		return Duration{}, fmt.Errorf("%w: %s * %v", ErrOverflow, d, f)
	}
	return Duration{Months: months, Nanos: nanos}, nil
}

// Divide divides both components by f, rounding half away from zero.
func (d Duration) Divide(f float64) (Duration, error) {
	if f == 0 {
		return Duration{}, ErrDivisionByZero
	}
	months, ok1 := roundToInt64(float64(d.Months) / f)
	nanos, ok2 := roundToInt64(float64(d.Nanos) / f)
	if !ok1 || !ok2 {
		return Duration{}, fmt.Errorf("%w: %s / %v", ErrOverflow, d, f)
	}
	return Duration{Months: months, Nanos: nanos}, nil
}

// String returns the canonical lexical form. The zero duration is "PT0S".
func (d Duration) String() string {
	if d.Months == 0 && d.Nanos == 0 {
		return "PT0S"
	}
	var b strings.Builder
	months, nanos := d.Months, d.Nanos
	if months < 0 || nanos < 0 {
		b.WriteByte('-')
		months, nanos = -months, -nanos
	}
	b.WriteByte('P')
	if y := months / 12; y > 0 {
		fmt.Fprintf(&b, "%dY", y)
	}
	if m := months % 12; m > 0 {
		fmt.Fprintf(&b, "%dM", m)
	}
	if days := nanos / nsPerDay; days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if rem := nanos % nsPerDay; rem > 0 {
		b.WriteByte('T')
		if h := rem / nsPerHour; h > 0 {
			fmt.Fprintf(&b, "%dH", h)
		}
		if m := (rem % nsPerHour) / nsPerMinute; m > 0 {
			fmt.Fprintf(&b, "%dM", m)
		}
		secs := rem % nsPerMinute
		if secs > 0 {
			fmt.Fprintf(&b, "%d%sS", secs/nsPerSecond, formatFraction(int(secs%nsPerSecond)))
		}
	}
	return b.String()
}

func accumulate(acc int64, digits string, unit int64) (int64, bool) {
	if digits == "" {
		return acc, true
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	scaled, ok := mulChecked(n, unit)
	if !ok {
		return 0, false
	}
	return addChecked(acc, scaled)
}

func addChecked(a, b int64) (int64, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}

func roundToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	r := math.Round(f)
	if r >= math.MaxInt64 || r < math.MinInt64 {
		return 0, false
	}
	return int64(r), true
}
