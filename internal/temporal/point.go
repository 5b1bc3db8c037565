package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	dateRe     = regexp.MustCompile(`^(-?\d{4,})-(\d{2})-(\d{2})(Z|[+-]\d{2}:\d{2})?$`)
	timeRe     = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(?:\.(\d{1,9}))?(Z|[+-]\d{2}:\d{2})?$`)
	dateTimeRe = regexp.MustCompile(`^(-?\d{4,})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(?:\.(\d{1,9}))?(Z|[+-]\d{2}:\d{2})?$`)
)

// referenceDate anchors xsd:time values so they can be compared as instants.
var referenceDate = struct {
	year  int
	month time.Month
	day   int
}{1972, time.December, 31}

// Date is an xsd:date: a calendar day with an optional time-zone offset.
type Date struct {
	t     time.Time // midnight in the value's zone
	zoned bool
}

// Time is an xsd:time: a time of day with an optional time-zone offset.
type Time struct {
	t     time.Time // on the reference date in the value's zone
	zoned bool
}

// DateTime is an xsd:dateTime.
type DateTime struct {
	t     time.Time
	zoned bool
}

// ParseDate parses the lexical form YYYY-MM-DD with an optional zone.
func ParseDate(s string) (Date, error) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return Date{}, malformed("xsd:date", s, "")
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	loc, zoned, err := parseZone(m[4])
	if err != nil {
		return Date{}, malformed("xsd:date", s, err.Error())
	}
	if err := checkDay(year, month, day); err != nil {
		return Date{}, malformed("xsd:date", s, err.Error())
	}
	return Date{t: time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), zoned: zoned}, nil
}

// NewDate builds a date from components and a time-zone designator.
// The designator may be empty (no zone), "Z", "+hh:mm", or an IANA zone name.
func NewDate(year, month, day int, zone string) (Date, error) {
	if err := checkDay(year, month, day); err != nil {
		return Date{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	loc, zoned, err := resolveZone(zone, year, time.Month(month), day, 0, 0, 0)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Date{t: time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), zoned: zoned}, nil
}

// String returns the canonical lexical form.
func (d Date) String() string {
	y, m, day := d.t.Date()
	return fmt.Sprintf("%s-%02d-%02d%s", formatYear(y), int(m), day, formatZone(d.t, d.zoned))
}

// Compare orders dates by the instant at which they start.
func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }

// Zoned reports whether the value carries a time-zone offset.
func (d Date) Zoned() bool { return d.zoned }

// Start returns the instant at which the day begins.
func (d Date) Start() time.Time { return d.t }

// ParseTime parses the lexical form hh:mm:ss[.fff] with an optional zone.
func ParseTime(s string) (Time, error) {
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return Time{}, malformed("xsd:time", s, "")
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second, _ := strconv.Atoi(m[3])
	if err := checkClock(hour, minute, second); err != nil {
		return Time{}, malformed("xsd:time", s, err.Error())
	}
	loc, zoned, err := parseZone(m[5])
	if err != nil {
		return Time{}, malformed("xsd:time", s, err.Error())
	}
	return newTime(hour, minute, second, parseFraction(m[4]), loc, zoned), nil
}

// NewTime builds a time of day from components and a time-zone designator.
func NewTime(hour, minute, second int, zone string) (Time, error) {
	if err := checkClock(hour, minute, second); err != nil {
		return Time{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	loc, zoned, err := resolveZone(zone, referenceDate.year, referenceDate.month, referenceDate.day, hour, minute, second)
	if err != nil {
		return Time{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return newTime(hour, minute, second, 0, loc, zoned), nil
}

func newTime(hour, minute, second, nanos int, loc *time.Location, zoned bool) Time {
	return Time{
		t:     time.Date(referenceDate.year, referenceDate.month, referenceDate.day, hour, minute, second, nanos, loc),
		zoned: zoned,
	}
}

// String returns the canonical lexical form.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d%s%s",
		t.t.Hour(), t.t.Minute(), t.t.Second(), formatFraction(t.t.Nanosecond()), formatZone(t.t, t.zoned))
}

// Compare orders times as instants on the reference date.
func (t Time) Compare(o Time) int { return t.t.Compare(o.t) }

// Zoned reports whether the value carries a time-zone offset.
func (t Time) Zoned() bool { return t.zoned }

// ParseDateTime parses YYYY-MM-DDThh:mm:ss[.fff] with an optional zone.
func ParseDateTime(s string) (DateTime, error) {
	m := dateTimeRe.FindStringSubmatch(s)
	if m == nil {
		return DateTime{}, malformed("xsd:dateTime", s, "")
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second, _ := strconv.Atoi(m[6])
	if err := checkDay(year, month, day); err != nil {
		return DateTime{}, malformed("xsd:dateTime", s, err.Error())
	}
	if err := checkClock(hour, minute, second); err != nil {
		return DateTime{}, malformed("xsd:dateTime", s, err.Error())
	}
	loc, zoned, err := parseZone(m[8])
	if err != nil {
		return DateTime{}, malformed("xsd:dateTime", s, err.Error())
	}
	return DateTime{
		t:     time.Date(year, time.Month(month), day, hour, minute, second, parseFraction(m[7]), loc),
		zoned: zoned,
	}, nil
}

// NewDateTime builds a dateTime from components and a time-zone designator.
func NewDateTime(year, month, day, hour, minute, second int, zone string) (DateTime, error) {
	if err := checkDay(year, month, day); err != nil {
		return DateTime{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := checkClock(hour, minute, second); err != nil {
		return DateTime{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	loc, zoned, err := resolveZone(zone, year, time.Month(month), day, hour, minute, second)
	if err != nil {
		return DateTime{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return DateTime{t: time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), zoned: zoned}, nil
}

// FromTime wraps a Go time as a zoned dateTime.
func FromTime(t time.Time) DateTime {
	return DateTime{t: t, zoned: true}
}

// String returns the canonical lexical form.
func (dt DateTime) String() string {
	y, m, d := dt.t.Date()
	return fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d%s%s",
		formatYear(y), int(m), d, dt.t.Hour(), dt.t.Minute(), dt.t.Second(),
		formatFraction(dt.t.Nanosecond()), formatZone(dt.t, dt.zoned))
}

// Compare orders dateTimes as instants.
func (dt DateTime) Compare(o DateTime) int { return dt.t.Compare(o.t) }

// Zoned reports whether the value carries a time-zone offset.
func (dt DateTime) Zoned() bool { return dt.zoned }

// Time returns the underlying instant.
func (dt DateTime) Time() time.Time { return dt.t }

func checkDay(year, month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > daysIn(year, time.Month(month)) {
		return fmt.Errorf("day %d out of range for %s-%02d", day, formatYear(year), month)
	}
	return nil
}

func checkClock(hour, minute, second int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("hour %d out of range", hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("minute %d out of range", minute)
	}
	if second < 0 || second > 59 {
		return fmt.Errorf("second %d out of range", second)
	}
	return nil
}
