package temporal

import (
	"fmt"
	"time"
)

// maxSpan bounds the exact component that can be applied to a time.Time.
const maxSpan = int64(1<<63 - 1)

// AddDuration returns dt+d. The month component is applied first, clamping
// the day to the end of the resulting month, then the exact component.
func (dt DateTime) AddDuration(d Duration) (DateTime, error) {
	t, err := addMonths(dt.t, d.Months)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{t: t.Add(time.Duration(d.Nanos)), zoned: dt.zoned}, nil
}

// SubtractDuration returns dt-d.
func (dt DateTime) SubtractDuration(d Duration) (DateTime, error) {
	return dt.AddDuration(d.Neg())
}

// AddDuration returns the date reached by adding d to midnight of the date.
// Any remaining time of day is discarded.
func (d Date) AddDuration(dur Duration) (Date, error) {
	t, err := addMonths(d.t, dur.Months)
	if err != nil {
		return Date{}, err
	}
	t = t.Add(time.Duration(dur.Nanos))
	y, m, day := t.Date()
	return Date{t: time.Date(y, m, day, 0, 0, 0, 0, t.Location()), zoned: d.zoned}, nil
}

// SubtractDuration returns the date reached by subtracting dur.
func (d Date) SubtractDuration(dur Duration) (Date, error) {
	return d.AddDuration(dur.Neg())
}

// AddDuration adds the exact component of d to the time of day, wrapping
// around midnight. The month component is ignored.
func (t Time) AddDuration(d Duration) Time {
	sinceMidnight := int64(t.t.Hour())*nsPerHour + int64(t.t.Minute())*nsPerMinute +
		int64(t.t.Second())*nsPerSecond + int64(t.t.Nanosecond())
	n := ((sinceMidnight+d.Nanos%nsPerDay)%nsPerDay + nsPerDay) % nsPerDay
	return newTime(
		int(n/nsPerHour), int((n%nsPerHour)/nsPerMinute), int((n%nsPerMinute)/nsPerSecond), int(n%nsPerSecond),
		t.t.Location(), t.zoned)
}

// SubtractDuration subtracts the exact component of d from the time of day.
func (t Time) SubtractDuration(d Duration) Time {
	return t.AddDuration(d.Neg())
}

// SubtractDates returns a-b as a day-time duration.
func SubtractDates(a, b Date) (Duration, error) {
	return between(a.t, b.t)
}

// SubtractTimes returns a-b as a day-time duration.
func SubtractTimes(a, b Time) (Duration, error) {
	return between(a.t, b.t)
}

// SubtractDateTimes returns a-b as a day-time duration.
func SubtractDateTimes(a, b DateTime) (Duration, error) {
	return between(a.t, b.t)
}

// MonthsBetween returns a-b as a year-month duration counting only whole
// months: the partial month at the end is dropped.
func MonthsBetween(a, b DateTime) (Duration, error) {
	ay, am, _ := a.t.UTC().Date()
	by, bm, _ := b.t.UTC().Date()
	months := (int64(ay)*12 + int64(am)) - (int64(by)*12 + int64(bm))

	probe, err := addMonths(b.t.UTC(), months)
	if err != nil {
		return Duration{}, err
	}
	switch {
	case months > 0 && probe.After(a.t):
		months--
	case months < 0 && probe.Before(a.t):
		months++
	}
	return Duration{Months: months}, nil
}

func between(a, b time.Time) (Duration, error) {
	d := a.Sub(b)
	if d == time.Duration(maxSpan) || d == time.Duration(-maxSpan-1) {
		return Duration{}, fmt.Errorf("%w: difference between %s and %s", ErrOverflow, a, b)
	}
	return Duration{Nanos: int64(d)}, nil
}

func addMonths(t time.Time, months int64) (time.Time, error) {
	if months == 0 {
		return t, nil
	}
	y, m, d := t.Date()
	total := int64(y)*12 + int64(m-1) + months
	ny := floorDiv(total, 12)
	if ny > 1<<31 || ny < -(1<<31) {
		return time.Time{}, fmt.Errorf("%w: year %d", ErrOverflow, ny)
	}
	nm := time.Month(total-ny*12) + 1
	if last := daysIn(int(ny), nm); d > last {
		d = last
	}
	return time.Date(int(ny), nm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
