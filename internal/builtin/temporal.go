package builtin

import (
	"errors"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
	"github.com/sachitrajbhandari/swrlapi/internal/temporal"
)

// durationClass restricts the durations an operator accepts.
type durationClass int

const (
	yearMonth durationClass = iota + 1
	dayTime
)

func temporalOperators() map[BuiltIn]operator {
	return map[BuiltIn]operator{
		YearMonthDuration: evalYearMonthDuration,
		DayTimeDuration:   evalDayTimeDuration,
		DateTime:          evalDateTime,
		Date:              evalDate,
		Time:              evalTime,

		AddYearMonthDurations:      sumDurations(yearMonth),
		SubtractYearMonthDurations: subtractDurations(yearMonth),
		MultiplyYearMonthDuration:  scaleDuration(yearMonth, false),
		DivideYearMonthDuration:    scaleDuration(yearMonth, true),
		AddDayTimeDurations:        sumDurations(dayTime),
		SubtractDayTimeDurations:   subtractDurations(dayTime),
		MultiplyDayTimeDuration:    scaleDuration(dayTime, false),
		DivideDayTimeDuration:      scaleDuration(dayTime, true),

		SubtractDates: evalSubtractDates,
		SubtractTimes: evalSubtractTimes,

		AddYearMonthDurationToDateTime:        shiftDateTime(yearMonth, false),
		AddDayTimeDurationToDateTime:          shiftDateTime(dayTime, false),
		SubtractYearMonthDurationFromDateTime: shiftDateTime(yearMonth, true),
		SubtractDayTimeDurationFromDateTime:   shiftDateTime(dayTime, true),
		AddYearMonthDurationToDate:            shiftDate(yearMonth, false),
		AddDayTimeDurationToDate:              shiftDate(dayTime, false),
		SubtractYearMonthDurationFromDate:     shiftDate(yearMonth, true),
		SubtractDayTimeDurationFromDate:       shiftDate(dayTime, true),
		AddDayTimeDurationToTime:              shiftTime(false),
		SubtractDayTimeDurationFromTime:       shiftTime(true),

		SubtractDateTimesYieldingYearMonthDuration: dateTimeDifference(yearMonth),
		SubtractDateTimesYieldingDayTimeDuration:   dateTimeDifference(dayTime),
	}
}

// temporalError classifies a failure from the temporal package.
func (c *call) temporalError(arg int, err error) error {
	if errors.Is(err, temporal.ErrDivisionByZero) {
		return newDivisionByZeroError(c.name, arg)
	}
	e := newArgumentTypeError(c.name, arg, "invalid temporal value")
	e.Err = err
	return e
}

// temporalArg reads argument i as a typed temporal value or parses it from
// its lexical form.
func temporalArg[T any](c *call, i int, datatype string,
	extract func(ir.Value) (T, bool),
	parse func(string) (T, error),
) (T, error) {
	var zero T
	v, err := c.value(i)
	if err != nil {
		return zero, err
	}
	if t, ok := extract(v); ok {
		return t, nil
	}
	if s, ok := v.(ir.String); ok {
		t, err := parse(string(s))
		if err != nil {
			return zero, c.temporalError(i, err)
		}
		return t, nil
	}
	return zero, newArgumentTypeError(c.name, i, "expecting %s, got %s", datatype, ir.Datatype(v))
}

func (c *call) date(i int) (temporal.Date, error) {
	return temporalArg(c, i, "xsd:date", func(v ir.Value) (temporal.Date, bool) {
		d, ok := v.(ir.Date)
		return d.Date, ok
	}, temporal.ParseDate)
}

func (c *call) time(i int) (temporal.Time, error) {
	return temporalArg(c, i, "xsd:time", func(v ir.Value) (temporal.Time, bool) {
		t, ok := v.(ir.Time)
		return t.Time, ok
	}, temporal.ParseTime)
}

func (c *call) dateTime(i int) (temporal.DateTime, error) {
	return temporalArg(c, i, "xsd:dateTime", func(v ir.Value) (temporal.DateTime, bool) {
		dt, ok := v.(ir.DateTime)
		return dt.DateTime, ok
	}, temporal.ParseDateTime)
}

func (c *call) duration(i int, class durationClass) (temporal.Duration, error) {
	d, err := temporalArg(c, i, "xsd:duration", func(v ir.Value) (temporal.Duration, bool) {
		d, ok := v.(ir.Duration)
		return d.Duration, ok
	}, temporal.ParseDuration)
	if err != nil {
		return d, err
	}
	switch {
	case class == yearMonth && !d.IsYearMonth():
		return d, newArgumentTypeError(c.name, i, "expecting xsd:yearMonthDuration, got %s", d)
	case class == dayTime && !d.IsDayTime():
		return d, newArgumentTypeError(c.name, i, "expecting xsd:dayTimeDuration, got %s", d)
	}
	return d, nil
}

// integers reads arguments from..to-1 as integer components.
func (c *call) integers(from, to int) ([]int64, error) {
	out := make([]int64, 0, to-from)
	for i := from; i < to; i++ {
		n, err := c.integer(i)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func evalYearMonthDuration(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	n, err := c.integers(1, 3)
	if err != nil {
		return false, err
	}
	d, err := temporal.YearMonth(n[0], n[1])
	if err != nil {
		return false, c.temporalError(1, err)
	}
	return c.bindResult(ir.Duration{Duration: d})
}

func evalDayTimeDuration(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	n, err := c.integers(1, 5)
	if err != nil {
		return false, err
	}
	d, err := temporal.DayTime(n[0], n[1], n[2], n[3])
	if err != nil {
		return false, c.temporalError(1, err)
	}
	return c.bindResult(ir.Duration{Duration: d})
}

// evalDateTime builds a dateTime from year, month, day, hour, minute,
// second and a zone designator.
func evalDateTime(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	n, err := c.integers(1, 7)
	if err != nil {
		return false, err
	}
	zone, err := c.str(7)
	if err != nil {
		return false, err
	}
	dt, err := temporal.NewDateTime(int(n[0]), int(n[1]), int(n[2]), int(n[3]), int(n[4]), int(n[5]), zone)
	if err != nil {
		return false, c.temporalError(1, err)
	}
	return c.bindResult(ir.DateTime{DateTime: dt})
}

func evalDate(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	n, err := c.integers(1, 4)
	if err != nil {
		return false, err
	}
	zone, err := c.str(4)
	if err != nil {
		return false, err
	}
	d, err := temporal.NewDate(int(n[0]), int(n[1]), int(n[2]), zone)
	if err != nil {
		return false, c.temporalError(1, err)
	}
	return c.bindResult(ir.Date{Date: d})
}

func evalTime(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	n, err := c.integers(1, 4)
	if err != nil {
		return false, err
	}
	zone, err := c.str(4)
	if err != nil {
		return false, err
	}
	t, err := temporal.NewTime(int(n[0]), int(n[1]), int(n[2]), zone)
	if err != nil {
		return false, c.temporalError(1, err)
	}
	return c.bindResult(ir.Time{Time: t})
}

func sumDurations(class durationClass) operator {
	return func(c *call) (bool, error) {
		if err := c.checkBoundFrom(1); err != nil {
			return false, err
		}
		var sum temporal.Duration
		for i := 1; i < len(c.args); i++ {
			d, err := c.duration(i, class)
			if err != nil {
				return false, err
			}
			if sum, err = sum.Add(d); err != nil {
				return false, c.temporalError(i, err)
			}
		}
		return c.bindResult(ir.Duration{Duration: sum})
	}
}

func subtractDurations(class durationClass) operator {
	return func(c *call) (bool, error) {
		if err := c.checkBoundFrom(1); err != nil {
			return false, err
		}
		a, err := c.duration(1, class)
		if err != nil {
			return false, err
		}
		b, err := c.duration(2, class)
		if err != nil {
			return false, err
		}
		diff, err := a.Sub(b)
		if err != nil {
			return false, c.temporalError(2, err)
		}
		return c.bindResult(ir.Duration{Duration: diff})
	}
}

// scaleDuration multiplies or divides a duration by a numeric factor.
func scaleDuration(class durationClass, divide bool) operator {
	return func(c *call) (bool, error) {
		if err := c.checkBoundFrom(1); err != nil {
			return false, err
		}
		d, err := c.duration(1, class)
		if err != nil {
			return false, err
		}
		factor, err := c.numeric(2)
		if err != nil {
			return false, err
		}
		var scaled temporal.Duration
		if divide {
			scaled, err = d.Divide(factor.Float64())
		} else {
			scaled, err = d.Scale(factor.Float64())
		}
		if err != nil {
			return false, c.temporalError(2, err)
		}
		return c.bindResult(ir.Duration{Duration: scaled})
	}
}

func evalSubtractDates(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	a, err := c.date(1)
	if err != nil {
		return false, err
	}
	b, err := c.date(2)
	if err != nil {
		return false, err
	}
	d, err := temporal.SubtractDates(a, b)
	if err != nil {
		return false, c.temporalError(2, err)
	}
	return c.bindResult(ir.Duration{Duration: d})
}

func evalSubtractTimes(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	a, err := c.time(1)
	if err != nil {
		return false, err
	}
	b, err := c.time(2)
	if err != nil {
		return false, err
	}
	d, err := temporal.SubtractTimes(a, b)
	if err != nil {
		return false, c.temporalError(2, err)
	}
	return c.bindResult(ir.Duration{Duration: d})
}

func shiftDateTime(class durationClass, subtract bool) operator {
	return func(c *call) (bool, error) {
		if err := c.checkBoundFrom(1); err != nil {
			return false, err
		}
		dt, err := c.dateTime(1)
		if err != nil {
			return false, err
		}
		d, err := c.duration(2, class)
		if err != nil {
			return false, err
		}
		if subtract {
			d = d.Neg()
		}
		shifted, err := dt.AddDuration(d)
		if err != nil {
			return false, c.temporalError(2, err)
		}
		return c.bindResult(ir.DateTime{DateTime: shifted})
	}
}

func shiftDate(class durationClass, subtract bool) operator {
	return func(c *call) (bool, error) {
		if err := c.checkBoundFrom(1); err != nil {
			return false, err
		}
		date, err := c.date(1)
		if err != nil {
			return false, err
		}
		d, err := c.duration(2, class)
		if err != nil {
			return false, err
		}
		if subtract {
			d = d.Neg()
		}
		shifted, err := date.AddDuration(d)
		if err != nil {
			return false, c.temporalError(2, err)
		}
		return c.bindResult(ir.Date{Date: shifted})
	}
}

func shiftTime(subtract bool) operator {
	return func(c *call) (bool, error) {
		if err := c.checkBoundFrom(1); err != nil {
			return false, err
		}
		t, err := c.time(1)
		if err != nil {
			return false, err
		}
		d, err := c.duration(2, dayTime)
		if err != nil {
			return false, err
		}
		if subtract {
			return c.bindResult(ir.Time{Time: t.SubtractDuration(d)})
		}
		return c.bindResult(ir.Time{Time: t.AddDuration(d)})
	}
}

// dateTimeDifference subtracts argument 2 from argument 1, counting whole
// months for a year-month result and exact time for a day-time result.
func dateTimeDifference(class durationClass) operator {
	return func(c *call) (bool, error) {
		if err := c.checkBoundFrom(1); err != nil {
			return false, err
		}
		a, err := c.dateTime(1)
		if err != nil {
			return false, err
		}
		b, err := c.dateTime(2)
		if err != nil {
			return false, err
		}
		var d temporal.Duration
		if class == yearMonth {
			d, err = temporal.MonthsBetween(a, b)
		} else {
			d, err = temporal.SubtractDateTimes(a, b)
		}
		if err != nil {
			return false, c.temporalError(2, err)
		}
		return c.bindResult(ir.Duration{Duration: d})
	}
}
