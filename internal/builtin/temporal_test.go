package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

func i(v int32) ir.Value { return ir.NewInt(v) }

func TestTemporalConstructors(t *testing.T) {
	tests := []struct {
		name     string
		b        BuiltIn
		args     []ir.Value
		datatype string
		want     string
	}{
		{"yearMonthDuration", YearMonthDuration, []ir.Value{i(1), i(14)}, "xsd:duration", "P2Y2M"},
		{"dayTimeDuration", DayTimeDuration, []ir.Value{i(1), i(2), i(3), i(4)}, "xsd:duration", "P1DT2H3M4S"},
		{"date", Date, []ir.Value{i(2020), i(2), i(29), s("")}, "xsd:date", "2020-02-29"},
		{"date zoned", Date, []ir.Value{i(2020), i(1), i(31), s("Z")}, "xsd:date", "2020-01-31Z"},
		{"time", Time, []ir.Value{i(8), i(5), i(3), s("+02:00")}, "xsd:time", "08:05:03+02:00"},
		{"dateTime", DateTime, []ir.Value{i(2002), i(10), i(10), i(12), i(0), i(0), s("-05:00")}, "xsd:dateTime", "2002-10-10T12:00:00-05:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bindOne(t, tt.b, vals(tt.args...)...)
			assert.Equal(t, tt.datatype, ir.Datatype(got))
			assert.Equal(t, tt.want, got.Lexical())
		})
	}
}

func TestTemporalConstructorErrors(t *testing.T) {
	rt := NewRuntime()

	_, err := rt.Call(Date, Var("d"), Val(i(2023)), Val(i(2)), Val(i(29)), Val(s("")))
	assert.True(t, HasCode(err, ErrCodeArgumentType))

	_, err = rt.Call(Time, Var("t"), Val(i(25)), Val(i(0)), Val(i(0)), Val(s("")))
	assert.True(t, HasCode(err, ErrCodeArgumentType))

	_, err = rt.Call(Date, Var("d"), Var("y"), Val(i(1)), Val(i(1)), Val(s("")))
	assert.True(t, HasCode(err, ErrCodeUnboundArgument))

	_, err = rt.Call(DateTime, Var("d"), Val(i(2020)))
	assert.True(t, HasCode(err, ErrCodeArity))
}

func TestTemporalArithmetic(t *testing.T) {
	tests := []struct {
		name string
		b    BuiltIn
		args []ir.Value
		want string
	}{
		{"add year-month durations", AddYearMonthDurations, []ir.Value{s("P1Y"), s("P6M"), s("P1M")}, "P1Y7M"},
		{"subtract year-month durations", SubtractYearMonthDurations, []ir.Value{s("P2Y"), s("P6M")}, "P1Y6M"},
		{"multiply year-month duration", MultiplyYearMonthDuration, []ir.Value{s("P2Y11M"), ir.NewDouble(2.3)}, "P6Y9M"},
		{"divide year-month duration", DivideYearMonthDuration, []ir.Value{s("P2Y11M"), ir.NewDouble(1.5)}, "P1Y11M"},
		{"add day-time durations", AddDayTimeDurations, []ir.Value{s("P1D"), s("PT12H")}, "P1DT12H"},
		{"subtract day-time durations", SubtractDayTimeDurations, []ir.Value{s("P2D"), s("PT12H")}, "P1DT12H"},
		{"multiply day-time duration", MultiplyDayTimeDuration, []ir.Value{s("PT2H10M"), i(3)}, "PT6H30M"},
		{"divide day-time duration", DivideDayTimeDuration, []ir.Value{s("P1D"), i(4)}, "PT6H"},
		{"subtract dates", SubtractDates, []ir.Value{s("2000-10-30"), s("1999-11-28")}, "P337D"},
		{"subtract times", SubtractTimes, []ir.Value{s("11:12:00Z"), s("04:00:00Z")}, "PT7H12M"},
		{"add year-month to dateTime", AddYearMonthDurationToDateTime, []ir.Value{s("2000-01-31T12:00:00Z"), s("P1M")}, "2000-02-29T12:00:00Z"},
		{"add day-time to dateTime", AddDayTimeDurationToDateTime, []ir.Value{s("2000-10-30T11:12:00Z"), s("P3DT1H15M")}, "2000-11-02T12:27:00Z"},
		{"subtract year-month from dateTime", SubtractYearMonthDurationFromDateTime, []ir.Value{s("2000-10-30T11:12:00Z"), s("P1Y2M")}, "1999-08-30T11:12:00Z"},
		{"subtract day-time from dateTime", SubtractDayTimeDurationFromDateTime, []ir.Value{s("2000-10-30T11:12:00Z"), s("P3DT1H15M")}, "2000-10-27T09:57:00Z"},
		{"add year-month to date", AddYearMonthDurationToDate, []ir.Value{s("2000-10-30"), s("P1Y2M")}, "2001-12-30"},
		{"add day-time to date", AddDayTimeDurationToDate, []ir.Value{s("2004-10-30Z"), s("P2DT2H30M0S")}, "2004-11-01Z"},
		{"subtract year-month from date", SubtractYearMonthDurationFromDate, []ir.Value{s("2000-02-29"), s("P1Y")}, "1999-02-28"},
		{"subtract day-time from date", SubtractDayTimeDurationFromDate, []ir.Value{s("2000-10-30"), s("P3DT1H15M")}, "2000-10-26"},
		{"add day-time to time", AddDayTimeDurationToTime, []ir.Value{s("11:12:00"), s("P3DT1H15M")}, "12:27:00"},
		{"subtract day-time from time", SubtractDayTimeDurationFromTime, []ir.Value{s("11:12:00"), s("P3DT1H15M")}, "09:57:00"},
		{"dateTimes yielding year-month", SubtractDateTimesYieldingYearMonthDuration, []ir.Value{s("2000-10-30T06:12:00Z"), s("1999-11-28T09:00:00Z")}, "P11M"},
		{"dateTimes yielding day-time", SubtractDateTimesYieldingDayTimeDuration, []ir.Value{s("2000-10-30T06:12:00Z"), s("1999-11-28T09:00:00Z")}, "P336DT21H12M"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bindOne(t, tt.b, vals(tt.args...)...)
			assert.Equal(t, tt.want, got.Lexical())
		})
	}
}

func TestTemporalTypedArguments(t *testing.T) {
	got := bindOne(t, AddYearMonthDurationToDate, Val(mustDate(t, "2020-01-31")), Val(mustDuration(t, "P1M")))
	assert.Equal(t, ir.KindDate, got.Kind())
	assert.Equal(t, "2020-02-29", got.Lexical())
}

func TestTemporalBoundResult(t *testing.T) {
	rt := NewRuntime()

	// A string result is read as the lexical form of the computed type.
	ok, err := rt.Call(AddYearMonthDurations, vals(s("P1Y1M"), s("P1Y"), s("P1M"))...)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rt.Call(AddYearMonthDurations, vals(mustDuration(t, "P13M"), s("P1Y"), s("P1M"))...)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rt.Call(SubtractDates, vals(s("P2D"), s("2020-01-03"), s("2020-01-01"))...)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rt.Call(SubtractDates, vals(s("P3D"), s("2020-01-03"), s("2020-01-01"))...)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = rt.Call(SubtractDates, vals(s("not a duration"), s("2020-01-03"), s("2020-01-01"))...)
	assert.True(t, HasCode(err, ErrCodeArgumentType))
}

func TestTemporalArgumentErrors(t *testing.T) {
	rt := NewRuntime()

	_, err := rt.Call(SubtractDates, Var("d"), Val(s("2020-13-01")), Val(s("2020-01-01")))
	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ErrCodeArgumentType, ee.Code)
	assert.Equal(t, 1, ee.Argument)

	_, err = rt.Call(AddYearMonthDurations, Var("d"), Val(s("P1Y")), Val(s("P1D")))
	assert.True(t, HasCode(err, ErrCodeArgumentType))

	_, err = rt.Call(AddDayTimeDurationToTime, Var("d"), Val(s("10:00:00")), Val(s("P1M")))
	assert.True(t, HasCode(err, ErrCodeArgumentType))

	_, err = rt.Call(AddDayTimeDurationToDate, Var("d"), Val(ir.NewInt(1)), Val(s("P1D")))
	assert.True(t, HasCode(err, ErrCodeArgumentType))

	_, err = rt.Call(DivideDayTimeDuration, Var("d"), Val(s("P1D")), Val(i(0)))
	assert.True(t, HasCode(err, ErrCodeDivisionByZero))

	_, err = rt.Call(MultiplyDayTimeDuration, Var("d"), Val(s("P1D")), Val(s("2")))
	assert.True(t, HasCode(err, ErrCodeArgumentType))
}
