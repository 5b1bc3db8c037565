package temporal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformed is wrapped by every parse or construction failure.
var ErrMalformed = errors.New("malformed temporal value")

// ErrDivisionByZero is returned when a duration is divided by zero.
var ErrDivisionByZero = errors.New("division by zero")

// ErrOverflow is returned when arithmetic leaves the representable range.
var ErrOverflow = errors.New("temporal overflow")

// maxOffset is the XSD limit on time-zone offsets (14 hours).
const maxOffset = 14 * 60 * 60

func malformed(kind, text string, reason string) error {
	if reason == "" {
		return fmt.Errorf("%w: invalid %s %q", ErrMalformed, kind, text)
	}
	return fmt.Errorf("%w: invalid %s %q: %s", ErrMalformed, kind, text, reason)
}

// parseZone parses an XSD time-zone suffix: "", "Z" or "+hh:mm"/"-hh:mm".
// Returns the location (UTC for unzoned values) and whether a zone was present.
func parseZone(s string) (*time.Location, bool, error) {
	switch {
	case s == "":
		return time.UTC, false, nil
	case s == "Z":
		return time.UTC, true, nil
	}
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return nil, false, fmt.Errorf("bad zone %q", s)
	}
	h, err := strconv.Atoi(s[1:3])
	if err != nil {
		return nil, false, fmt.Errorf("bad zone hours %q", s)
	}
	m, err := strconv.Atoi(s[4:6])
	if err != nil || m > 59 {
		return nil, false, fmt.Errorf("bad zone minutes %q", s)
	}
	offset := h*3600 + m*60
	if offset > maxOffset {
		return nil, false, fmt.Errorf("zone %q out of range", s)
	}
	if s[0] == '-' {
		offset = -offset
	}
	return time.FixedZone("", offset), true, nil
}

// resolveZone interprets a time-zone designator supplied to a constructor.
// Besides the lexical forms accepted by parseZone it accepts IANA names such
// as "UTC" or "Europe/Paris", which are pinned to their offset at the given
// wall-clock moment.
func resolveZone(designator string, year int, month time.Month, day, hour, min, sec int) (*time.Location, bool, error) {
	designator = strings.TrimSpace(designator)
	if loc, zoned, err := parseZone(designator); err == nil {
		return loc, zoned, nil
	}
	named, err := time.LoadLocation(designator)
	if err != nil {
		return nil, false, fmt.Errorf("unknown time zone %q", designator)
	}
	_, offset := time.Date(year, month, day, hour, min, sec, 0, named).Zone()
	if offset == 0 {
		return time.UTC, true, nil
	}
	return time.FixedZone("", offset), true, nil
}

// formatZone renders the canonical zone suffix for t.
func formatZone(t time.Time, zoned bool) string {
	if !zoned {
		return ""
	}
	_, offset := t.Zone()
	if offset == 0 {
		return "Z"
	}
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%c%02d:%02d", sign, offset/3600, (offset%3600)/60)
}

// formatYear renders a year with at least four digits, keeping the sign.
func formatYear(y int) string {
	if y < 0 {
		return fmt.Sprintf("-%04d", -y)
	}
	return fmt.Sprintf("%04d", y)
}

// formatFraction renders nanoseconds as ".ddd" with trailing zeros removed.
func formatFraction(nanos int) string {
	if nanos == 0 {
		return ""
	}
	return "." + strings.TrimRight(fmt.Sprintf("%09d", nanos), "0")
}

// parseFraction converts the digits after the decimal point to nanoseconds.
func parseFraction(digits string) int {
	if digits == "" {
		return 0
	}
	padded := (digits + "000000000")[:9]
	n, _ := strconv.Atoi(padded)
	return n
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
