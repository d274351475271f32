package ledger

import (
	"strconv"
	"strings"
	"time"
)

// ParseDate parses a strict YYYY-MM-DD string into a date at local
// midnight. The constructed date is round-tripped: if the year, month or
// day read back from it differ from the input numbers (e.g. 2021-02-30
// rolling over into March), parsing fails instead of returning a wrong
// date. The second return value is false on any malformed input.
func ParseDate(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}
	if len(parts[0]) != 4 || year < 1 || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// DaysSince returns the calendar-day offset of the given date from now:
// zero for today, positive for past dates, negative for future dates.
// Both instants are normalized to local midnight before subtraction, so
// the result counts calendar days rather than 24-hour multiples. The
// reference instant is an explicit parameter for deterministic testing.
// Returns false when s does not parse.
func DaysSince(s string, now time.Time) (int, bool) {
	d, ok := ParseDate(s)
	if !ok {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	ms := today.Sub(d).Milliseconds()
	return int(floorDiv(ms, 86_400_000)), true
}

// floorDiv divides rounding toward negative infinity, so a one-day
// future date yields -1 rather than 0.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
