package utils

import (
	"fmt"
	"time"

	"github.com/averyquinn/daybook/internal/constants"
)

// Day normalizes a time to midnight UTC. All calendar arithmetic in the
// recurrence and streak code operates on normalized days so DST shifts can
// never produce off-by-one day differences.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day, normalized.
func Today() time.Time {
	return Day(time.Now())
}

// ParseDay parses a date string in the standard format (YYYY-MM-DD) into a
// normalized day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Day(t), nil
}

// DayString formats a time as a standard date string (YYYY-MM-DD).
func DayString(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// AddDays returns the day n days after (or before, for negative n) the
// given day.
func AddDays(t time.Time, n int) time.Time {
	return Day(t.AddDate(0, 0, n))
}

// DaysBetween returns the number of whole days from a to b. Negative when
// b is before a. Both inputs are normalized first.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// StartOfWeek returns the Monday of the week containing t. Weeks start on
// Monday for all period-goal accounting.
func StartOfWeek(t time.Time) time.Time {
	d := Day(t)
	offset := int(d.Weekday()-time.Monday+7) % 7
	return AddDays(d, -offset)
}

// StartOfMonth returns the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// IsWeekday reports whether t is Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}
