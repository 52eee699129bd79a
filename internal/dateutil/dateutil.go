// Package dateutil provides calendar arithmetic on naive local dates.
// Nothing here converts between time zones; all values are wall-clock.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AddDays returns d shifted by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// AddWeeks returns d shifted by n weeks.
func AddWeeks(d time.Time, n int) time.Time {
	return AddDays(d, 7*n)
}

// AddMonths returns d shifted by n calendar months, clamping the day of month
// to the last day of the target month (Jan 31 + 1 month -> Feb 28/29).
// Go's AddDate overflows instead (Jan 31 + 1 month -> Mar 2/3), which is never
// what calendar recurrence wants.
func AddMonths(d time.Time, n int) time.Time {
	year, month, day := d.Date()
	hour, min, sec := d.Clock()

	first := time.Date(year, month, 1, hour, min, sec, d.Nanosecond(), d.Location())
	shifted := first.AddDate(0, n, 0)
	if last := DaysInMonth(shifted.Year(), shifted.Month()); day > last {
		day = last
	}
	return time.Date(shifted.Year(), shifted.Month(), day, hour, min, sec, d.Nanosecond(), d.Location())
}

// Weekday returns the day of week as 0=Sunday .. 6=Saturday.
func Weekday(d time.Time) int {
	return int(d.Weekday())
}

// DayOfMonth returns the day of month, 1-31.
func DayOfMonth(d time.Time) int {
	return d.Day()
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfDay normalizes d to local midnight.
func StartOfDay(d time.Time) time.Time {
	year, month, day := d.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, d.Location())
}

// EndOfDay returns the last representable instant of d's calendar day.
func EndOfDay(d time.Time) time.Time {
	return StartOfDay(d).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns the Monday midnight opening d's week.
func StartOfWeek(d time.Time) time.Time {
	day := StartOfDay(d)
	offset := (Weekday(day) + 6) % 7 // Monday=0 .. Sunday=6
	return AddDays(day, -offset)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseClock parses a zero-padded 24-hour "HH:MM" string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// FormatClock renders a timestamp's wall-clock time as zero-padded "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// Combine builds an absolute timestamp from a date and an "HH:MM" clock.
func Combine(date time.Time, clock string) (time.Time, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	year, month, day := date.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, date.Location()), nil
}
