// Package datekey provides the canonical calendar-day key used across the
// progress engine. A Key is a local-time "YYYY-MM-DD" string; all weekday and
// day-distance math goes through this package so every call site agrees on
// the encoding.
package datekey

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const layout = "2006-01-02"

// Key is a calendar date in "YYYY-MM-DD" form (local time).
type Key string

// Today returns the key for the current local date.
func Today() Key {
	return For(time.Now())
}

// For returns the key for t's local calendar date.
func For(t time.Time) Key {
	return Key(t.Format(layout))
}

// Parse validates s as a date key.
func Parse(s string) (Key, error) {
	t, err := time.ParseInLocation(layout, s, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return For(t), nil
}

func (k Key) String() string { return string(k) }

// Time returns midnight local time for the key. Invalid keys collapse to the
// zero time; callers that need validation use Parse first.
func (k Key) Time() time.Time {
	t, err := time.ParseInLocation(layout, string(k), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Weekday returns the key's day of week (time.Weekday, Sunday=0).
func (k Key) Weekday() time.Weekday {
	return k.Time().Weekday()
}

// AddDays returns the key n calendar days away (n may be negative).
func (k Key) AddDays(n int) Key {
	return For(k.Time().AddDate(0, 0, n))
}

// DaysBetween returns the signed number of whole calendar days from a to b.
func DaysBetween(a, b Key) int {
	ta, tb := a.Time(), b.Time()
	// DST shifts make some local days 23 or 25 hours long; rounding the day
	// count absorbs the difference.
	return int(math.Round(tb.Sub(ta).Hours() / 24))
}

// SameDay reports whether t falls on the calendar day k.
func SameDay(k Key, t time.Time) bool {
	return For(t) == k
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekdays parses a comma-separated weekday list ("mon,wed,fri").
// An empty input yields nil, meaning every day.
func ParseWeekdays(input string) ([]time.Weekday, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	var out []time.Weekday
	for _, part := range strings.Split(input, ",") {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		out = append(out, wd)
	}
	return out, nil
}
