// Package calendar provides trading-day arithmetic over calendar dates.
// Only weekends are skipped; market holidays are intentionally not modeled.
package calendar

import (
	"fmt"
	"time"
)

const layout = "2006-01-02"

// InvalidDateError is returned when a date string cannot be parsed into a
// calendar date. Callers are expected to recover with a relative label
// rather than abort whatever larger computation they are in.
type InvalidDateError struct {
	Input string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q", e.Input)
}

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Parse converts a canonical YYYY-MM-DD string to a date. Longer strings
// (timestamps) are truncated to their date part first.
func Parse(s string) (time.Time, error) {
	if len(s) > len(layout) {
		s = s[:len(layout)]
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, &InvalidDateError{Input: s}
	}
	return t, nil
}

func ToISODate(t time.Time) string {
	return t.Format(layout)
}

func IsSameOrBefore(a, b time.Time) bool {
	return a.Before(b) || a.Format(layout) == b.Format(layout)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddBusinessDays advances n trading days from start, skipping Saturdays and
// Sundays. n = 0 returns start unchanged, even if start itself falls on a
// weekend. Negative n walks backward.
func AddBusinessDays(start time.Time, n int) time.Time {
	step := 24 * time.Hour
	if n < 0 {
		step = -step
		n = -n
	}
	t := start
	for i := 0; i < n; i++ {
		t = t.Add(step)
		for isWeekend(t) {
			t = t.Add(step)
		}
	}
	return t
}

// AddBusinessDaysISO is the string-keyed variant used when the anchor comes
// straight from a data payload. It fails with an InvalidDateError if the
// anchor cannot be parsed.
func AddBusinessDaysISO(start string, n int) (string, error) {
	t, err := Parse(start)
	if err != nil {
		return "", err
	}
	return ToISODate(AddBusinessDays(t, n)), nil
}
