// Package timeslot holds the clock and date arithmetic shared by the
// availability and booking packages. Clock values are zero-padded "HH:MM"
// strings; ranges are half-open [start, end).
package timeslot

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for session dates.
const DateLayout = "2006-01-02"

// ParseClock converts a strict "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidRange reports whether both clocks parse and start < end.
func ValidRange(start, end string) error {
	s, err := ParseClock(start)
	if err != nil {
		return err
	}
	e, err := ParseClock(end)
	if err != nil {
		return err
	}
	if s >= e {
		return fmt.Errorf("start %s must be before end %s", start, end)
	}
	return nil
}

// Overlaps reports whether two [start,end) clock ranges intersect.
// Ranges that only touch at a boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// Contains reports whether [innerStart,innerEnd) lies fully inside
// [outerStart,outerEnd).
func Contains(outerStart, outerEnd, innerStart, innerEnd string) bool {
	return outerStart <= innerStart && innerEnd <= outerEnd
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

// BeforeToday reports whether d falls on a calendar day before now's.
func BeforeToday(d, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.Before(today)
}

// Weekday returns the 0=Sunday..6=Saturday day index for a date.
func Weekday(d time.Time) int {
	return int(d.Weekday())
}
