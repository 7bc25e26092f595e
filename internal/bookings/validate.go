package bookings

import (
	"errors"
	"time"

	"github.com/mentorhub/backend/internal/timeslot"
)

// Admission pipeline errors, one per rejected step.
var (
	ErrInvalidTimeRange    = errors.New("start time must be before end time")
	ErrInvalidDate         = errors.New("invalid session date")
	ErrPastDate            = errors.New("session date is in the past")
	ErrBookingConflict     = errors.New("time range overlaps an existing booking")
	ErrOutsideAvailability = errors.New("time range is outside the mentor's availability")
)

// ValidateSlot runs the local steps of the admission pipeline: time-range
// sanity, date parsing and the no-past-bookings rule. The overlap and
// availability-containment checks run inside the booking transaction.
// Returns the parsed date on success.
func ValidateSlot(date, start, end string, now time.Time) (time.Time, error) {
	if err := timeslot.ValidRange(start, end); err != nil {
		return time.Time{}, ErrInvalidTimeRange
	}
	d, err := timeslot.ParseDate(date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if timeslot.BeforeToday(d, now) {
		return time.Time{}, ErrPastDate
	}
	return d, nil
}
