package bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/backend/internal/timeslot"
)

func TestValidateSlot(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("valid future slot", func(t *testing.T) {
		d, err := ValidateSlot("2026-03-16", "09:00", "10:00", now)
		require.NoError(t, err)
		assert.Equal(t, 1, timeslot.Weekday(d), "2026-03-16 is a Monday")
	})

	t.Run("same-day slot allowed", func(t *testing.T) {
		_, err := ValidateSlot("2026-03-10", "09:00", "10:00", now)
		assert.NoError(t, err)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := ValidateSlot("2026-03-16", "10:00", "09:00", now)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("zero-length range", func(t *testing.T) {
		_, err := ValidateSlot("2026-03-16", "10:00", "10:00", now)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := ValidateSlot("16/03/2026", "09:00", "10:00", now)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("past date", func(t *testing.T) {
		_, err := ValidateSlot("2026-03-09", "09:00", "10:00", now)
		assert.ErrorIs(t, err, ErrPastDate)
	})

	t.Run("time checked before date", func(t *testing.T) {
		// Both the range and the date are bad; the range error wins.
		_, err := ValidateSlot("bogus", "10:00", "09:00", now)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})
}
