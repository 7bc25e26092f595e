package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:30", 0, true},
		{"09:60", 0, true},
		{"0930", 0, true},
		{"09-30", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.minutes, got, tt.in)
	}
}

func TestValidRange(t *testing.T) {
	assert.NoError(t, ValidRange("09:00", "10:00"))
	assert.Error(t, ValidRange("10:00", "09:00"))
	assert.Error(t, ValidRange("10:00", "10:00"), "zero-length range")
	assert.Error(t, ValidRange("9:00", "10:00"))
	assert.Error(t, ValidRange("09:00", "25:00"))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
		{"touching boundary", "09:00", "10:00", "10:00", "11:00", false},
		{"partial", "09:00", "10:30", "10:00", "11:00", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "symmetric")
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("09:00", "12:00", "10:00", "11:00"))
	assert.True(t, Contains("09:00", "12:00", "09:00", "12:00"), "exact fit")
	assert.False(t, Contains("09:00", "12:00", "08:30", "10:00"))
	assert.False(t, Contains("09:00", "12:00", "11:00", "12:30"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("09-03-2026")
	assert.Error(t, err)
	_, err = ParseDate("2026-13-01")
	assert.Error(t, err)
	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestBeforeToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, BeforeToday(yesterday, now))
	assert.False(t, BeforeToday(today, now), "same day is not past even late in the day")
	assert.False(t, BeforeToday(tomorrow, now))
}

func TestWeekday(t *testing.T) {
	// 2026-03-08 is a Sunday.
	assert.Equal(t, 0, Weekday(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, Weekday(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 6, Weekday(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)))
}
