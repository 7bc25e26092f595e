package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextSweep(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		hourUTC int
		want    time.Time
	}{
		{
			name:    "before sweep hour",
			now:     time.Date(2026, 3, 10, 6, 15, 0, 0, time.UTC),
			hourUTC: 8,
			want:    time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		},
		{
			name:    "after sweep hour rolls to next day",
			now:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			hourUTC: 8,
			want:    time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
		},
		{
			name:    "exactly at sweep hour rolls to next day",
			now:     time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
			hourUTC: 8,
			want:    time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
		},
		{
			name:    "non-UTC input normalized",
			now:     time.Date(2026, 3, 10, 5, 0, 0, 0, time.FixedZone("CET", 3600)),
			hourUTC: 8,
			want:    time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextSweep(tt.now, tt.hourUTC))
		})
	}
}
