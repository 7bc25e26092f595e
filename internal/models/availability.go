package models

import "github.com/google/uuid"

// AvailabilityWindow is a mentor's recurring weekly window.
// Times are zero-padded "HH:MM" strings; one row per (mentor, day).
type AvailabilityWindow struct {
	MentorID  uuid.UUID `json:"mentor_id"`
	DayOfWeek int       `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}
