package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the state of a session booking.
type BookingStatus string

const (
	BookingStatusScheduled BookingStatus = "scheduled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// SessionBooking is a concrete session slot booked by a mentee.
// SessionDate is "YYYY-MM-DD", times are "HH:MM"; [start,end) ranges for the
// same mentor and date never overlap while not cancelled.
type SessionBooking struct {
	ID          uuid.UUID     `json:"id"`
	MentorID    uuid.UUID     `json:"mentor_id"`
	MenteeID    uuid.UUID     `json:"mentee_id"`
	SessionDate string        `json:"session_date"`
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
