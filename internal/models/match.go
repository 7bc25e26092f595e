package models

import (
	"time"

	"github.com/google/uuid"
)

// MentorshipMatch is an ongoing mentoring relationship, created when a
// request is accepted. Never mutated afterwards.
type MentorshipMatch struct {
	ID        uuid.UUID `json:"id"`
	MenteeID  uuid.UUID `json:"mentee_id"`
	MentorID  uuid.UUID `json:"mentor_id"`
	RequestID uuid.UUID `json:"request_id"`
	CreatedAt time.Time `json:"created_at"`
}
