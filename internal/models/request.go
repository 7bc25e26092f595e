package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the state of a mentorship request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusAccepted || s == RequestStatusRejected
}

// MentorshipRequest is a mentee's request to a mentor.
// Transitions: pending -> accepted | rejected, both terminal.
type MentorshipRequest struct {
	ID        uuid.UUID     `json:"id"`
	MenteeID  uuid.UUID     `json:"mentee_id"`
	MentorID  uuid.UUID     `json:"mentor_id"`
	Message   string        `json:"message,omitempty"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
