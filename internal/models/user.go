package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the platform.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

// ParseRole validates and converts a role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleMentor, RoleMentee:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// RoleDetails is the role tag plus the surrogate id of the matching
// satellite row (admins/mentors/mentees). A user has exactly one.
type RoleDetails struct {
	Role   Role      `json:"role"`
	RoleID uuid.UUID `json:"role_id"`
}

// User represents a platform user with their role satellite.
type User struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Password  string      `json:"-"`
	FullName  string      `json:"full_name"`
	Bio       string      `json:"bio,omitempty"`
	AvatarURL string      `json:"avatar_url,omitempty"`
	Details   RoleDetails `json:"details"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      Role      `json:"role"`
	RoleID    uuid.UUID `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		Role:      u.Details.Role,
		RoleID:    u.Details.RoleID,
		CreatedAt: u.CreatedAt,
	}
}
