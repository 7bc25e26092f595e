package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "mentor", "mentee"} {
		role, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, Role(s), role)
	}
	for _, s := range []string{"", "Mentor", "superuser", "MENTEE"} {
		_, err := ParseRole(s)
		assert.Error(t, err, s)
	}
}

func TestRequestStatusIsTerminal(t *testing.T) {
	assert.False(t, RequestStatusPending.IsTerminal())
	assert.True(t, RequestStatusAccepted.IsTerminal())
	assert.True(t, RequestStatusRejected.IsTerminal())
}

func TestUserToPublic(t *testing.T) {
	u := &User{
		ID:       uuid.New(),
		Username: "sam",
		Email:    "sam@example.com",
		Password: "bcrypt-hash",
		FullName: "Sam T",
		Details:  RoleDetails{Role: RoleMentee, RoleID: uuid.New()},
	}
	pub := u.ToPublic()
	assert.Equal(t, u.ID, pub.ID)
	assert.Equal(t, u.Username, pub.Username)
	assert.Equal(t, RoleMentee, pub.Role)
	assert.Equal(t, u.Details.RoleID, pub.RoleID)
}
