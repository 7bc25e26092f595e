package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/backend/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: "marta",
		Email:    "marta@example.com",
		FullName: "Marta K",
		Details: models.RoleDetails{
			Role:   models.RoleMentor,
			RoleID: uuid.New(),
		},
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 24)
	u := testUser()

	token, err := svc.Generate(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Username, claims.Username)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, models.RoleMentor, claims.Role)
	assert.Equal(t, u.Details.RoleID, claims.RoleID)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", 24).Generate(testUser())
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", 24).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTExpired(t *testing.T) {
	token, err := NewJWTService("test-secret", -1).Generate(testUser())
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", 24).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", 24)
	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
