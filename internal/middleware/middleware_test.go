package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/backend/internal/auth"
	"github.com/mentorhub/backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(svc *auth.JWTService, roles ...models.Role) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{JWT(svc)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims := auth.MustClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	r.GET("/protected", handlers...)
	return r
}

func tokenFor(t *testing.T, svc *auth.JWTService, role models.Role) string {
	t.Helper()
	token, err := svc.Generate(&models.User{
		ID:       uuid.New(),
		Username: "tester",
		Email:    "tester@example.com",
		Details:  models.RoleDetails{Role: role, RoleID: uuid.New()},
	})
	require.NoError(t, err)
	return token
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 24)
	r := newProtectedRouter(svc)

	t.Run("valid token", func(t *testing.T) {
		w := doGet(r, "Bearer "+tokenFor(t, svc, models.RoleMentee))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := doGet(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := doGet(r, "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := auth.NewJWTService("other-secret", 24)
		w := doGet(r, "Bearer "+tokenFor(t, other, models.RoleMentee))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	svc := auth.NewJWTService("test-secret", 24)
	r := newProtectedRouter(svc, models.RoleMentor, models.RoleAdmin)

	t.Run("allowed role", func(t *testing.T) {
		w := doGet(r, "Bearer "+tokenFor(t, svc, models.RoleMentor))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other allowed role", func(t *testing.T) {
		w := doGet(r, "Bearer "+tokenFor(t, svc, models.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbidden role", func(t *testing.T) {
		w := doGet(r, "Bearer "+tokenFor(t, svc, models.RoleMentee))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
