package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentorhub/backend/internal/auth"
	"github.com/mentorhub/backend/internal/bookings"
	"github.com/mentorhub/backend/internal/models"
	"github.com/mentorhub/backend/internal/requests"
	"github.com/mentorhub/backend/pkg/response"
)

// RequireAdminRow verifies the caller's id has a row in the admins satellite
// table, not just an admin-valued token claim.
func RequireAdminRow(authRepo *auth.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.ClaimsFrom(c)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		isAdmin, err := authRepo.IsAdmin(c.Request.Context(), claims.UserID)
		if err != nil || !isAdmin {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ChangeRoleRequest is the body for PUT /admin/users/:id/role.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Handler handles admin oversight HTTP endpoints.
type Handler struct {
	repo        *Repository
	authRepo    *auth.Repository
	requestRepo *requests.Repository
	bookingRepo *bookings.Repository
	logger      *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(repo *Repository, authRepo *auth.Repository, requestRepo *requests.Repository, bookingRepo *bookings.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, authRepo: authRepo, requestRepo: requestRepo, bookingRepo: bookingRepo, logger: logger}
}

// GetStats handles GET /admin/stats.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("admin stats failed", zap.Error(err))
		response.Internal(c, "failed to load stats")
		return
	}
	response.OK(c, stats)
}

// ListMatches handles GET /admin/matches.
func (h *Handler) ListMatches(c *gin.Context) {
	list, err := h.requestRepo.ListAllMatches(c.Request.Context())
	if err != nil {
		h.logger.Error("admin list matches failed", zap.Error(err))
		response.Internal(c, "failed to list matches")
		return
	}
	response.OK(c, list)
}

// ListSessions handles GET /admin/sessions.
func (h *Handler) ListSessions(c *gin.Context) {
	list, err := h.bookingRepo.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("admin list sessions failed", zap.Error(err))
		response.Internal(c, "failed to list sessions")
		return
	}
	response.OK(c, list)
}

// ChangeRole handles PUT /admin/users/:id/role. The old satellite row is
// removed and a new one inserted in one transaction.
func (h *Handler) ChangeRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		response.BadRequest(c, "invalid role")
		return
	}

	user, err := h.authRepo.ChangeRole(c.Request.Context(), userID, role)
	if err != nil {
		h.logger.Error("change role failed", zap.Error(err), zap.String("user_id", userID.String()))
		response.Internal(c, "failed to change role")
		return
	}
	if user == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, user.ToPublic())
}
