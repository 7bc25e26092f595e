package requests

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentorhub/backend/internal/auth"
	"github.com/mentorhub/backend/internal/models"
	"github.com/mentorhub/backend/pkg/response"
)

// SendRequest is the body for POST /requests.
type SendRequest struct {
	MentorID string `json:"mentor_id" binding:"required,uuid"`
	Message  string `json:"message" binding:"max=1000"`
}

// RespondRequest is the body for PATCH /requests/:id.
type RespondRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// Handler handles mentorship request HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a requests handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// Send handles POST /requests (mentee only).
func (h *Handler) Send(c *gin.Context) {
	claims := auth.MustClaims(c)
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	mentorID, _ := uuid.Parse(req.MentorID)

	exists, err := h.repo.MentorExists(c.Request.Context(), mentorID)
	if err != nil {
		h.logger.Error("mentor lookup failed", zap.Error(err))
		response.Internal(c, "failed to send request")
		return
	}
	if !exists {
		response.NotFound(c, "mentor not found")
		return
	}

	pending, err := h.repo.HasPending(c.Request.Context(), claims.RoleID, mentorID)
	if err != nil {
		h.logger.Error("pending check failed", zap.Error(err))
		response.Internal(c, "failed to send request")
		return
	}
	if pending {
		response.Conflict(c, "a pending request to this mentor already exists")
		return
	}

	mr := &models.MentorshipRequest{
		MenteeID: claims.RoleID,
		MentorID: mentorID,
		Message:  req.Message,
	}
	if err := h.repo.Create(c.Request.Context(), mr); err != nil {
		if errors.Is(err, ErrDuplicatePending) {
			response.Conflict(c, "a pending request to this mentor already exists")
			return
		}
		h.logger.Error("create request failed", zap.Error(err))
		response.Internal(c, "failed to send request")
		return
	}
	response.Created(c, mr)
}

// Incoming handles GET /requests/incoming (mentor only).
func (h *Handler) Incoming(c *gin.Context) {
	claims := auth.MustClaims(c)
	list, err := h.repo.ListIncoming(c.Request.Context(), claims.RoleID)
	if err != nil {
		h.logger.Error("list incoming failed", zap.Error(err))
		response.Internal(c, "failed to list requests")
		return
	}
	response.OK(c, list)
}

// Outgoing handles GET /requests/outgoing (mentee only).
func (h *Handler) Outgoing(c *gin.Context) {
	claims := auth.MustClaims(c)
	list, err := h.repo.ListOutgoing(c.Request.Context(), claims.RoleID)
	if err != nil {
		h.logger.Error("list outgoing failed", zap.Error(err))
		response.Internal(c, "failed to list requests")
		return
	}
	response.OK(c, list)
}

// Respond handles PATCH /requests/:id (mentor only). A request that is
// absent, foreign-owned or already decided is reported as not-found alike.
func (h *Handler) Respond(c *gin.Context) {
	claims := auth.MustClaims(c)
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request id")
		return
	}
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	mr, match, err := h.repo.Respond(c.Request.Context(), requestID, claims.RoleID, models.RequestStatus(req.Status))
	if err != nil {
		h.logger.Error("respond failed", zap.Error(err))
		response.Internal(c, "failed to respond to request")
		return
	}
	if mr == nil {
		response.NotFound(c, "request not found")
		return
	}
	response.OK(c, gin.H{"request": mr, "match": match})
}

// Matches handles GET /matches (mentor or mentee).
func (h *Handler) Matches(c *gin.Context) {
	claims := auth.MustClaims(c)
	var (
		list []MatchView
		err  error
	)
	switch claims.Role {
	case models.RoleMentor:
		list, err = h.repo.ListMatchesByMentor(c.Request.Context(), claims.RoleID)
	case models.RoleMentee:
		list, err = h.repo.ListMatchesByMentee(c.Request.Context(), claims.RoleID)
	default:
		response.Forbidden(c, "insufficient permissions")
		return
	}
	if err != nil {
		h.logger.Error("list matches failed", zap.Error(err))
		response.Internal(c, "failed to list matches")
		return
	}
	response.OK(c, list)
}
