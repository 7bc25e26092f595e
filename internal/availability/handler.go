package availability

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentorhub/backend/internal/auth"
	"github.com/mentorhub/backend/internal/models"
	"github.com/mentorhub/backend/internal/timeslot"
	"github.com/mentorhub/backend/pkg/response"
)

// SetRequest is the body for PUT /availability.
type SetRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// Handler handles availability HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates an availability handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// Set handles PUT /availability (mentor only). Idempotent replace per day.
func (h *Handler) Set(c *gin.Context) {
	claims := auth.MustClaims(c)
	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		response.BadRequest(c, "day_of_week must be between 0 and 6")
		return
	}
	if err := timeslot.ValidRange(req.StartTime, req.EndTime); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	w := &models.AvailabilityWindow{
		MentorID:  claims.RoleID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := h.repo.Upsert(c.Request.Context(), w); err != nil {
		h.logger.Error("upsert availability failed", zap.Error(err))
		response.Internal(c, "failed to save availability")
		return
	}
	response.OK(c, w)
}

// ListOwn handles GET /availability (mentor only).
func (h *Handler) ListOwn(c *gin.Context) {
	claims := auth.MustClaims(c)
	h.list(c, claims.RoleID)
}

// ListForMentor handles GET /mentors/:id/availability. Any authenticated
// user may read a mentor's windows; mentees need them to book.
func (h *Handler) ListForMentor(c *gin.Context) {
	mentorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid mentor id")
		return
	}
	h.list(c, mentorID)
}

func (h *Handler) list(c *gin.Context, mentorID uuid.UUID) {
	list, err := h.repo.ListByMentor(c.Request.Context(), mentorID)
	if err != nil {
		h.logger.Error("list availability failed", zap.Error(err))
		response.Internal(c, "failed to list availability")
		return
	}
	response.OK(c, list)
}

// Clear handles DELETE /availability (mentor only).
func (h *Handler) Clear(c *gin.Context) {
	claims := auth.MustClaims(c)
	if err := h.repo.Clear(c.Request.Context(), claims.RoleID); err != nil {
		h.logger.Error("clear availability failed", zap.Error(err))
		response.Internal(c, "failed to clear availability")
		return
	}
	response.NoContent(c)
}

// ClearDay handles DELETE /availability/:day (mentor only).
func (h *Handler) ClearDay(c *gin.Context) {
	claims := auth.MustClaims(c)
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 0 || day > 6 {
		response.BadRequest(c, "day must be between 0 and 6")
		return
	}
	existed, err := h.repo.ClearDay(c.Request.Context(), claims.RoleID, day)
	if err != nil {
		h.logger.Error("clear availability day failed", zap.Error(err))
		response.Internal(c, "failed to clear availability")
		return
	}
	if !existed {
		response.NotFound(c, "no availability for that day")
		return
	}
	response.NoContent(c)
}
