package bookings

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mentorhub/backend/internal/auth"
	"github.com/mentorhub/backend/internal/models"
	"github.com/mentorhub/backend/internal/timeslot"
	"github.com/mentorhub/backend/pkg/response"
)

// BookRequest is the body for POST /bookings.
type BookRequest struct {
	MentorID    string `json:"mentor_id" binding:"required,uuid"`
	SessionDate string `json:"session_date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
}

// Handler handles session booking HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a bookings handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger, now: time.Now}
}

// Book handles POST /bookings (mentee only). Runs the admission pipeline;
// each failing step answers with its own error.
func (h *Handler) Book(c *gin.Context) {
	claims := auth.MustClaims(c)
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	mentorID, _ := uuid.Parse(req.MentorID)

	date, err := ValidateSlot(req.SessionDate, req.StartTime, req.EndTime, h.now())
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b := &models.SessionBooking{
		MentorID:    mentorID,
		MenteeID:    claims.RoleID,
		SessionDate: req.SessionDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	err = h.repo.Book(c.Request.Context(), b, timeslot.Weekday(date))
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingConflict):
			response.Conflict(c, err.Error())
		case errors.Is(err, ErrOutsideAvailability):
			response.BadRequest(c, err.Error())
		default:
			h.logger.Error("book session failed", zap.Error(err))
			response.Internal(c, "failed to book session")
		}
		return
	}
	response.Created(c, b)
}

// List handles GET /bookings (mentor or mentee view of own sessions).
func (h *Handler) List(c *gin.Context) {
	claims := auth.MustClaims(c)
	var (
		list []models.SessionBooking
		err  error
	)
	switch claims.Role {
	case models.RoleMentor:
		list, err = h.repo.ListByMentor(c.Request.Context(), claims.RoleID)
	case models.RoleMentee:
		list, err = h.repo.ListByMentee(c.Request.Context(), claims.RoleID)
	default:
		response.Forbidden(c, "insufficient permissions")
		return
	}
	if err != nil {
		h.logger.Error("list bookings failed", zap.Error(err))
		response.Internal(c, "failed to list bookings")
		return
	}
	response.OK(c, list)
}

// Cancel handles PATCH /bookings/:id/cancel. Either party may cancel their
// own future scheduled session; anything else is not-found.
func (h *Handler) Cancel(c *gin.Context) {
	claims := auth.MustClaims(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	var ok bool
	switch claims.Role {
	case models.RoleMentor:
		ok, err = h.repo.CancelByMentor(c.Request.Context(), id, claims.RoleID)
	case models.RoleMentee:
		ok, err = h.repo.CancelByMentee(c.Request.Context(), id, claims.RoleID)
	default:
		response.Forbidden(c, "insufficient permissions")
		return
	}
	if err != nil {
		h.logger.Error("cancel booking failed", zap.Error(err))
		response.Internal(c, "failed to cancel booking")
		return
	}
	if !ok {
		response.NotFound(c, "booking not found")
		return
	}
	response.OK(c, gin.H{"status": models.BookingStatusCancelled})
}

// Complete handles PATCH /bookings/:id/complete (mentor only).
func (h *Handler) Complete(c *gin.Context) {
	claims := auth.MustClaims(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	ok, err := h.repo.Complete(c.Request.Context(), id, claims.RoleID)
	if err != nil {
		h.logger.Error("complete booking failed", zap.Error(err))
		response.Internal(c, "failed to complete booking")
		return
	}
	if !ok {
		response.NotFound(c, "booking not found")
		return
	}
	response.OK(c, gin.H{"status": models.BookingStatusCompleted})
}
