package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mentorhub/backend/internal/models"
	"github.com/mentorhub/backend/pkg/queue"
	"github.com/mentorhub/backend/pkg/response"
	"github.com/mentorhub/backend/pkg/storage"
	"github.com/mentorhub/backend/pkg/utils"
)

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=40"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles auth and profile HTTP endpoints.
type Handler struct {
	repo         *Repository
	jwt          *JWTService
	s3           *storage.S3
	queue        *queue.Queue
	resetURLBase string
	logger       *zap.Logger
}

// NewHandler creates an auth handler. s3 and q may be nil (avatar upload and
// reset emails are then unavailable).
func NewHandler(repo *Repository, jwt *JWTService, s3 *storage.S3, q *queue.Queue, resetURLBase string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, jwt: jwt, s3: s3, queue: q, resetURLBase: resetURLBase, logger: logger}
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		response.BadRequest(c, "invalid role")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user, err := h.repo.Create(c.Request.Context(), req.Username, req.Email, hash, req.FullName, role)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			response.Conflict(c, "username or email already taken")
			return
		}
		h.logger.Error("create user failed", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	response.Created(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || user == nil {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, response.Body{Success: true, Data: TokenResponse{Token: token, User: user.ToPublic()}})
}

// Me handles GET /me.
func (h *Handler) Me(c *gin.Context) {
	claims := MustClaims(c)
	user, err := h.repo.GetByID(c.Request.Context(), claims.UserID)
	if err != nil || user == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, user.ToPublic())
}

// UpdateMeRequest is the body for PATCH /me. Role is deliberately absent.
type UpdateMeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Bio      string `json:"bio"`
}

// UpdateMe handles PATCH /me.
func (h *Handler) UpdateMe(c *gin.Context) {
	claims := MustClaims(c)
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	user, err := h.repo.UpdateProfile(c.Request.Context(), claims.UserID, req.FullName, req.Bio)
	if err != nil || user == nil {
		h.logger.Error("update profile failed", zap.Error(err))
		response.Internal(c, "failed to update profile")
		return
	}
	response.OK(c, user.ToPublic())
}

// UploadAvatar handles POST /me/avatar (multipart form, field "avatar").
func (h *Handler) UploadAvatar(c *gin.Context) {
	if h.s3 == nil {
		response.Internal(c, "avatar storage not configured")
		return
	}
	claims := MustClaims(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "avatar file required")
		return
	}
	if file.Size > storage.MaxAvatarFileSize {
		response.BadRequest(c, "avatar too large")
		return
	}
	if !storage.ValidateAvatarFilename(file.Filename) {
		response.BadRequest(c, "unsupported image type")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Internal(c, "failed to read upload")
		return
	}
	defer src.Close()

	key := storage.AvatarKey(claims.UserID.String(), file.Filename)
	url, err := h.s3.UploadAvatar(c.Request.Context(), key, storage.ContentTypeForFilename(file.Filename), src)
	if err != nil {
		h.logger.Error("avatar upload failed", zap.Error(err))
		response.Internal(c, "failed to upload avatar")
		return
	}
	if err := h.repo.UpdateAvatarURL(c.Request.Context(), claims.UserID, url); err != nil {
		h.logger.Error("store avatar url failed", zap.Error(err))
		response.Internal(c, "failed to save avatar")
		return
	}
	response.OK(c, gin.H{"avatar_url": url})
}

// ForgotPasswordRequest is the body for POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword handles POST /auth/forgot-password. Always answers 200 so
// the endpoint does not leak which emails exist.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || user == nil {
		response.OK(c, gin.H{"message": "if the account exists, a reset link was sent"})
		return
	}

	tokenStr, err := generateToken()
	if err != nil {
		h.logger.Error("generate reset token failed", zap.Error(err))
		response.Internal(c, "failed to create reset link")
		return
	}
	tok := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     tokenStr,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := h.repo.CreateResetToken(c.Request.Context(), tok); err != nil {
		h.logger.Error("create reset token failed", zap.Error(err))
		response.Internal(c, "failed to create reset link")
		return
	}

	if h.queue != nil {
		resetURL := fmt.Sprintf("%s?token=%s", h.resetURLBase, tokenStr)
		payload := queue.EmailPayload{
			EmailType:      queue.EmailTypePasswordReset,
			UserID:         &user.ID,
			RecipientEmail: user.Email,
			Subject:        "Reset your MentorHub password",
			BodyHTML: fmt.Sprintf("<p>Hi %s,</p><p>Click <a href=%q>here</a> to reset your password. The link expires in one hour.</p>",
				user.FullName, resetURL),
		}
		if err := h.queue.EnqueueEmail(c.Request.Context(), payload); err != nil {
			h.logger.Error("enqueue reset email failed", zap.Error(err))
		}
	}

	response.OK(c, gin.H{"message": "if the account exists, a reset link was sent"})
}

// ResetPasswordRequest is the body for POST /auth/reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// ResetPassword handles POST /auth/reset-password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	ok, err := h.repo.ResetPassword(c.Request.Context(), req.Token, hash)
	if err != nil {
		h.logger.Error("reset password failed", zap.Error(err))
		response.Internal(c, "failed to reset password")
		return
	}
	if !ok {
		response.BadRequest(c, "invalid or expired token")
		return
	}
	response.OK(c, gin.H{"message": "password updated"})
}

// List handles GET /admin/users.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list users")
		return
	}
	response.OK(c, list)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
