// Package handler provides HTTP handlers for account endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/apierror"
	"github.com/festy23/nations_league/internal/middleware"
	"github.com/festy23/nations_league/internal/user/model"
	"github.com/festy23/nations_league/internal/user/service"
)

// Handler handles HTTP requests for account endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register handles POST /auth/register request.
// @Summary Register a federation representative
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Request"
// @Success 201 {object} model.AuthResponse
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 409 {object} apierror.Response "E-mail already registered (USER_EXISTS)"
// @Router /auth/register [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", "valid email and a password of at least 6 characters are required")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserExists):
			apierror.Write(c, http.StatusConflict, "USER_EXISTS", "user already exists")
		case errors.Is(err, model.ErrWeakPassword), errors.Is(err, model.ErrInvalidEmail):
			apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		default:
			h.logger.Errorw("failed to register user", "error", err)
			apierror.Internal(c)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login request.
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Request"
// @Success 200 {object} model.AuthResponse
// @Failure 401 {object} apierror.Response "Invalid credentials"
// @Router /auth/login [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			apierror.Write(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
			return
		}
		h.logger.Errorw("failed to log in", "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me handles GET /auth/me request.
// @Summary Current account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} apierror.Response
// @Router /auth/me [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		apierror.Write(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			apierror.NotFound(c, "user not found")
			return
		}
		h.logger.Errorw("failed to load current user", "user_id", userID, "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout handles POST /auth/logout. Tokens are stateless; clients drop them.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
