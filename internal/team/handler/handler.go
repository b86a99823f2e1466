// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/apierror"
	"github.com/festy23/nations_league/internal/middleware"
	teamModel "github.com/festy23/nations_league/internal/team/model"
	"github.com/festy23/nations_league/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// RegisterTeam handles POST /teams/register request.
// @Summary Register the caller's national team
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body teamModel.RegisterTeamRequest true "Request"
// @Success 201 {object} teamModel.Team
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 409 {object} apierror.Response "Country taken (TEAM_EXISTS) or team already registered (TEAM_ALREADY_REGISTERED)"
// @Router /teams/register [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) RegisterTeam(c *gin.Context) {
	var req teamModel.RegisterTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", "country and manager are required")
		return
	}

	representativeID, ok := middleware.UserIDFromContext(c)
	if !ok {
		apierror.Write(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	team, err := h.service.RegisterTeam(c.Request.Context(), representativeID, &req)
	if err != nil {
		switch {
		case errors.Is(err, teamModel.ErrTeamExists):
			apierror.Write(c, http.StatusConflict, "TEAM_EXISTS", "Team already registered for this country")
		case errors.Is(err, teamModel.ErrAlreadyHasTeam):
			apierror.Write(c, http.StatusConflict, "TEAM_ALREADY_REGISTERED", "You already have a registered team")
		case errors.Is(err, teamModel.ErrInvalidCountry), errors.Is(err, teamModel.ErrInvalidManager):
			apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		default:
			h.logger.Errorw("failed to register team", "representative_id", representativeID, "error", err)
			apierror.Internal(c)
		}
		return
	}

	c.JSON(http.StatusCreated, team)
}

// ListTeams handles GET /teams request.
// @Summary List registered teams
// @Tags Teams
// @Produce json
// @Success 200 {array} teamModel.Team
// @Router /teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.service.ListTeams(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list teams", "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// GetTeam handles GET /teams/:id request.
// @Summary Get a team with its squad
// @Tags Teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} teamModel.Team
// @Failure 404 {object} apierror.Response
// @Router /teams/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTeam(c *gin.Context) {
	id := c.Param("id")

	team, err := h.service.GetTeam(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			apierror.NotFound(c, "Team not found")
			return
		}
		h.logger.Errorw("failed to get team", "team_id", id, "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, team)
}

// SeedDemoTeams handles POST /teams/seed request.
// @Summary Create the demo teams
// @Tags Teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} teamModel.SeedResponse
// @Router /teams/seed [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) SeedDemoTeams(c *gin.Context) {
	resp, err := h.service.SeedDemoTeams(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to seed demo teams", "error", err)
		apierror.Write(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create demo teams")
		return
	}

	c.JSON(http.StatusOK, resp)
}
