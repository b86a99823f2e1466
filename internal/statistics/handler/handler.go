// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/apierror"
	"github.com/festy23/nations_league/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetTournamentStatistics handles GET /statistics/tournament request.
// @Summary Get match and goal statistics
// @Description Covers every tournament when tournament_id is omitted
// @Tags Statistics
// @Produce json
// @Param tournament_id query string false "Tournament ID"
// @Success 200 {object} model.TournamentStatistics
// @Failure 500 {object} apierror.Response
// @Router /statistics/tournament [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTournamentStatistics(c *gin.Context) {
	resp, err := h.service.GetTournamentStatistics(c.Request.Context(), c.Query("tournament_id"))
	if err != nil {
		h.logger.Errorw("error getting tournament statistics", "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTeamStatistics handles GET /statistics/teams request.
// @Summary Get per-team records
// @Tags Statistics
// @Produce json
// @Param tournament_id query string false "Tournament ID"
// @Success 200 {object} model.TeamsStatisticsResponse
// @Failure 500 {object} apierror.Response
// @Router /statistics/teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTeamStatistics(c *gin.Context) {
	resp, err := h.service.GetTeamStatistics(c.Request.Context(), c.Query("tournament_id"))
	if err != nil {
		h.logger.Errorw("error getting team statistics", "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}
