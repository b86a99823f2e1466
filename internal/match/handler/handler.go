// Package handler provides HTTP handlers for match endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/apierror"
	"github.com/festy23/nations_league/internal/match/model"
	"github.com/festy23/nations_league/internal/match/service"
)

// Handler handles HTTP requests for match endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new match handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListMatches handles GET /matches request.
// @Summary List matches
// @Tags Matches
// @Produce json
// @Param tournament_id query string false "Tournament ID"
// @Param round query string false "Round (quarterfinal, semifinal, final)"
// @Success 200 {array} model.Match
// @Failure 400 {object} apierror.Response "Unknown round (INVALID_REQUEST)"
// @Router /matches [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListMatches(c *gin.Context) {
	var filter model.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid query parameters")
		return
	}

	matches, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, model.ErrInvalidRound) {
			apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
		h.logger.Errorw("failed to list matches", "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatch handles GET /matches/:id request.
// @Summary Get a match with its goals and commentary
// @Tags Matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} model.Match
// @Failure 404 {object} apierror.Response "Match not found"
// @Router /matches/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetMatch(c *gin.Context) {
	id := c.Param("id")

	match, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrMatchNotFound) {
			apierror.NotFound(c, "match not found")
			return
		}
		h.logger.Errorw("failed to get match", "match_id", id, "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, match)
}
