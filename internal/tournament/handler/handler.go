// Package handler provides HTTP handlers for tournament endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/apierror"
	leaderboardModel "github.com/festy23/nations_league/internal/leaderboard/model"
	leaderboardService "github.com/festy23/nations_league/internal/leaderboard/service"
	matchModel "github.com/festy23/nations_league/internal/match/model"
	teamModel "github.com/festy23/nations_league/internal/team/model"
	"github.com/festy23/nations_league/internal/tournament/model"
	"github.com/festy23/nations_league/internal/tournament/service"
)

// Handler handles HTTP requests for tournament endpoints.
type Handler struct {
	service     service.Service
	leaderboard leaderboardService.Service
	logger      *zap.SugaredLogger
}

// New creates a new tournament handler instance.
func New(svc service.Service, leaderboard leaderboardService.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, leaderboard: leaderboard, logger: logger}
}

// CreateTournament handles POST /tournament/create request.
// @Summary Create a tournament from 8 teams
// @Description Deactivates the current tournament and draws quarterfinals
// @Tags Tournament
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateRequest true "Team IDs"
// @Success 201 {object} model.Bracket
// @Failure 400 {object} apierror.Response "Wrong team count (INVALID_TEAM_COUNT)"
// @Failure 404 {object} apierror.Response "Unknown team"
// @Router /tournament/create [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateTournament(c *gin.Context) {
	var req model.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", "team_ids is required")
		return
	}

	bracket, err := h.service.Create(c.Request.Context(), req.TeamIDs)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidTeamCount):
			apierror.Write(c, http.StatusBadRequest, "INVALID_TEAM_COUNT", err.Error())
		case errors.Is(err, model.ErrDuplicateTeam):
			apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		case errors.Is(err, teamModel.ErrTeamNotFound):
			apierror.NotFound(c, err.Error())
		default:
			h.logger.Errorw("failed to create tournament", "error", err)
			apierror.Internal(c)
		}
		return
	}

	c.JSON(http.StatusCreated, bracket)
}

// GetCurrent handles GET /tournament/current request.
// @Summary Get the active tournament
// @Description Returns null when no tournament is active
// @Tags Tournament
// @Produce json
// @Success 200 {object} model.Bracket
// @Router /tournament/current [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetCurrent(c *gin.Context) {
	bracket, err := h.service.GetCurrent(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to get current tournament", "error", err)
		apierror.Internal(c)
		return
	}
	if bracket == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, bracket)
}

// GetTournament handles GET /tournament/:id request.
// @Summary Get a tournament bracket
// @Tags Tournament
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} model.Bracket
// @Failure 404 {object} apierror.Response "Tournament not found"
// @Router /tournament/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTournament(c *gin.Context) {
	id := c.Param("id")

	bracket, err := h.service.GetBracket(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrTournamentNotFound) {
			apierror.NotFound(c, "tournament not found")
			return
		}
		h.logger.Errorw("failed to get tournament", "tournament_id", id, "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, bracket)
}

// PlayMatch handles POST /tournament/matches/:matchId/play request.
// @Summary Resolve a match and advance the bracket
// @Tags Tournament
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param matchId path string true "Match ID"
// @Param request body matchModel.PlayRequest true "Resolution mode"
// @Success 200 {object} model.PlayResponse
// @Failure 400 {object} apierror.Response "Unknown mode (INVALID_MODE)"
// @Failure 404 {object} apierror.Response "Match not found"
// @Failure 409 {object} apierror.Response "Match already completed or tournament inactive"
// @Router /tournament/matches/{matchId}/play [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) PlayMatch(c *gin.Context) {
	matchID := c.Param("matchId")

	var req matchModel.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Write(c, http.StatusBadRequest, "INVALID_MODE", matchModel.ErrInvalidMode.Error())
		return
	}

	resp, err := h.service.PlayMatch(c.Request.Context(), matchID, req.Mode)
	if err != nil {
		switch {
		case errors.Is(err, matchModel.ErrInvalidMode):
			apierror.Write(c, http.StatusBadRequest, "INVALID_MODE", err.Error())
		case errors.Is(err, matchModel.ErrMatchNotFound), errors.Is(err, model.ErrTournamentNotFound):
			apierror.NotFound(c, err.Error())
		case errors.Is(err, matchModel.ErrMatchAlreadyCompleted):
			apierror.Write(c, http.StatusConflict, "MATCH_COMPLETED", err.Error())
		case errors.Is(err, model.ErrTournamentInactive):
			apierror.Write(c, http.StatusConflict, "NO_ACTIVE_TOURNAMENT", err.Error())
		default:
			h.logger.Errorw("failed to play match", "match_id", matchID, "error", err)
			apierror.Internal(c)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AdvanceRound handles POST /tournament/:id/advance request.
// @Summary Re-run the round completion check
// @Tags Tournament
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tournament ID"
// @Param round query string true "Round to check"
// @Success 200 {object} model.Advancement
// @Failure 400 {object} apierror.Response "Unknown round"
// @Failure 404 {object} apierror.Response "Tournament not found"
// @Router /tournament/{id}/advance [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) AdvanceRound(c *gin.Context) {
	id := c.Param("id")
	round := matchModel.Round(c.Query("round"))

	adv, err := h.service.AdvanceRound(c.Request.Context(), id, round)
	if err != nil {
		switch {
		case errors.Is(err, matchModel.ErrInvalidRound):
			apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		case errors.Is(err, model.ErrTournamentNotFound):
			apierror.NotFound(c, "tournament not found")
		default:
			h.logger.Errorw("failed to advance round", "tournament_id", id, "round", round, "error", err)
			apierror.Internal(c)
		}
		return
	}

	c.JSON(http.StatusOK, adv)
}

// ResetTournament handles POST /tournament/reset request.
// @Summary Reset the active tournament
// @Description Clears its goal leaderboard and deactivates it
// @Tags Tournament
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ResetResponse
// @Router /tournament/reset [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ResetTournament(c *gin.Context) {
	resp, err := h.service.Reset(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to reset tournament", "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoalLeaders handles GET /tournament/goal-leaders request.
// @Summary Top scorers
// @Description Defaults to the active tournament; empty when there is none
// @Tags Tournament
// @Produce json
// @Param tournament_id query string false "Tournament ID"
// @Param limit query int false "Maximum entries (default 20)"
// @Success 200 {array} leaderboardModel.Entry
// @Failure 400 {object} apierror.Response "Invalid limit"
// @Router /tournament/goal-leaders [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GoalLeaders(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			apierror.Write(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	tournamentID := c.Query("tournament_id")
	if tournamentID == "" {
		current, err := h.service.GetCurrent(ctx)
		if err != nil {
			h.logger.Errorw("failed to get current tournament", "error", err)
			apierror.Internal(c)
			return
		}
		if current == nil {
			c.JSON(http.StatusOK, []leaderboardModel.Entry{})
			return
		}
		tournamentID = current.ID
	}

	entries, err := h.leaderboard.GoalLeaders(ctx, tournamentID, limit)
	if err != nil {
		h.logger.Errorw("failed to fetch goal leaders", "tournament_id", tournamentID, "error", err)
		apierror.Write(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to fetch goal leaders")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// RebuildLeaderboard handles POST /tournament/:id/goal-leaders/rebuild request.
// @Summary Recompute a tournament's goal leaderboard from its matches
// @Tags Tournament
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tournament ID"
// @Success 200 {object} model.RebuildResponse
// @Failure 404 {object} apierror.Response "Tournament not found"
// @Failure 409 {object} apierror.Response "Tournament was reset"
// @Router /tournament/{id}/goal-leaders/rebuild [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) RebuildLeaderboard(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.service.GetBracket(ctx, id); err != nil {
		if errors.Is(err, model.ErrTournamentNotFound) {
			apierror.NotFound(c, "tournament not found")
			return
		}
		h.logger.Errorw("failed to get tournament", "tournament_id", id, "error", err)
		apierror.Internal(c)
		return
	}

	entries, err := h.leaderboard.Rebuild(ctx, id)
	if err != nil {
		if errors.Is(err, leaderboardModel.ErrTournamentReset) {
			apierror.Write(c, http.StatusConflict, "TOURNAMENT_RESET", err.Error())
			return
		}
		if errors.Is(err, leaderboardModel.ErrTournamentNotFound) {
			apierror.NotFound(c, "tournament not found")
			return
		}
		h.logger.Errorw("failed to rebuild leaderboard", "tournament_id", id, "error", err)
		apierror.Internal(c)
		return
	}

	c.JSON(http.StatusOK, model.RebuildResponse{TournamentID: id, Entries: entries})
}
