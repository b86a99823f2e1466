// Package router provides tournament module routes registration.
package router

import (
	"math/rand"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	leaderboardService "github.com/festy23/nations_league/internal/leaderboard/service"
	matchRepository "github.com/festy23/nations_league/internal/match/repository"
	matchService "github.com/festy23/nations_league/internal/match/service"
	"github.com/festy23/nations_league/internal/middleware"
	teamRepository "github.com/festy23/nations_league/internal/team/repository"
	"github.com/festy23/nations_league/internal/tournament/handler"
	"github.com/festy23/nations_league/internal/tournament/repository"
	"github.com/festy23/nations_league/internal/tournament/service"
	userModel "github.com/festy23/nations_league/internal/user/model"
)

// NewService wires the tournament service.
func NewService(
	db *gorm.DB,
	matches matchService.Service,
	rng *rand.Rand,
	collab service.Collaborators,
	logger *zap.SugaredLogger,
) service.Service {
	return service.New(
		repository.New(db, logger),
		matchRepository.New(db, logger),
		teamRepository.New(db, logger),
		matches,
		db,
		rng,
		collab,
		logger,
	)
}

// RegisterRoutes registers tournament module routes.
func RegisterRoutes(
	r *gin.Engine,
	svc service.Service,
	leaderboard leaderboardService.Service,
	auth middleware.Authenticator,
	logger *zap.SugaredLogger,
) {
	h := handler.New(svc, leaderboard, logger)
	admin := []gin.HandlerFunc{middleware.Authenticate(auth, logger), middleware.RequireRole(userModel.RoleAdmin)}

	t := r.Group("/tournament")
	t.GET("/current", h.GetCurrent)
	t.GET("/goal-leaders", h.GoalLeaders)
	t.GET("/:id", h.GetTournament)

	t.POST("/create", append(admin, h.CreateTournament)...)
	t.POST("/reset", append(admin, h.ResetTournament)...)
	t.POST("/matches/:matchId/play", append(admin, h.PlayMatch)...)
	t.POST("/:id/advance", append(admin, h.AdvanceRound)...)
	t.POST("/:id/goal-leaders/rebuild", append(admin, h.RebuildLeaderboard)...)
}
