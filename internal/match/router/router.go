// Package router provides match module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/match/handler"
	"github.com/festy23/nations_league/internal/match/repository"
	"github.com/festy23/nations_league/internal/match/resolver"
	"github.com/festy23/nations_league/internal/match/service"
	teamRepository "github.com/festy23/nations_league/internal/team/repository"
	userRepository "github.com/festy23/nations_league/internal/user/repository"
)

// NewService wires the match service.
func NewService(
	db *gorm.DB,
	res *resolver.Resolver,
	collab service.Collaborators,
	logger *zap.SugaredLogger,
) service.Service {
	return service.New(
		repository.New(db, logger),
		teamRepository.New(db, logger),
		userRepository.New(db, logger),
		db,
		res,
		collab,
		logger,
	)
}

// RegisterRoutes registers match module routes.
func RegisterRoutes(r *gin.Engine, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	matches := r.Group("/matches")
	matches.GET("", h.ListMatches)
	matches.GET("/:id", h.GetMatch)
}
