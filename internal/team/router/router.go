// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/middleware"
	"github.com/festy23/nations_league/internal/squad"
	"github.com/festy23/nations_league/internal/team/handler"
	"github.com/festy23/nations_league/internal/team/repository"
	"github.com/festy23/nations_league/internal/team/service"
	userModel "github.com/festy23/nations_league/internal/user/model"
)

// NewService wires the team service.
func NewService(db *gorm.DB, generator *squad.Generator, logger *zap.SugaredLogger) service.Service {
	return service.New(repository.New(db, logger), db, generator, logger)
}

// RegisterRoutes registers team module routes.
func RegisterRoutes(
	r *gin.Engine,
	svc service.Service,
	auth middleware.Authenticator,
	logger *zap.SugaredLogger,
) {
	h := handler.New(svc, logger)
	authenticate := middleware.Authenticate(auth, logger)

	teams := r.Group("/teams")
	teams.GET("", h.ListTeams)
	teams.GET("/:id", h.GetTeam)
	teams.POST("/register", authenticate, middleware.RequireRole(userModel.RoleRepresentative), h.RegisterTeam)
	teams.POST("/seed", authenticate, middleware.RequireRole(userModel.RoleAdmin), h.SeedDemoTeams)
}
