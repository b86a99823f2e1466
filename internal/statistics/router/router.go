// Package router wires the read-only statistics endpoints.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/statistics/handler"
	"github.com/festy23/nations_league/internal/statistics/repository"
	"github.com/festy23/nations_league/internal/statistics/service"
)

// NewService builds the statistics service over db.
func NewService(db *gorm.DB, logger *zap.SugaredLogger) service.Service {
	return service.New(repository.New(db, logger), logger)
}

// RegisterRoutes mounts /statistics. Both endpoints are public.
func RegisterRoutes(r gin.IRouter, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	stats := r.Group("/statistics")
	stats.GET("/tournament", h.GetTournamentStatistics)
	stats.GET("/teams", h.GetTeamStatistics)
}
