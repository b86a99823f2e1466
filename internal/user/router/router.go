// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/config"
	"github.com/festy23/nations_league/internal/middleware"
	"github.com/festy23/nations_league/internal/user/handler"
	"github.com/festy23/nations_league/internal/user/repository"
	"github.com/festy23/nations_league/internal/user/service"
	"github.com/festy23/nations_league/internal/user/token"
)

// NewService wires the account service used by routes and the auth middleware.
func NewService(db *gorm.DB, cfg config.AuthConfig, logger *zap.SugaredLogger) service.Service {
	repo := repository.New(db, logger)
	return service.New(repo, token.NewManager(cfg.JWTSecret, cfg.TokenTTL), cfg.BcryptCost, logger)
}

// RegisterRoutes registers account routes.
func RegisterRoutes(r *gin.Engine, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	auth := r.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", middleware.Authenticate(svc, logger), h.Me)
}
