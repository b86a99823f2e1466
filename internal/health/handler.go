// Package health provides the liveness endpoint.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/database/database"
)

const probeTimeout = 5 * time.Second

// Handler reports whether the league API can reach its database.
type Handler struct {
	db      *gorm.DB
	started time.Time
	logger  *zap.SugaredLogger
}

// New creates a new health handler instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:      db,
		started: time.Now(),
		logger:  logger,
	}
}

// DatabaseStatus describes the connection pool.
type DatabaseStatus struct {
	Status          string `json:"status"`
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
	Idle            int    `json:"idle"`
}

// Response represents health check response.
type Response struct {
	Status   string         `json:"status"`
	Database DatabaseStatus `json:"database"`
	Uptime   string         `json:"uptime"`
}

// Check handles GET /health request.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	resp := Response{
		Status:   "ok",
		Database: DatabaseStatus{Status: "ok"},
		Uptime:   time.Since(h.started).Truncate(time.Second).String(),
	}

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		resp.Status = "unhealthy"
		resp.Database.Status = "unavailable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	if stats, err := database.GetStats(h.db); err == nil {
		resp.Database.OpenConnections = stats.OpenConnections
		resp.Database.InUse = stats.InUse
		resp.Database.Idle = stats.Idle
	}

	c.JSON(http.StatusOK, resp)
}
