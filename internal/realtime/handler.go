package realtime

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Handler upgrades tournament watchers to websockets.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler creates a handler. Browser origins outside allowedOrigins are rejected;
// requests without an Origin header (non-browser clients) are accepted.
func NewHandler(hub *Hub, allowedOrigins []string) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// ServeWS godoc
// @Summary      Watch a tournament
// @Description  Upgrades to a websocket receiving bracket updates of the tournament
// @Tags         Tournament
// @Param        id path string true "Tournament ID"
// @Success      101
// @Router       /ws/tournaments/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ServeWS(c *gin.Context) {
	tournamentID := c.Param("id")
	if tournamentID == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.hub.logger.Warnw("websocket upgrade failed", "tournament_id", tournamentID, "error", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		room: RoomFor(tournamentID),
	}
	if !h.hub.join(client) {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// RegisterRoutes mounts GET /ws/tournaments/:id.
func RegisterRoutes(r *gin.Engine, hub *Hub, allowedOrigins []string) {
	r.GET("/ws/tournaments/:id", NewHandler(hub, allowedOrigins).ServeWS)
}
