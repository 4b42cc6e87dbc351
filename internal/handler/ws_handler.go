package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smartattend/backend/internal/config"
	"github.com/smartattend/backend/internal/middleware"
	"github.com/smartattend/backend/internal/model"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live notifications over WebSocket.
type WSHandler struct {
	rdb      *redis.Client
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		logger:   log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// NotificationStream godoc
// WS /ws/v1/notifications/stream?token=...
// Upgrades to WebSocket and forwards the caller's notifications as they
// are emitted. Only events addressed to the user or broadcast to their
// role pass the filter.
func (h *WSHandler) NotificationStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.logger.With().
		Int("user_id", claims.UserID).
		Str("role", string(claims.Role)).
		Logger()
	wsLog.Info().Msg("Notification stream connected")

	ctx := c.Request.Context()
	sub := h.rdb.Subscribe(ctx, config.CacheKey.NotificationChannel())
	defer sub.Close()

	// Reader goroutine: the client never sends data frames, but reading is
	// what surfaces the close handshake.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	events := sub.Channel()
	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Notification stream closed")
			return
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			var n model.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				wsLog.Warn().Err(err).Msg("Malformed notification event")
				continue
			}
			if !visibleTo(&n, claims.UserID, claims.Role) {
				continue
			}
			if err := conn.WriteJSON(n); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, dropping stream")
				return
			}
		}
	}
}

// visibleTo mirrors the feed visibility rule: addressed to me, or
// broadcast to my role.
func visibleTo(n *model.Notification, userID int, role model.Role) bool {
	if n.UserID != nil && *n.UserID == userID {
		return true
	}
	if n.RoleTarget != nil && *n.RoleTarget == role {
		return true
	}
	return false
}
