package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/movetrack/movement_tracking_app/internal/chat"
	"github.com/movetrack/movement_tracking_app/internal/middleware"
	"github.com/movetrack/movement_tracking_app/internal/platform/config"
)

// chatHandler upgrades authenticated requests to websocket connections and
// hands them to the hub.
type chatHandler struct {
	hub            *chat.Hub
	allowedOrigins []string
}

// registerChatRoutes registers the websocket upgrade endpoint. Browsers
// cannot set headers on upgrade requests, so the auth middleware also
// accepts the JWT as a `token` query parameter.
func registerChatRoutes(rg *gin.Engine, cfg *config.Config, hub *chat.Hub) {
	h := &chatHandler{
		hub:            hub,
		allowedOrigins: cfg.AllowedOrigins,
	}
	rg.GET("/ws/chat", middleware.AuthMiddleware(cfg.JWTSecret), h.serveWS)
}

// upgrader is built per request so origin checks use this instance's list.
func (h *chatHandler) getUpgrader(logger *slog.Logger) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// Allow requests with no origin (e.g., non-browser clients)
				return true
			}
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			logger.Warn("websocket origin rejected", slog.String("origin", origin))
			return false
		},
	}
}

// serveWS godoc
// @Summary Open the team chat websocket
// @Description Upgrades the connection; events are join_team, send_message, load_messages, receive_message.
// @Tags chat
// @Param   token query string false "JWT, alternative to the Authorization header"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /ws/chat [get]
func (h *chatHandler) serveWS(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	upgrader := h.getUpgrader(logger)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := chat.NewClient(h.hub, conn, userID, logger)
	client.Serve()
}
