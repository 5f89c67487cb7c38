package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/internal/dto"
	"github.com/movetrack/movement_tracking_app/internal/middleware"
)

// messageHandler serves chat history over plain REST, for clients that want
// the log without holding a socket open.
type messageHandler struct {
	chatService portssvc.ChatSvcFacade
	historyCap  int
}

func newMessageHandler(cs portssvc.ChatSvcFacade, historyCap int) *messageHandler {
	if historyCap <= 0 {
		historyCap = 500
	}
	return &messageHandler{chatService: cs, historyCap: historyCap}
}

// RegisterMessageRoutes registers the message history route. historyCap
// bounds the limit query param, matching the websocket history replay cap.
func RegisterMessageRoutes(rg *gin.RouterGroup, chatService portssvc.ChatSvcFacade, historyCap int) {
	h := newMessageHandler(chatService, historyCap)
	rg.GET("/teams/:id/messages", h.listMessages)
}

// listMessages godoc
// @Summary Get a team's recent messages
// @Description Returns up to limit most recent messages, oldest first. Team members and leaders only.
// @Tags messages
// @Produce  json
// @Param   id path string true "Team ID"
// @Param   limit query int false "Max messages to return, capped at the configured history limit" default(500)
// @Success 200 {object} dto.ListMessagesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{id}/messages [get]
func (h *messageHandler) listMessages(c *gin.Context) {
	teamID := c.Param("id")

	actingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit := h.historyCap
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed < limit {
			limit = parsed
		}
	}

	messages, err := h.chatService.RecentMessages(c.Request.Context(), teamID, actingUserID, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not a member of this team"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListMessagesResponse(messages))
}
