package chat

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/internal/dto"
)

// storeCallTimeout bounds every store round trip made from the hub loop.
const storeCallTimeout = 10 * time.Second

// Hub owns all connected chat clients and their room placement. A single
// goroutine consumes the command channel, so room membership and message
// fan-out never need locks: whatever order commands arrive in is the order
// clients observe. Persisting a message and broadcasting it happen back to
// back on that goroutine, which keeps broadcast order equal to store order
// within a room.
type Hub struct {
	chatSvc      portssvc.ChatSvcFacade
	logger       *slog.Logger
	historyLimit int

	rooms    map[string]map[*Client]struct{}
	commands chan command
}

type commandKind int

const (
	cmdRegister commandKind = iota
	cmdUnregister
	cmdJoin
	cmdSend
)

type command struct {
	kind   commandKind
	client *Client
	teamID string
	body   string
}

// NewHub creates a hub. historyLimit caps how many messages a join replays.
func NewHub(chatSvc portssvc.ChatSvcFacade, logger *slog.Logger, historyLimit int) *Hub {
	if historyLimit <= 0 {
		historyLimit = 500
	}
	return &Hub{
		chatSvc:      chatSvc,
		logger:       logger,
		historyLimit: historyLimit,
		rooms:        make(map[string]map[*Client]struct{}),
		commands:     make(chan command, 64),
	}
}

// Run consumes commands until ctx is cancelled. Call it on its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-h.commands:
			switch cmd.kind {
			case cmdRegister:
				// Registration only marks the client live; it joins no room yet.
			case cmdUnregister:
				h.leaveRoom(cmd.client)
				cmd.client.closeSend()
			case cmdJoin:
				h.handleJoin(ctx, cmd.client, cmd.teamID)
			case cmdSend:
				h.handleSend(ctx, cmd.client, cmd.teamID, cmd.body)
			}
		}
	}
}

// Register announces a new connection to the hub.
func (h *Hub) Register(c *Client) {
	h.commands <- command{kind: cmdRegister, client: c}
}

// Unregister removes a connection from its room and releases it.
func (h *Hub) Unregister(c *Client) {
	h.commands <- command{kind: cmdUnregister, client: c}
}

// handleJoin authorizes the client for the room, moves it there and replays
// recent history. A failed membership check leaves the client where it was;
// a failed history fetch still completes the join. Either way only the
// requesting client hears about the error.
func (h *Hub) handleJoin(ctx context.Context, c *Client, teamID string) {
	callCtx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	defer cancel()

	if err := h.chatSvc.Authorize(callCtx, teamID, c.userID); err != nil {
		reason := "failed to verify team membership"
		if errors.Is(err, apperrors.ErrForbidden) {
			reason = "not a member of this team"
		}
		h.logger.Warn("chat join rejected",
			slog.String("team_id", teamID),
			slog.String("user_id", c.userID),
			slog.String("error", err.Error()))
		c.trySend(mustEnvelope(EventJoinError, ErrorPayload{TeamID: teamID, Error: reason}))
		return
	}

	// One room per connection: joining a new team leaves the old one.
	h.leaveRoom(c)
	if h.rooms[teamID] == nil {
		h.rooms[teamID] = make(map[*Client]struct{})
	}
	h.rooms[teamID][c] = struct{}{}
	c.teamID = teamID

	messages, err := h.chatSvc.RecentMessages(callCtx, teamID, c.userID, h.historyLimit)
	if err != nil {
		h.logger.Error("chat history load failed",
			slog.String("team_id", teamID),
			slog.String("user_id", c.userID),
			slog.String("error", err.Error()))
		c.trySend(mustEnvelope(EventLoadMessagesError, ErrorPayload{TeamID: teamID, Error: "failed to load messages"}))
		return
	}

	payload := LoadMessagesPayload{
		TeamID:   teamID,
		Messages: dto.ToListMessagesResponse(messages).Messages,
	}
	c.trySend(mustEnvelope(EventLoadMessages, payload))
}

// handleSend persists the message and then broadcasts it to the target
// team's room. Sending is gated by team membership, not by being joined to
// the room, so a member can post to a team it is not currently viewing; the
// sender only hears the echo if it is joined. The store write happens first
// so no client ever sees a message that was not durably recorded.
func (h *Hub) handleSend(ctx context.Context, c *Client, teamID, body string) {
	if teamID == "" {
		c.trySend(mustEnvelope(EventSendError, ErrorPayload{Error: "teamID is required"}))
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	defer cancel()

	message, err := h.chatSvc.PostMessage(callCtx, teamID, c.userID, body)
	if err != nil {
		reason := "failed to send message"
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			reason = "not a member of this team"
		case errors.Is(err, apperrors.ErrValidation):
			reason = "invalid message"
		}
		h.logger.Warn("chat message rejected",
			slog.String("team_id", teamID),
			slog.String("user_id", c.userID),
			slog.String("error", err.Error()))
		c.trySend(mustEnvelope(EventSendError, ErrorPayload{TeamID: teamID, Error: reason}))
		return
	}

	frame := mustEnvelope(EventReceiveMessage, dto.ToMessageResponse(message))
	for member := range h.rooms[teamID] {
		member.trySend(frame)
	}
}

// leaveRoom detaches the client from its current room, if any.
func (h *Hub) leaveRoom(c *Client) {
	if c.teamID == "" {
		return
	}
	if room, ok := h.rooms[c.teamID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.teamID)
		}
	}
	c.teamID = ""
}
