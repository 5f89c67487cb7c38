package chat

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 8192
	sendBufferSize = 64
)

// wsConn is the slice of *websocket.Conn the client needs. Tests substitute
// an in-memory implementation.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

// Client is one websocket connection known to the hub. teamID is owned by
// the hub goroutine; the pumps never touch it.
type Client struct {
	hub    *Hub
	conn   wsConn
	logger *slog.Logger

	userID string
	teamID string

	send       chan []byte
	sendClosed bool
}

// NewClient wraps an upgraded connection for the given authenticated user.
func NewClient(hub *Hub, conn wsConn, userID string, logger *slog.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		logger: logger,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}
}

// Serve registers the client and runs both pumps. It returns when the
// connection is gone. Callers run it on the upgrade handler's goroutine.
func (c *Client) Serve() {
	c.hub.Register(c)
	go c.writePump()
	c.readPump()
}

// readPump decodes inbound frames and forwards them to the hub as commands.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket closed unexpectedly",
					slog.String("user_id", c.userID),
					slog.String("error", err.Error()))
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.trySend(mustEnvelope(EventJoinError, ErrorPayload{Error: "malformed frame"}))
			continue
		}

		switch env.Event {
		case EventJoinTeam:
			var payload JoinTeamPayload
			if err := json.Unmarshal(env.Data, &payload); err != nil || payload.TeamID == "" {
				c.trySend(mustEnvelope(EventJoinError, ErrorPayload{Error: "teamID is required"}))
				continue
			}
			c.hub.commands <- command{kind: cmdJoin, client: c, teamID: payload.TeamID}
		case EventSendMessage:
			var payload SendMessagePayload
			if err := json.Unmarshal(env.Data, &payload); err != nil {
				c.trySend(mustEnvelope(EventSendError, ErrorPayload{Error: "malformed message"}))
				continue
			}
			if payload.TeamID == "" {
				c.trySend(mustEnvelope(EventSendError, ErrorPayload{Error: "teamID is required"}))
				continue
			}
			c.hub.commands <- command{kind: cmdSend, client: c, teamID: payload.TeamID, body: payload.Body}
		default:
			c.trySend(mustEnvelope(EventJoinError, ErrorPayload{Error: "unknown event " + env.Event}))
		}
	}
}

// writePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// trySend queues a frame without blocking the hub. A client whose buffer is
// full is too far behind to be useful; the frame is dropped and the slow
// connection will fall over on its next ping.
func (c *Client) trySend(frame []byte) {
	if c.sendClosed {
		return
	}
	select {
	case c.send <- frame:
	default:
		c.logger.Warn("dropping frame for slow chat client", slog.String("user_id", c.userID))
	}
}

// closeSend is called by the hub goroutine once the client is unregistered.
func (c *Client) closeSend() {
	if !c.sendClosed {
		c.sendClosed = true
		close(c.send)
	}
}
