package chat

import (
	"encoding/json"

	"github.com/movetrack/movement_tracking_app/internal/dto"
)

// Wire event names. The client sends join_team and send_message; the server
// answers with load_messages, receive_message or one of the error events.
const (
	EventJoinTeam          = "join_team"
	EventJoinError         = "join_error"
	EventLoadMessages      = "load_messages"
	EventLoadMessagesError = "load_messages_error"
	EventSendMessage       = "send_message"
	EventSendError         = "send_error"
	EventReceiveMessage    = "receive_message"
)

// Envelope is the frame every websocket message travels in.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinTeamPayload is the client request to enter a team room.
type JoinTeamPayload struct {
	TeamID string `json:"teamID"`
}

// SendMessagePayload is the client request to post to a team's room. The
// sender does not have to be joined to that room; membership is what gates
// the send, exactly as it gates a join.
type SendMessagePayload struct {
	TeamID string `json:"teamID"`
	Body   string `json:"body"`
}

// ErrorPayload carries a human-readable failure reason to one client.
type ErrorPayload struct {
	TeamID string `json:"teamID,omitempty"`
	Error  string `json:"error"`
}

// LoadMessagesPayload delivers room history, oldest first.
type LoadMessagesPayload struct {
	TeamID   string                `json:"teamID"`
	Messages []dto.MessageResponse `json:"messages"`
}

func mustEnvelope(event string, data any) []byte {
	raw, err := json.Marshal(data)
	if err != nil {
		// Payload types are all marshalable structs; this cannot fail at runtime.
		panic(err)
	}
	out, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		panic(err)
	}
	return out
}
