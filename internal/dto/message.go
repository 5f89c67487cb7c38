package dto

import (
	"time"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// MessageResponse defines data returned for one chat message.
type MessageResponse struct {
	MessageID  int64     `json:"messageID"`
	TeamID     string    `json:"teamID"`
	SenderID   string    `json:"senderID"`
	SenderName string    `json:"senderName"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToMessageResponse converts domain.Message to DTO.
func ToMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		MessageID:  m.MessageID,
		TeamID:     m.TeamID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
	}
}

// ListMessagesResponse wraps a team's message history, oldest first.
type ListMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// ToListMessagesResponse converts a slice of domain.Message to DTO.
func ToListMessagesResponse(ms []domain.Message) ListMessagesResponse {
	list := make([]MessageResponse, len(ms))
	for i := range ms {
		list[i] = ToMessageResponse(&ms[i])
	}
	return ListMessagesResponse{Messages: list}
}
