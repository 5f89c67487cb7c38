package domain

import "time"

// Message is a single team-chat entry. Messages are immutable once created;
// the store-assigned MessageID is monotonic within a team and insertion order
// is the only ordering guarantee.
type Message struct {
	MessageID  int64     `json:"messageID"`
	TeamID     string    `json:"teamID"`
	SenderID   string    `json:"senderID"`
	SenderName string    `json:"senderName"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}
