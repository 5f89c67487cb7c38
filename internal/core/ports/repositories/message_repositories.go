package repositories

import (
	"context"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// MessageReader defines read operations for chat messages
type MessageReader interface {
	// FindRecentMessages retrieves up to limit most recent messages for a
	// team, returned oldest first (insertion order).
	FindRecentMessages(ctx context.Context, teamID string, limit int) ([]domain.Message, error)
}

// MessageWriter defines write operations for chat messages
type MessageWriter interface {
	// SaveMessage persists a message; the store assigns MessageID and CreatedAt.
	SaveMessage(ctx context.Context, message *domain.Message) error
}

// MessageRepositoryFacade combines all message-related repository interfaces
type MessageRepositoryFacade interface {
	MessageReader
	MessageWriter
}
