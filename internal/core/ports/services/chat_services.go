package services

import (
	"context"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// ChatSvcFacade is the contract between the realtime hub (and the REST
// history endpoint) and the message store. Both PostMessage and
// RecentMessages enforce team membership of the acting user.
type ChatSvcFacade interface {
	// Authorize returns apperrors.ErrForbidden if the user is neither the
	// leader nor a member of the team.
	Authorize(ctx context.Context, teamID, userID string) error

	// RecentMessages returns up to limit most recent messages for the team,
	// oldest first, after authorizing the acting user.
	RecentMessages(ctx context.Context, teamID, actingUserID string, limit int) ([]domain.Message, error)

	// PostMessage authorizes the sender, persists the message and returns it
	// with the store-assigned id and timestamp.
	PostMessage(ctx context.Context, teamID, senderID, body string) (*domain.Message, error)
}
