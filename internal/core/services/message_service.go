package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portsrepo "github.com/movetrack/movement_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
)

// maxMessageBody caps a single chat message.
const maxMessageBody = 4000

// messageService backs both the realtime hub and the REST history endpoint.
// Every read and write goes through the same membership check.
type messageService struct {
	BaseService
	messageRepo portsrepo.MessageRepositoryFacade
	teamRepo    portsrepo.TeamRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewMessageService creates a new message service.
func NewMessageService(messageRepo portsrepo.MessageRepositoryFacade, teamRepo portsrepo.TeamRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.ChatSvcFacade {
	return &messageService{
		messageRepo: messageRepo,
		teamRepo:    teamRepo,
		userRepo:    userRepo,
	}
}

// Ensure messageService implements the portssvc.ChatSvcFacade interface
var _ portssvc.ChatSvcFacade = (*messageService)(nil)

// Authorize returns ErrForbidden unless the user is the team's leader or a
// member of it.
func (s *messageService) Authorize(ctx context.Context, teamID, userID string) error {
	belongs, err := s.teamRepo.IsLeaderOrMember(ctx, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to check team membership: %w", err)
	}
	if !belongs {
		return fmt.Errorf("%w: user %s is not on team %s", apperrors.ErrForbidden, userID, teamID)
	}
	return nil
}

func (s *messageService) RecentMessages(ctx context.Context, teamID, actingUserID string, limit int) ([]domain.Message, error) {
	if err := s.Authorize(ctx, teamID, actingUserID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 500
	}
	messages, err := s.messageRepo.FindRecentMessages(ctx, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load message history: %w", err)
	}
	return messages, nil
}

// PostMessage persists a message after authorizing the sender and returns it
// with the store-assigned id and timestamp, ready for broadcast.
func (s *messageService) PostMessage(ctx context.Context, teamID, senderID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is empty", apperrors.ErrValidation)
	}
	if len(body) > maxMessageBody {
		return nil, fmt.Errorf("%w: message body exceeds %d bytes", apperrors.ErrValidation, maxMessageBody)
	}

	if err := s.Authorize(ctx, teamID, senderID); err != nil {
		return nil, err
	}

	sender, err := s.userRepo.FindUserByID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sender: %w", err)
	}

	message := &domain.Message{
		TeamID:     teamID,
		SenderID:   senderID,
		SenderName: sender.Name,
		Body:       body,
	}
	if err := s.messageRepo.SaveMessage(ctx, message); err != nil {
		s.LogError(ctx, err, "Failed to save chat message", slog.String("team_id", teamID), slog.String("sender_id", senderID))
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	return message, nil
}
