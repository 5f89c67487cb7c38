package services

import (
	"context"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	"github.com/movetrack/movement_tracking_app/internal/dto"
)

// TeamReaderSvc defines read operations for team data
type TeamReaderSvc interface {
	// GetTeam retrieves a team with leader name and members resolved.
	GetTeam(ctx context.Context, teamID string) (*domain.TeamWithMembers, error)

	// ListTeams retrieves every team.
	ListTeams(ctx context.Context) ([]domain.TeamWithMembers, error)

	// ListTeamsForUser retrieves every team where the user is the leader or a member.
	ListTeamsForUser(ctx context.Context, userID string) ([]domain.TeamWithMembers, error)
}

// TeamMembershipSvc is the authorization surface the messaging layer uses.
type TeamMembershipSvc interface {
	// IsMember reports whether the user is the leader or a member of the team.
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
}

// TeamWriterSvc defines write operations for team data
type TeamWriterSvc interface {
	// CreateTeam creates a team with a leader and an initial member set.
	CreateTeam(ctx context.Context, req dto.CreateTeamRequest, creatorUserID string) (*domain.TeamWithMembers, error)

	// AddMember adds a user to a team.
	AddMember(ctx context.Context, teamID, userID string) error

	// RemoveMember removes a user from a team.
	RemoveMember(ctx context.Context, teamID, userID string) error

	// DeleteTeam removes the team; its messages are cascade-deleted.
	DeleteTeam(ctx context.Context, teamID string) error
}

// TeamSvcFacade combines all team-related service interfaces
type TeamSvcFacade interface {
	TeamReaderSvc
	TeamMembershipSvc
	TeamWriterSvc
}
