package repositories

import (
	"context"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// TeamReader defines read operations for team data
type TeamReader interface {
	// FindTeamByID retrieves a team with its leader name and members resolved.
	FindTeamByID(ctx context.Context, teamID string) (*domain.TeamWithMembers, error)

	// FindTeams retrieves every team with members resolved.
	FindTeams(ctx context.Context) ([]domain.TeamWithMembers, error)

	// ListTeamsByUserID retrieves every team where the user is the leader or a member.
	ListTeamsByUserID(ctx context.Context, userID string) ([]domain.TeamWithMembers, error)

	// IsLeaderOrMember reports whether the user belongs to the team.
	IsLeaderOrMember(ctx context.Context, teamID, userID string) (bool, error)
}

// TeamWriter defines write operations for team data
type TeamWriter interface {
	// SaveTeam persists a new team and its initial member set in one transaction.
	SaveTeam(ctx context.Context, team domain.Team, memberIDs []string) error

	// AddMember adds a user to a team. The store enforces the single-team
	// invariant: a user already on any team yields ErrDuplicate.
	AddMember(ctx context.Context, member domain.TeamMember) error

	// RemoveMember removes a user from a team; ErrNotFound if not a member.
	RemoveMember(ctx context.Context, teamID, userID string) error

	// DeleteTeam removes the team, its membership rows and its messages.
	DeleteTeam(ctx context.Context, teamID string) error
}

// TeamRepositoryFacade combines all team-related repository interfaces
type TeamRepositoryFacade interface {
	TeamReader
	TeamWriter
}
