package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portsrepo "github.com/movetrack/movement_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/internal/dto"
)

// teamService handles business logic for teams and their membership.
type teamService struct {
	BaseService
	teamRepo portsrepo.TeamRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

// NewTeamService creates a new team service.
func NewTeamService(teamRepo portsrepo.TeamRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.TeamSvcFacade {
	return &teamService{teamRepo: teamRepo, userRepo: userRepo}
}

// Ensure teamService implements the portssvc.TeamSvcFacade interface
var _ portssvc.TeamSvcFacade = (*teamService)(nil)

func (s *teamService) GetTeam(ctx context.Context, teamID string) (*domain.TeamWithMembers, error) {
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]domain.TeamWithMembers, error) {
	teams, err := s.teamRepo.FindTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *teamService) ListTeamsForUser(ctx context.Context, userID string) ([]domain.TeamWithMembers, error) {
	teams, err := s.teamRepo.ListTeamsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for user: %w", err)
	}
	return teams, nil
}

func (s *teamService) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	return s.teamRepo.IsLeaderOrMember(ctx, teamID, userID)
}

// CreateTeam creates a team with its leader and initial members. The leader
// must hold the TEAM_LEADER role and cannot appear in the member list; a
// member already on another team fails the whole creation.
func (s *teamService) CreateTeam(ctx context.Context, req dto.CreateTeamRequest, creatorUserID string) (*domain.TeamWithMembers, error) {
	leader, err := s.userRepo.FindUserByID(ctx, req.LeaderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: leader %s not found", apperrors.ErrValidation, req.LeaderID)
		}
		return nil, fmt.Errorf("failed to look up leader: %w", err)
	}
	if leader.Role != domain.RoleTeamLeader {
		return nil, fmt.Errorf("%w: user %s does not have the TEAM_LEADER role", apperrors.ErrValidation, req.LeaderID)
	}

	if len(req.MemberIDs) == 0 {
		return nil, fmt.Errorf("%w: a team needs at least one member", apperrors.ErrValidation)
	}
	seen := make(map[string]struct{}, len(req.MemberIDs))
	for _, memberID := range req.MemberIDs {
		if memberID == req.LeaderID {
			return nil, fmt.Errorf("%w: leader cannot also be listed as a member", apperrors.ErrValidation)
		}
		if _, dup := seen[memberID]; dup {
			return nil, fmt.Errorf("%w: member %s listed twice", apperrors.ErrValidation, memberID)
		}
		seen[memberID] = struct{}{}
		if _, err := s.userRepo.FindUserByID(ctx, memberID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: member %s not found", apperrors.ErrValidation, memberID)
			}
			return nil, fmt.Errorf("failed to look up member: %w", err)
		}
	}

	now := time.Now()
	team := domain.Team{
		TeamID:   uuid.NewString(),
		Name:     req.Name,
		LeaderID: req.LeaderID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.teamRepo.SaveTeam(ctx, team, req.MemberIDs); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a listed member already belongs to a team", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save team", slog.String("team_name", req.Name))
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.LogInfo(ctx, "Team created", slog.String("team_id", team.TeamID), slog.String("leader_id", req.LeaderID))
	return s.teamRepo.FindTeamByID(ctx, team.TeamID)
}

// AddMember puts a user on a team. The store's unique index rejects users
// who already belong to any team.
func (s *teamService) AddMember(ctx context.Context, teamID, userID string) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s not found", apperrors.ErrValidation, userID)
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to look up team: %w", err)
	}
	if team.LeaderID == userID {
		return fmt.Errorf("%w: the leader is already part of the team", apperrors.ErrValidation)
	}

	member := domain.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := s.teamRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: user %s already belongs to a team", apperrors.ErrDuplicate, userID)
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	s.LogInfo(ctx, "Member added to team", slog.String("team_id", teamID), slog.String("user_id", userID))
	return nil
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, userID string) error {
	if err := s.teamRepo.RemoveMember(ctx, teamID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	s.LogInfo(ctx, "Member removed from team", slog.String("team_id", teamID), slog.String("user_id", userID))
	return nil
}

// DeleteTeam deletes a team along with its membership rows and chat history.
func (s *teamService) DeleteTeam(ctx context.Context, teamID string) error {
	if err := s.teamRepo.DeleteTeam(ctx, teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	s.LogInfo(ctx, "Team deleted", slog.String("team_id", teamID))
	return nil
}
