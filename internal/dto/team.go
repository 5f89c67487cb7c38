package dto

import (
	"time"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// --- Team DTOs ---

// CreateTeamRequest defines data for creating a new team.
type CreateTeamRequest struct {
	Name      string   `json:"name" binding:"required"`
	LeaderID  string   `json:"leaderID" binding:"required"`
	MemberIDs []string `json:"memberIDs" binding:"required,min=1"`
}

// MemberRequest carries the target user for add/remove member operations.
type MemberRequest struct {
	MemberID string `json:"memberID" binding:"required"`
}

// TeamMemberResponse defines data returned about one team member.
type TeamMemberResponse struct {
	UserID   string    `json:"userID"`
	UserName string    `json:"userName"`
	JoinedAt time.Time `json:"joinedAt"`
}

// TeamResponse defines data returned for a team.
type TeamResponse struct {
	TeamID     string               `json:"teamID"`
	Name       string               `json:"name"`
	LeaderID   string               `json:"leaderID"`
	LeaderName string               `json:"leaderName"`
	Members    []TeamMemberResponse `json:"members"`
	CreatedAt  time.Time            `json:"createdAt"`
	CreatedBy  string               `json:"createdBy"`
}

// ToTeamResponse converts domain.TeamWithMembers to DTO.
func ToTeamResponse(t *domain.TeamWithMembers) TeamResponse {
	members := make([]TeamMemberResponse, len(t.Members))
	for i, m := range t.Members {
		members[i] = TeamMemberResponse{
			UserID:   m.UserID,
			UserName: m.UserName,
			JoinedAt: m.JoinedAt,
		}
	}
	return TeamResponse{
		TeamID:     t.TeamID,
		Name:       t.Name,
		LeaderID:   t.LeaderID,
		LeaderName: t.LeaderName,
		Members:    members,
		CreatedAt:  t.CreatedAt,
		CreatedBy:  t.CreatedBy,
	}
}

// ListTeamsResponse wraps a list of teams.
type ListTeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// ToListTeamsResponse converts a slice of domain.TeamWithMembers to DTO.
func ToListTeamsResponse(ts []domain.TeamWithMembers) ListTeamsResponse {
	list := make([]TeamResponse, len(ts))
	for i := range ts {
		list[i] = ToTeamResponse(&ts[i])
	}
	return ListTeamsResponse{Teams: list}
}
