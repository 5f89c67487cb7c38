package domain

import "time"

// Team groups a set of member users under exactly one leader.
type Team struct {
	TeamID     string `json:"teamID"`   // Primary Key (UUID)
	Name       string `json:"name"`     // Admin-assigned team name
	LeaderID   string `json:"leaderID"` // FK -> users.user_id, role TEAM_LEADER
	LeaderName string `json:"leaderName"`
	AuditFields
}

// TeamMember represents the membership of a User in a Team.
// A user belongs to at most one team; the store enforces this globally.
type TeamMember struct {
	TeamID   string    `json:"teamID"`
	UserID   string    `json:"userID"`
	UserName string    `json:"userName"`
	JoinedAt time.Time `json:"joinedAt"`
}

// TeamWithMembers is a team record with its membership resolved.
type TeamWithMembers struct {
	Team
	Members []TeamMember `json:"members"`
}

// Contains reports whether userID is the leader or a member of the team.
func (t *TeamWithMembers) Contains(userID string) bool {
	if t.LeaderID == userID {
		return true
	}
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
