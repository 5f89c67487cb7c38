package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portsrepo "github.com/movetrack/movement_tracking_app/internal/core/ports/repositories"
)

type PgxTeamRepository struct {
	BaseRepository
}

// newPgxTeamRepository creates a new repository for team data.
func newPgxTeamRepository(pool *pgxpool.Pool) portsrepo.TeamRepositoryFacade {
	return &PgxTeamRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTeamRepository implements portsrepo.TeamRepositoryFacade
var _ portsrepo.TeamRepositoryFacade = (*PgxTeamRepository)(nil)

var FULL_TEAM_SELECT_QUERY = `
SELECT
	t.team_id, t.name, t.leader_id, l.name AS leader_name,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM teams t
JOIN users l ON t.leader_id = l.user_id
`

// getTeams fetches teams for the filter and resolves each member set.
func (r *PgxTeamRepository) getTeams(ctx context.Context, filterQuery string, args ...any) ([]domain.TeamWithMembers, error) {
	query := FULL_TEAM_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query teams", err)
	}
	defer rows.Close()

	var teams []domain.TeamWithMembers
	for rows.Next() {
		var t domain.TeamWithMembers
		err := rows.Scan(
			&t.TeamID,
			&t.Name,
			&t.LeaderID,
			&t.LeaderName,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan team row", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating team rows", err)
	}

	for i := range teams {
		members, err := r.listMembers(ctx, teams[i].TeamID)
		if err != nil {
			return nil, err
		}
		teams[i].Members = members
	}
	return teams, nil
}

func (r *PgxTeamRepository) listMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	query := `
		SELECT tm.team_id, tm.user_id, u.name AS user_name, tm.joined_at
		FROM team_members tm
		JOIN users u ON tm.user_id = u.user_id
		WHERE tm.team_id = $1
		ORDER BY tm.joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members for team "+teamID, err)
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.UserName, &m.JoinedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan team member row", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating team member rows", err)
	}
	return members, nil
}

func (r *PgxTeamRepository) SaveTeam(ctx context.Context, team domain.Team, memberIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	teamQuery := `
		INSERT INTO teams (team_id, name, leader_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, teamQuery,
		team.TeamID,
		team.Name,
		team.LeaderID,
		team.CreatedAt,
		team.CreatedBy,
		team.LastUpdatedAt,
		team.LastUpdatedBy,
	)
	if err != nil {
		return mapTeamWriteError(err, "failed to save team "+team.TeamID)
	}

	memberQuery := `INSERT INTO team_members (team_id, user_id, joined_at) VALUES ($1, $2, $3);`
	for _, userID := range memberIDs {
		if _, err := tx.Exec(ctx, memberQuery, team.TeamID, userID, team.CreatedAt); err != nil {
			return mapTeamWriteError(err, "failed to add member "+userID+" to team "+team.TeamID)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.TeamWithMembers, error) {
	teams, err := r.getTeams(ctx, `WHERE t.team_id = $1`, teamID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &teams[0], nil
}

func (r *PgxTeamRepository) FindTeams(ctx context.Context) ([]domain.TeamWithMembers, error) {
	return r.getTeams(ctx, `ORDER BY t.name`)
}

func (r *PgxTeamRepository) ListTeamsByUserID(ctx context.Context, userID string) ([]domain.TeamWithMembers, error) {
	filter := `
		WHERE t.leader_id = $1
		   OR t.team_id IN (SELECT team_id FROM team_members WHERE user_id = $1)
		ORDER BY t.name
	`
	return r.getTeams(ctx, filter, userID)
}

func (r *PgxTeamRepository) IsLeaderOrMember(ctx context.Context, teamID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM teams WHERE team_id = $1 AND leader_id = $2
			UNION ALL
			SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2
		);
	`
	var belongs bool
	if err := r.Pool.QueryRow(ctx, query, teamID, userID).Scan(&belongs); err != nil {
		return false, apperrors.NewAppError(500, "failed to check membership for team "+teamID, err)
	}
	return belongs, nil
}

func (r *PgxTeamRepository) AddMember(ctx context.Context, member domain.TeamMember) error {
	query := `INSERT INTO team_members (team_id, user_id, joined_at) VALUES ($1, $2, $3);`
	_, err := r.Pool.Exec(ctx, query, member.TeamID, member.UserID, member.JoinedAt)
	if err != nil {
		return mapTeamWriteError(err, "failed to add member "+member.UserID+" to team "+member.TeamID)
	}
	return nil
}

func (r *PgxTeamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	query := `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2;`
	result, err := r.Pool.Exec(ctx, query, teamID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove member "+userID+" from team "+teamID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user " + userID + " is not a member of team " + teamID)
	}
	return nil
}

func (r *PgxTeamRepository) DeleteTeam(ctx context.Context, teamID string) error {
	// Membership rows and messages go with the team via ON DELETE CASCADE.
	query := `DELETE FROM teams WHERE team_id = $1;`
	result, err := r.Pool.Exec(ctx, query, teamID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete team "+teamID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// mapTeamWriteError converts postgres constraint violations into app errors.
// The unique index on team_members.user_id enforces the single-team
// invariant at the store level, so concurrent AddMember calls cannot race
// past the service check.
func mapTeamWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperrors.NewConflictError("user is already a member of a team")
		case "23503": // foreign_key_violation
			return apperrors.NewNotFoundError("referenced team or user does not exist")
		}
	}
	return apperrors.NewAppError(500, msg, err)
}
