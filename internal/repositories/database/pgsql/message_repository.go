package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portsrepo "github.com/movetrack/movement_tracking_app/internal/core/ports/repositories"
)

type PgxMessageRepository struct {
	BaseRepository
}

// newPgxMessageRepository creates a new repository for team chat messages.
func newPgxMessageRepository(pool *pgxpool.Pool) portsrepo.MessageRepositoryFacade {
	return &PgxMessageRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMessageRepository implements portsrepo.MessageRepositoryFacade
var _ portsrepo.MessageRepositoryFacade = (*PgxMessageRepository)(nil)

// FindRecentMessages returns the last `limit` messages of a team in
// chronological order. The inner query selects newest-first so the limit
// trims old history, then the outer query flips the order back.
func (r *PgxMessageRepository) FindRecentMessages(ctx context.Context, teamID string, limit int) ([]domain.Message, error) {
	query := `
		SELECT message_id, team_id, sender_id, sender_name, body, created_at FROM (
			SELECT message_id, team_id, sender_id, sender_name, body, created_at
			FROM messages
			WHERE team_id = $1
			ORDER BY message_id DESC
			LIMIT $2
		) recent
		ORDER BY message_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, teamID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query messages for team "+teamID, err)
	}
	defer rows.Close()

	messages, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.Message])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect message rows", err)
	}
	return messages, nil
}

// SaveMessage persists a message and fills in the store-assigned id and
// timestamp on the passed value.
func (r *PgxMessageRepository) SaveMessage(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (team_id, sender_id, sender_name, body)
		VALUES ($1, $2, $3, $4)
		RETURNING message_id, created_at;
	`
	err := r.Pool.QueryRow(ctx, query, message.TeamID, message.SenderID, message.SenderName, message.Body).
		Scan(&message.MessageID, &message.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewNotFoundError("team " + message.TeamID + " does not exist")
		}
		return apperrors.NewAppError(500, "failed to save message for team "+message.TeamID, err)
	}
	return nil
}
