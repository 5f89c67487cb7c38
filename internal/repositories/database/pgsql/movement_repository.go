package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portsrepo "github.com/movetrack/movement_tracking_app/internal/core/ports/repositories"
)

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for movement records.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxMovementRepository implements portsrepo.MovementRepositoryFacade
var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

var FULL_MOVEMENT_SELECT_QUERY = `
SELECT
	movement_id, user_id, punch_direction, visiting_status, place, party,
	purpose, remark, recorded_at, created_at, created_by, last_updated_at, last_updated_by
FROM movement_records
`

func (r *PgxMovementRepository) getMovements(ctx context.Context, filterQuery string, args ...any) ([]domain.MovementRecord, error) {
	query := FULL_MOVEMENT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movement records", err)
	}
	defer rows.Close()

	movements, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.MovementRecord])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect movement rows", err)
	}
	return movements, nil
}

func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.MovementRecord, error) {
	movements, err := r.getMovements(ctx, `WHERE movement_id = $1`, movementID)
	if err != nil {
		return nil, err
	}
	if len(movements) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &movements[0], nil
}

// FindMovementsByUserID returns a user's punches within [from, to), newest
// first, paginated.
func (r *PgxMovementRepository) FindMovementsByUserID(ctx context.Context, userID string, from, to time.Time, limit, offset int) ([]domain.MovementRecord, error) {
	filter := `
		WHERE user_id = $1 AND recorded_at >= $2 AND recorded_at < $3
		ORDER BY recorded_at DESC
		LIMIT $4 OFFSET $5
	`
	return r.getMovements(ctx, filter, userID, from, to, limit, offset)
}

func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.MovementRecord) error {
	query := `
		INSERT INTO movement_records (
			movement_id, user_id, punch_direction, visiting_status, place, party,
			purpose, remark, recorded_at, created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		movement.MovementID,
		movement.UserID,
		movement.PunchDirection,
		movement.VisitingStatus,
		movement.Place,
		movement.Party,
		movement.Purpose,
		movement.Remark,
		movement.RecordedAt,
		movement.CreatedAt,
		movement.CreatedBy,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return apperrors.NewConflictError("movement record with id " + movement.MovementID + " already exists")
			case "23503": // foreign_key_violation
				return apperrors.NewNotFoundError("user " + movement.UserID + " does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save movement "+movement.MovementID, err)
	}
	return nil
}

func (r *PgxMovementRepository) UpdateMovement(ctx context.Context, movement domain.MovementRecord) error {
	query := `
		UPDATE movement_records SET
			punch_direction = $2, visiting_status = $3, place = $4, party = $5,
			purpose = $6, remark = $7, recorded_at = $8, last_updated_at = $9, last_updated_by = $10
		WHERE movement_id = $1;
	`
	result, err := r.Pool.Exec(ctx, query,
		movement.MovementID,
		movement.PunchDirection,
		movement.VisitingStatus,
		movement.Place,
		movement.Party,
		movement.Purpose,
		movement.Remark,
		movement.RecordedAt,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update movement "+movement.MovementID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
