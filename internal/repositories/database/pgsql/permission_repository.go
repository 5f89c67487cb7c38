package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portsrepo "github.com/movetrack/movement_tracking_app/internal/core/ports/repositories"
)

type PgxPermissionRepository struct {
	BaseRepository
}

// newPgxPermissionRepository creates a new repository for per-user path permissions.
func newPgxPermissionRepository(pool *pgxpool.Pool) portsrepo.PermissionRepositoryFacade {
	return &PgxPermissionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPermissionRepository implements portsrepo.PermissionRepositoryFacade
var _ portsrepo.PermissionRepositoryFacade = (*PgxPermissionRepository)(nil)

// FindPermissions returns the stored path grants for a user. A user with no
// stored rows gets an empty map; callers treat absent paths as denied.
func (r *PgxPermissionRepository) FindPermissions(ctx context.Context, userID string) (domain.PermissionMap, error) {
	query := `SELECT path, allowed FROM user_permissions WHERE user_id = $1;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query permissions for user "+userID, err)
	}
	defer rows.Close()

	perms := domain.PermissionMap{}
	for rows.Next() {
		var path string
		var allowed bool
		if err := rows.Scan(&path, &allowed); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan permission row", err)
		}
		perms[path] = allowed
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating permission rows", err)
	}
	return perms, nil
}

// ReplacePermissions atomically swaps the whole permission map of a user.
func (r *PgxPermissionRepository) ReplacePermissions(ctx context.Context, userID string, perms domain.PermissionMap) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var exists bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1 AND deleted_at IS NULL);`
	if err := tx.QueryRow(ctx, checkQuery, userID).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check user "+userID, err)
	}
	if !exists {
		return apperrors.NewNotFoundError("user " + userID + " not found")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_permissions WHERE user_id = $1;`, userID); err != nil {
		return apperrors.NewAppError(500, "failed to clear permissions for user "+userID, err)
	}

	insertQuery := `
		INSERT INTO user_permissions (user_id, path, allowed)
		VALUES ($1, $2, $3);
	`
	for path, allowed := range perms {
		if _, err := tx.Exec(ctx, insertQuery, userID, path, allowed); err != nil {
			return apperrors.NewAppError(500, "failed to store permission "+path+" for user "+userID, err)
		}
	}

	return r.Commit(ctx, tx)
}
