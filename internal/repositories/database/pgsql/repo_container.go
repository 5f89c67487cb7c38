package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/movetrack/movement_tracking_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	teamRepo := newPgxTeamRepository(dbPool)
	messageRepo := newPgxMessageRepository(dbPool)
	permissionRepo := newPgxPermissionRepository(dbPool)
	movementRepo := newPgxMovementRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:       userRepo,
		TeamRepo:       teamRepo,
		MessageRepo:    messageRepo,
		PermissionRepo: permissionRepo,
		MovementRepo:   movementRepo,
	}
}
