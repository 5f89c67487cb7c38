package repositories

import (
	"context"
	"time"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// MovementReader defines read operations for movement records
type MovementReader interface {
	// FindMovementByID retrieves a specific movement record.
	FindMovementByID(ctx context.Context, movementID string) (*domain.MovementRecord, error)

	// FindMovementsByUserID retrieves a user's movement records in the time
	// window, newest first, paginated by limit/offset.
	FindMovementsByUserID(ctx context.Context, userID string, from, to time.Time, limit, offset int) ([]domain.MovementRecord, error)
}

// MovementWriter defines write operations for movement records
type MovementWriter interface {
	// SaveMovement persists a new movement record.
	SaveMovement(ctx context.Context, record domain.MovementRecord) error

	// UpdateMovement updates an existing record (admin log edit).
	UpdateMovement(ctx context.Context, record domain.MovementRecord) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}
