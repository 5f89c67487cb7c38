package services

import (
	"context"
	"time"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	"github.com/movetrack/movement_tracking_app/internal/dto"
)

// MovementReaderSvc defines read operations for movement records
type MovementReaderSvc interface {
	// GetMovement retrieves one movement record.
	GetMovement(ctx context.Context, movementID string) (*domain.MovementRecord, error)

	// ListMovements retrieves a user's movement records in a time window.
	ListMovements(ctx context.Context, userID string, params dto.ListMovementsParams) ([]domain.MovementRecord, error)
}

// MovementWriterSvc defines write operations for movement records
type MovementWriterSvc interface {
	// RecordMovement persists a new punch for the acting user.
	RecordMovement(ctx context.Context, userID string, req dto.CreateMovementRequest) (*domain.MovementRecord, error)

	// UpdateMovement edits an existing record (admin action).
	UpdateMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest, requestingUserID string) (*domain.MovementRecord, error)
}

// MovementReportingSvc computes attendance summaries from punch pairs.
type MovementReportingSvc interface {
	// AttendanceSummary pairs IN/OUT punches per day and totals worked hours.
	AttendanceSummary(ctx context.Context, userID string, from, to time.Time) (*dto.AttendanceReportResponse, error)
}

// MovementSvcFacade combines all movement-related service interfaces
type MovementSvcFacade interface {
	MovementReaderSvc
	MovementWriterSvc
	MovementReportingSvc
}
