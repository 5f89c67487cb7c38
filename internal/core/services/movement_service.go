package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portsrepo "github.com/movetrack/movement_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/internal/dto"
)

// attendanceFetchLimit bounds how many punches one summary will consider.
const attendanceFetchLimit = 10000

// movementService handles punch records and attendance reporting.
type movementService struct {
	BaseService
	movementRepo portsrepo.MovementRepositoryFacade
}

// NewMovementService creates a new movement service.
func NewMovementService(movementRepo portsrepo.MovementRepositoryFacade) portssvc.MovementSvcFacade {
	return &movementService{movementRepo: movementRepo}
}

// Ensure movementService implements the portssvc.MovementSvcFacade interface
var _ portssvc.MovementSvcFacade = (*movementService)(nil)

func (s *movementService) GetMovement(ctx context.Context, movementID string) (*domain.MovementRecord, error) {
	record, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get movement record: %w", err)
	}
	return record, nil
}

func (s *movementService) ListMovements(ctx context.Context, userID string, params dto.ListMovementsParams) ([]domain.MovementRecord, error) {
	from, to := normalizeWindow(params.From, params.To)
	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	records, err := s.movementRepo.FindMovementsByUserID(ctx, userID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list movement records: %w", err)
	}
	return records, nil
}

// RecordMovement persists a new punch at the current time for the acting user.
func (s *movementService) RecordMovement(ctx context.Context, userID string, req dto.CreateMovementRequest) (*domain.MovementRecord, error) {
	if !req.PunchDirection.Valid() {
		return nil, fmt.Errorf("%w: unknown punch direction %q", apperrors.ErrValidation, req.PunchDirection)
	}

	now := time.Now()
	record := domain.MovementRecord{
		MovementID:     uuid.NewString(),
		UserID:         userID,
		PunchDirection: req.PunchDirection,
		VisitingStatus: req.VisitingStatus,
		Place:          req.Place,
		Party:          req.Party,
		Purpose:        req.Purpose,
		Remark:         req.Remark,
		RecordedAt:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.movementRepo.SaveMovement(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save movement record", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to record movement: %w", err)
	}
	s.LogInfo(ctx, "Movement recorded",
		slog.String("movement_id", record.MovementID),
		slog.String("user_id", userID),
		slog.String("direction", string(record.PunchDirection)))
	return &record, nil
}

// UpdateMovement applies an admin log edit to an existing record.
func (s *movementService) UpdateMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest, requestingUserID string) (*domain.MovementRecord, error) {
	record, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to find movement for update: %w", err)
	}

	if req.PunchDirection != nil {
		if !req.PunchDirection.Valid() {
			return nil, fmt.Errorf("%w: unknown punch direction %q", apperrors.ErrValidation, *req.PunchDirection)
		}
		record.PunchDirection = *req.PunchDirection
	}
	if req.VisitingStatus != nil {
		record.VisitingStatus = *req.VisitingStatus
	}
	if req.Place != nil {
		record.Place = *req.Place
	}
	if req.Party != nil {
		record.Party = *req.Party
	}
	if req.Purpose != nil {
		record.Purpose = *req.Purpose
	}
	if req.Remark != nil {
		record.Remark = *req.Remark
	}
	if req.RecordedAt != nil {
		record.RecordedAt = *req.RecordedAt
	}
	record.LastUpdatedAt = time.Now()
	record.LastUpdatedBy = requestingUserID

	if err := s.movementRepo.UpdateMovement(ctx, *record); err != nil {
		return nil, fmt.Errorf("failed to update movement: %w", err)
	}
	s.LogInfo(ctx, "Movement record edited", slog.String("movement_id", movementID), slog.String("edited_by", requestingUserID))
	return record, nil
}

// AttendanceSummary pairs IN/OUT punches day by day and totals worked hours.
// An IN with no following OUT on the same day contributes no time. Hours are
// reported as decimals rounded to two places.
func (s *movementService) AttendanceSummary(ctx context.Context, userID string, from, to time.Time) (*dto.AttendanceReportResponse, error) {
	from, to = normalizeWindow(from, to)

	records, err := s.movementRepo.FindMovementsByUserID(ctx, userID, from, to, attendanceFetchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load punches for summary: %w", err)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordedAt.Before(records[j].RecordedAt)
	})

	byDay := make(map[string][]domain.MovementRecord)
	var dayOrder []string
	for _, rec := range records {
		day := rec.RecordedAt.Format("2006-01-02")
		if _, seen := byDay[day]; !seen {
			dayOrder = append(dayOrder, day)
		}
		byDay[day] = append(byDay[day], rec)
	}

	report := &dto.AttendanceReportResponse{
		UserID:     userID,
		From:       from.Format("2006-01-02"),
		To:         to.Format("2006-01-02"),
		Days:       make([]dto.DailyAttendance, 0, len(dayOrder)),
		TotalHours: decimal.Zero,
	}

	for _, day := range dayOrder {
		punches := byDay[day]
		summary := dto.DailyAttendance{
			Date:        day,
			WorkedHours: decimal.Zero,
			Punches:     len(punches),
		}

		var openIn *time.Time
		for i := range punches {
			p := punches[i]
			switch p.PunchDirection {
			case domain.PunchIn:
				t := p.RecordedAt
				if summary.FirstIn == nil {
					summary.FirstIn = &t
				}
				// A second IN before an OUT restarts the open interval.
				openIn = &t
			case domain.PunchOut:
				t := p.RecordedAt
				summary.LastOut = &t
				if openIn != nil {
					worked := decimal.NewFromFloat(t.Sub(*openIn).Hours())
					summary.WorkedHours = summary.WorkedHours.Add(worked)
					openIn = nil
				}
			}
		}

		summary.WorkedHours = summary.WorkedHours.Round(2)
		report.TotalHours = report.TotalHours.Add(summary.WorkedHours)
		report.Days = append(report.Days, summary)
	}

	report.TotalHours = report.TotalHours.Round(2)
	return report, nil
}

// normalizeWindow fills in open window bounds: a zero from means the epoch,
// a zero to means now plus a day so today's punches are included.
func normalizeWindow(from, to time.Time) (time.Time, time.Time) {
	if to.IsZero() {
		to = time.Now().Add(24 * time.Hour)
	}
	return from, to
}
