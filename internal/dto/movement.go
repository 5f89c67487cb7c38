package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// CreateMovementRequest defines the punch payload a user submits.
type CreateMovementRequest struct {
	PunchDirection domain.PunchDirection `json:"punchDirection" binding:"required,punchdirection"`
	VisitingStatus string                `json:"visitingStatus"`
	Place          string                `json:"place"`
	Party          string                `json:"party"`
	Purpose        string                `json:"purpose"`
	Remark         string                `json:"remark"`
}

// UpdateMovementRequest defines the admin log-edit payload.
// Pointers distinguish omitted fields from zero values.
type UpdateMovementRequest struct {
	PunchDirection *domain.PunchDirection `json:"punchDirection" binding:"omitempty,punchdirection"`
	VisitingStatus *string                `json:"visitingStatus"`
	Place          *string                `json:"place"`
	Party          *string                `json:"party"`
	Purpose        *string                `json:"purpose"`
	Remark         *string                `json:"remark"`
	RecordedAt     *time.Time             `json:"recordedAt"`
}

// ListMovementsParams defines query parameters for listing movement records.
type ListMovementsParams struct {
	From   time.Time `form:"from" time_format:"2006-01-02"`
	To     time.Time `form:"to" time_format:"2006-01-02"`
	Limit  int       `form:"limit,default=50"`
	Offset int       `form:"offset,default=0"`
}

// MovementResponse defines data returned for one movement record.
type MovementResponse struct {
	MovementID     string                `json:"movementID"`
	UserID         string                `json:"userID"`
	PunchDirection domain.PunchDirection `json:"punchDirection"`
	VisitingStatus string                `json:"visitingStatus,omitempty"`
	Place          string                `json:"place,omitempty"`
	Party          string                `json:"party,omitempty"`
	Purpose        string                `json:"purpose,omitempty"`
	Remark         string                `json:"remark,omitempty"`
	RecordedAt     time.Time             `json:"recordedAt"`
}

// ToMovementResponse converts domain.MovementRecord to DTO.
func ToMovementResponse(r *domain.MovementRecord) MovementResponse {
	return MovementResponse{
		MovementID:     r.MovementID,
		UserID:         r.UserID,
		PunchDirection: r.PunchDirection,
		VisitingStatus: r.VisitingStatus,
		Place:          r.Place,
		Party:          r.Party,
		Purpose:        r.Purpose,
		Remark:         r.Remark,
		RecordedAt:     r.RecordedAt,
	}
}

// ListMovementsResponse wraps a page of movement records, newest first.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
}

// ToListMovementsResponse converts a slice of domain.MovementRecord to DTO.
func ToListMovementsResponse(rs []domain.MovementRecord) ListMovementsResponse {
	list := make([]MovementResponse, len(rs))
	for i := range rs {
		list[i] = ToMovementResponse(&rs[i])
	}
	return ListMovementsResponse{Movements: list}
}

// DailyAttendance is one day of paired punches for a user.
type DailyAttendance struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	FirstIn     *time.Time      `json:"firstIn,omitempty"`
	LastOut     *time.Time      `json:"lastOut,omitempty"`
	WorkedHours decimal.Decimal `json:"workedHours"`
	Punches     int             `json:"punches"`
}

// AttendanceReportResponse is the per-user worked-hours summary.
type AttendanceReportResponse struct {
	UserID     string            `json:"userID"`
	From       string            `json:"from"`
	To         string            `json:"to"`
	Days       []DailyAttendance `json:"days"`
	TotalHours decimal.Decimal   `json:"totalHours"`
}
