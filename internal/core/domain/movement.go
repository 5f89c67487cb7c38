package domain

import "time"

// PunchDirection is the direction of a movement punch.
type PunchDirection string

const (
	PunchIn  PunchDirection = "IN"
	PunchOut PunchDirection = "OUT"
)

// Valid reports whether d is a recognized punch direction.
func (d PunchDirection) Valid() bool {
	return d == PunchIn || d == PunchOut
}

// MovementRecord is a single punch-in/out entry with the place, party and
// purpose the employee reported for it.
type MovementRecord struct {
	MovementID     string         `json:"movementID" db:"movement_id"` // Primary Key (UUID)
	UserID         string         `json:"userID" db:"user_id"`
	PunchDirection PunchDirection `json:"punchDirection" db:"punch_direction"`
	VisitingStatus string         `json:"visitingStatus" db:"visiting_status"`
	Place          string         `json:"place" db:"place"`
	Party          string         `json:"party" db:"party"`
	Purpose        string         `json:"purpose" db:"purpose"`
	Remark         string         `json:"remark" db:"remark"`
	RecordedAt     time.Time      `json:"recordedAt" db:"recorded_at"`
	AuditFields
}
