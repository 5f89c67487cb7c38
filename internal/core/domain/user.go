package domain

import "time"

// Role classifies what a user is within the organisation. Navigation access
// is gated by the per-user permission map, not by the role; the role only
// drives labeling and a handful of server-side admin checks.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleTeamLeader Role = "TEAM_LEADER"
	RoleUser       Role = "USER"
	RoleManager    Role = "MANAGER"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeamLeader, RoleUser, RoleManager:
		return true
	}
	return false
}

// AuthProvider identifies how a user authenticates.
const (
	ProviderLocal  = "LOCAL"
	ProviderGoogle = "GOOGLE"
)

// User represents an employee account in the domain.
type User struct {
	UserID       string  `json:"userID" db:"user_id"` // Primary Key (UUID)
	Username     string  `json:"username" db:"username"`
	PasswordHash *string `json:"-" db:"password_hash"` // nil for OAuth-only accounts
	Name         string  `json:"name" db:"name"`
	Role         Role    `json:"role" db:"role"`
	EmployeeID   string  `json:"employeeID" db:"employee_id"`
	Department   string  `json:"department" db:"department"`
	Designation  string  `json:"designation" db:"designation"`
	Company      string  `json:"company" db:"company"`
	Phone        string  `json:"phone" db:"phone"`
	Email        string  `json:"email" db:"email"`
	AuthProvider string  `json:"-" db:"auth_provider"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Soft delete; movement rows keep the user id

	RefreshTokenHash       string     `json:"-" db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `json:"-" db:"refresh_token_expiry_time"`
}

// GetUserID implements the dto user accessor set.
func (u *User) GetUserID() string { return u.UserID }

// GetUsername implements the dto user accessor set.
func (u *User) GetUsername() string { return u.Username }

// GetName implements the dto user accessor set.
func (u *User) GetName() string { return u.Name }

// GoogleUserInfo is the subset of the Google userinfo response we consume.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
