package dto

import (
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// CreateUserRequest defines the data an admin submits to create a user.
type CreateUserRequest struct {
	Username    string      `json:"username" binding:"required,min=3"`
	Password    string      `json:"password" binding:"required,min=8"`
	Name        string      `json:"name" binding:"required"`
	Role        domain.Role `json:"role" binding:"required,approle"`
	EmployeeID  string      `json:"employeeID"`
	Department  string      `json:"department"`
	Designation string      `json:"designation"`
	Company     string      `json:"company"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email" binding:"omitempty,email"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name        *string      `json:"name"`
	Role        *domain.Role `json:"role" binding:"omitempty,approle"`
	EmployeeID  *string      `json:"employeeID"`
	Department  *string      `json:"department"`
	Designation *string      `json:"designation"`
	Company     *string      `json:"company"`
	Phone       *string      `json:"phone"`
	Email       *string      `json:"email" binding:"omitempty,email"`
}

// ChangePasswordRequest defines the self-service password change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID      string      `json:"userID"`
	Username    string      `json:"username"`
	Name        string      `json:"name"`
	Role        domain.Role `json:"role"`
	EmployeeID  string      `json:"employeeID,omitempty"`
	Department  string      `json:"department,omitempty"`
	Designation string      `json:"designation,omitempty"`
	Company     string      `json:"company,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Email       string      `json:"email,omitempty"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Username:    user.Username,
		Name:        user.Name,
		Role:        user.Role,
		EmployeeID:  user.EmployeeID,
		Department:  user.Department,
		Designation: user.Designation,
		Company:     user.Company,
		Phone:       user.Phone,
		Email:       user.Email,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}

// LoginRequest defines the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
