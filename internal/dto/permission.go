package dto

import (
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// SetPermissionsRequest replaces a user's full permission map in one save.
// Unknown path keys are accepted and stored; only catalog paths ever render.
type SetPermissionsRequest struct {
	Permissions map[string]bool `json:"permissions" binding:"required"`
}

// PermissionsResponse returns the full recognized catalog with flags;
// paths never explicitly granted resolve to false.
type PermissionsResponse struct {
	Data map[string]bool `json:"data"`
}

// MenuResponse returns the resolved navigation entries for a user.
type MenuResponse struct {
	Menu []domain.MenuEntry `json:"menu"`
}
