package services

import (
	"context"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// PermissionSvcFacade owns per-user navigation permission maps.
type PermissionSvcFacade interface {
	// GetPermissions returns the full recognized path catalog with flags;
	// paths never explicitly set resolve to false.
	GetPermissions(ctx context.Context, userID string) (domain.PermissionMap, error)

	// SetPermissions atomically replaces the stored map for a user.
	SetPermissions(ctx context.Context, userID string, permissions domain.PermissionMap) error

	// ResolveMenuForUser computes the ordered navigation entries for a user.
	ResolveMenuForUser(ctx context.Context, userID string) ([]domain.MenuEntry, error)
}
