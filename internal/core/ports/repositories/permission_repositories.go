package repositories

import (
	"context"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// PermissionReader defines read operations for permission maps
type PermissionReader interface {
	// FindPermissions retrieves the stored permission rows for a user.
	// Paths with no row are simply absent from the returned map.
	FindPermissions(ctx context.Context, userID string) (domain.PermissionMap, error)
}

// PermissionWriter defines write operations for permission maps
type PermissionWriter interface {
	// ReplacePermissions atomically replaces the stored map for a user.
	// A partial failure must not leave a half-updated map.
	ReplacePermissions(ctx context.Context, userID string, permissions domain.PermissionMap) error
}

// PermissionRepositoryFacade combines all permission-related repository interfaces
type PermissionRepositoryFacade interface {
	PermissionReader
	PermissionWriter
}
