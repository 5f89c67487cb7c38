package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portsrepo "github.com/movetrack/movement_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/pkg/cache"
)

const permCacheTTL = 5 * time.Minute

// permissionService owns per-user navigation permission maps. Reads go
// through an optional Redis cache; writes invalidate it.
type permissionService struct {
	BaseService
	permissionRepo portsrepo.PermissionRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	cache          *cache.Cache
}

// NewPermissionService creates a new permission service. cache may be nil.
func NewPermissionService(permissionRepo portsrepo.PermissionRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, c *cache.Cache) portssvc.PermissionSvcFacade {
	return &permissionService{
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
		cache:          c,
	}
}

// Ensure permissionService implements the portssvc.PermissionSvcFacade interface
var _ portssvc.PermissionSvcFacade = (*permissionService)(nil)

func permCacheKey(userID string) string {
	return "perm:" + userID
}

// GetPermissions returns every catalog path with its flag for the user.
// Stored paths outside the catalog are preserved; catalog paths without a
// stored row come back false.
func (s *permissionService) GetPermissions(ctx context.Context, userID string) (domain.PermissionMap, error) {
	stored, err := s.loadPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	full := make(domain.PermissionMap, len(domain.PathCatalog))
	for _, entry := range domain.PathCatalog {
		full[entry.Path] = stored.Allowed(entry.Path)
	}
	for path, allowed := range stored {
		full[path] = allowed
	}
	return full, nil
}

// loadPermissions fetches the raw stored map, via the cache when possible.
func (s *permissionService) loadPermissions(ctx context.Context, userID string) (domain.PermissionMap, error) {
	key := permCacheKey(userID)
	if raw, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		var cached domain.PermissionMap
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
		// Corrupt entry; fall through to the store.
		_ = s.cache.Delete(ctx, key)
	} else if err != nil {
		s.LogDebug(ctx, "Permission cache read failed", slog.String("error", err.Error()), slog.String("user_id", userID))
	}

	stored, err := s.permissionRepo.FindPermissions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}

	if encoded, err := json.Marshal(stored); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), permCacheTTL); err != nil {
			s.LogDebug(ctx, "Permission cache write failed", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
	}
	return stored, nil
}

// SetPermissions atomically replaces the user's map and invalidates the cache.
func (s *permissionService) SetPermissions(ctx context.Context, userID string, permissions domain.PermissionMap) error {
	if permissions == nil {
		return fmt.Errorf("%w: permissions map is required", apperrors.ErrValidation)
	}
	if err := s.permissionRepo.ReplacePermissions(ctx, userID, permissions); err != nil {
		return fmt.Errorf("failed to replace permissions: %w", err)
	}
	if err := s.cache.Delete(ctx, permCacheKey(userID)); err != nil {
		s.LogDebug(ctx, "Permission cache invalidation failed", slog.String("error", err.Error()), slog.String("user_id", userID))
	}
	s.LogInfo(ctx, "Permissions replaced", slog.String("user_id", userID), slog.Int("paths", len(permissions)))
	return nil
}

// ResolveMenuForUser computes the ordered navigation entries for a user.
// A user with no stored permissions gets an empty menu, not an error.
func (s *permissionService) ResolveMenuForUser(ctx context.Context, userID string) ([]domain.MenuEntry, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for menu: %w", err)
	}
	stored, err := s.loadPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.ResolveMenu(user.Role, stored, domain.PathCatalog), nil
}
