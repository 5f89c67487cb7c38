package services

import (
	portsrepo "github.com/movetrack/movement_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/internal/platform/config"
	"github.com/movetrack/movement_tracking_app/pkg/cache"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, c *cache.Cache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Team = NewTeamService(repos.TeamRepo, repos.UserRepo)
	container.Permission = NewPermissionService(repos.PermissionRepo, repos.UserRepo, c)
	container.Movement = NewMovementService(repos.MovementRepo)
	container.Chat = NewMessageService(repos.MessageRepo, repos.TeamRepo, repos.UserRepo)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
