package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// --- Mock UserRepositoryFacade ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock TeamRepositoryFacade ---

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.TeamWithMembers, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamWithMembers), args.Error(1)
}

func (m *MockTeamRepository) FindTeams(ctx context.Context) ([]domain.TeamWithMembers, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamWithMembers), args.Error(1)
}

func (m *MockTeamRepository) ListTeamsByUserID(ctx context.Context, userID string) ([]domain.TeamWithMembers, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamWithMembers), args.Error(1)
}

func (m *MockTeamRepository) IsLeaderOrMember(ctx context.Context, teamID, userID string) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamRepository) SaveTeam(ctx context.Context, team domain.Team, memberIDs []string) error {
	args := m.Called(ctx, team, memberIDs)
	return args.Error(0)
}

func (m *MockTeamRepository) AddMember(ctx context.Context, member domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *MockTeamRepository) DeleteTeam(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

// --- Mock MessageRepositoryFacade ---

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) FindRecentMessages(ctx context.Context, teamID string, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, teamID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockMessageRepository) SaveMessage(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// --- Mock PermissionRepositoryFacade ---

type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) FindPermissions(ctx context.Context, userID string) (domain.PermissionMap, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.PermissionMap), args.Error(1)
}

func (m *MockPermissionRepository) ReplacePermissions(ctx context.Context, userID string, permissions domain.PermissionMap) error {
	args := m.Called(ctx, userID, permissions)
	return args.Error(0)
}

// --- Mock MovementRepositoryFacade ---

type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.MovementRecord, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementRecord), args.Error(1)
}

func (m *MockMovementRepository) FindMovementsByUserID(ctx context.Context, userID string, from, to time.Time, limit, offset int) ([]domain.MovementRecord, error) {
	args := m.Called(ctx, userID, from, to, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementRecord), args.Error(1)
}

func (m *MockMovementRepository) SaveMovement(ctx context.Context, record domain.MovementRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockMovementRepository) UpdateMovement(ctx context.Context, record domain.MovementRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
