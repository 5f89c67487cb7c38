package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/internal/core/services"
)

type PermissionServiceTestSuite struct {
	suite.Suite
	mockPermRepo *MockPermissionRepository
	mockUserRepo *MockUserRepository
	service      portssvc.PermissionSvcFacade
	ctx          context.Context
}

func (suite *PermissionServiceTestSuite) SetupTest() {
	suite.mockPermRepo = new(MockPermissionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	// A nil cache is a valid no-op cache, so every read hits the repository.
	suite.service = services.NewPermissionService(suite.mockPermRepo, suite.mockUserRepo, nil)
	suite.ctx = context.Background()
}

func (suite *PermissionServiceTestSuite) TestGetPermissions_FillsCatalogDefaults() {
	stored := domain.PermissionMap{"/admin/Dashboard": true, "/admin/Teams": true}
	suite.mockPermRepo.On("FindPermissions", suite.ctx, "user-1").Return(stored, nil)

	perms, err := suite.service.GetPermissions(suite.ctx, "user-1")

	suite.Require().NoError(err)
	suite.Len(perms, len(domain.PathCatalog))
	suite.True(perms["/admin/Dashboard"])
	suite.True(perms["/admin/Teams"])
	suite.False(perms["/admin/Users"])
	suite.False(perms["/admin/Reports"])
	suite.mockPermRepo.AssertExpectations(suite.T())
}

func (suite *PermissionServiceTestSuite) TestGetPermissions_NoStoredRows() {
	suite.mockPermRepo.On("FindPermissions", suite.ctx, "user-2").Return(domain.PermissionMap{}, nil)

	perms, err := suite.service.GetPermissions(suite.ctx, "user-2")

	suite.Require().NoError(err)
	suite.Len(perms, len(domain.PathCatalog))
	for path, allowed := range perms {
		suite.False(allowed, "path %s should default to false", path)
	}
}

func (suite *PermissionServiceTestSuite) TestSetPermissions_Success() {
	perms := domain.PermissionMap{"/admin/Dashboard": true, "/admin/Users": false}
	suite.mockPermRepo.On("ReplacePermissions", suite.ctx, "user-1", perms).Return(nil)

	err := suite.service.SetPermissions(suite.ctx, "user-1", perms)

	suite.Require().NoError(err)
	suite.mockPermRepo.AssertExpectations(suite.T())
}

func (suite *PermissionServiceTestSuite) TestSetPermissions_NilMapRejected() {
	err := suite.service.SetPermissions(suite.ctx, "user-1", nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPermRepo.AssertNotCalled(suite.T(), "ReplacePermissions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PermissionServiceTestSuite) TestSetPermissions_UserNotFound() {
	perms := domain.PermissionMap{"/admin/Dashboard": true}
	suite.mockPermRepo.On("ReplacePermissions", suite.ctx, "ghost", perms).Return(apperrors.NewNotFoundError("user not found"))

	err := suite.service.SetPermissions(suite.ctx, "ghost", perms)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PermissionServiceTestSuite) TestResolveMenuForUser_OrderedSubsetOfCatalog() {
	user := &domain.User{UserID: "user-1", Role: domain.RoleAdmin}
	stored := domain.PermissionMap{"/admin/Teams": true, "/admin/Dashboard": true, "/admin/Branches": false}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(user, nil)
	suite.mockPermRepo.On("FindPermissions", suite.ctx, "user-1").Return(stored, nil)

	menu, err := suite.service.ResolveMenuForUser(suite.ctx, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(menu, 2)
	suite.Equal("/admin/Dashboard", menu[0].Path)
	suite.Equal("/admin/Teams", menu[1].Path)
	suite.Equal("Administration", menu[0].Section)
}

func (suite *PermissionServiceTestSuite) TestResolveMenuForUser_NoPermissionsMeansEmptyMenu() {
	user := &domain.User{UserID: "user-3", Role: domain.RoleUser}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-3").Return(user, nil)
	suite.mockPermRepo.On("FindPermissions", suite.ctx, "user-3").Return(domain.PermissionMap{}, nil)

	menu, err := suite.service.ResolveMenuForUser(suite.ctx, "user-3")

	suite.Require().NoError(err)
	suite.Empty(menu)
}

func TestPermissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PermissionServiceTestSuite))
}
