package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/internal/dto"
	"github.com/movetrack/movement_tracking_app/internal/handlers"
	"github.com/movetrack/movement_tracking_app/internal/middleware"
)

// --- Mock TeamService ---
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) GetTeam(ctx context.Context, teamID string) (*domain.TeamWithMembers, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamWithMembers), args.Error(1)
}
func (m *MockTeamService) ListTeams(ctx context.Context) ([]domain.TeamWithMembers, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamWithMembers), args.Error(1)
}
func (m *MockTeamService) ListTeamsForUser(ctx context.Context, userID string) ([]domain.TeamWithMembers, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamWithMembers), args.Error(1)
}
func (m *MockTeamService) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockTeamService) CreateTeam(ctx context.Context, req dto.CreateTeamRequest, creatorUserID string) (*domain.TeamWithMembers, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamWithMembers), args.Error(1)
}
func (m *MockTeamService) AddMember(ctx context.Context, teamID, userID string) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}
func (m *MockTeamService) RemoveMember(ctx context.Context, teamID, userID string) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}
func (m *MockTeamService) DeleteTeam(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.TeamSvcFacade = (*MockTeamService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}
func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}
func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	args := m.Called(ctx, userID, requestingUserID)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite ---
type TeamHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockTeamService *MockTeamService
	mockUserService *MockUserService
	jwtSecret       string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TeamHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "mta-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TeamHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockTeamService = new(MockTeamService)
	suite.mockUserService = new(MockUserService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTeamRoutes(v1, suite.mockTeamService, suite.mockUserService)
}

func (suite *TeamHandlerTestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TeamHandlerTestSuite) adminUser(id string) *domain.User {
	return &domain.User{UserID: id, Username: "admin", Name: "Admin", Role: domain.RoleAdmin}
}

func (suite *TeamHandlerTestSuite) regularUser(id string) *domain.User {
	return &domain.User{UserID: id, Username: "user", Name: "User", Role: domain.RoleUser}
}

// --- Test Cases ---

func (suite *TeamHandlerTestSuite) TestCreateTeam_Success() {
	adminID := uuid.NewString()
	suite.mockUserService.On("GetUserByID", mock.Anything, adminID).Return(suite.adminUser(adminID), nil)

	req := dto.CreateTeamRequest{Name: "Field Ops", LeaderID: uuid.NewString(), MemberIDs: []string{uuid.NewString()}}
	created := &domain.TeamWithMembers{
		Team:    domain.Team{TeamID: uuid.NewString(), Name: "Field Ops", LeaderID: req.LeaderID, LeaderName: "Lead"},
		Members: []domain.TeamMember{{UserID: req.MemberIDs[0]}},
	}
	suite.mockTeamService.On("CreateTeam", mock.Anything, req, adminID).Return(created, nil)

	w := suite.doRequest(http.MethodPost, "/api/v1/teams", suite.generateTestToken(adminID), req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TeamResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Field Ops", resp.Name)
	suite.mockTeamService.AssertExpectations(suite.T())
}

func (suite *TeamHandlerTestSuite) TestCreateTeam_NonAdminForbidden() {
	userID := uuid.NewString()
	suite.mockUserService.On("GetUserByID", mock.Anything, userID).Return(suite.regularUser(userID), nil)

	req := dto.CreateTeamRequest{Name: "Field Ops", LeaderID: uuid.NewString(), MemberIDs: []string{uuid.NewString()}}
	w := suite.doRequest(http.MethodPost, "/api/v1/teams", suite.generateTestToken(userID), req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockTeamService.AssertNotCalled(suite.T(), "CreateTeam", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TeamHandlerTestSuite) TestCreateTeam_MemberConflict() {
	adminID := uuid.NewString()
	suite.mockUserService.On("GetUserByID", mock.Anything, adminID).Return(suite.adminUser(adminID), nil)

	req := dto.CreateTeamRequest{Name: "Field Ops", LeaderID: uuid.NewString(), MemberIDs: []string{uuid.NewString()}}
	suite.mockTeamService.On("CreateTeam", mock.Anything, req, adminID).
		Return(nil, fmt.Errorf("%w: a listed member already belongs to a team", apperrors.ErrDuplicate))

	w := suite.doRequest(http.MethodPost, "/api/v1/teams", suite.generateTestToken(adminID), req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TeamHandlerTestSuite) TestCreateTeam_NoToken() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/teams", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TeamHandlerTestSuite) TestListTeams_AdminSeesAll() {
	adminID := uuid.NewString()
	suite.mockUserService.On("GetUserByID", mock.Anything, adminID).Return(suite.adminUser(adminID), nil)
	teams := []domain.TeamWithMembers{
		{Team: domain.Team{TeamID: uuid.NewString(), Name: "Alpha"}},
		{Team: domain.Team{TeamID: uuid.NewString(), Name: "Beta"}},
	}
	suite.mockTeamService.On("ListTeams", mock.Anything).Return(teams, nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/teams", suite.generateTestToken(adminID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTeamsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Teams, 2)
	suite.mockTeamService.AssertNotCalled(suite.T(), "ListTeamsForUser", mock.Anything, mock.Anything)
}

func (suite *TeamHandlerTestSuite) TestListTeams_UserSeesOwnTeams() {
	userID := uuid.NewString()
	suite.mockUserService.On("GetUserByID", mock.Anything, userID).Return(suite.regularUser(userID), nil)
	teams := []domain.TeamWithMembers{{Team: domain.Team{TeamID: uuid.NewString(), Name: "Mine"}}}
	suite.mockTeamService.On("ListTeamsForUser", mock.Anything, userID).Return(teams, nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/teams", suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTeamService.AssertNotCalled(suite.T(), "ListTeams", mock.Anything)
}

func (suite *TeamHandlerTestSuite) TestGetTeam_MemberAllowed() {
	userID := uuid.NewString()
	teamID := uuid.NewString()
	team := &domain.TeamWithMembers{
		Team:    domain.Team{TeamID: teamID, Name: "Alpha", LeaderID: uuid.NewString()},
		Members: []domain.TeamMember{{TeamID: teamID, UserID: userID}},
	}
	suite.mockTeamService.On("GetTeam", mock.Anything, teamID).Return(team, nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/teams/"+teamID, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)
	// Membership is decided from the team record itself, no role lookup needed.
	suite.mockUserService.AssertNotCalled(suite.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (suite *TeamHandlerTestSuite) TestGetTeam_OutsiderForbidden() {
	userID := uuid.NewString()
	teamID := uuid.NewString()
	team := &domain.TeamWithMembers{
		Team: domain.Team{TeamID: teamID, Name: "Alpha", LeaderID: uuid.NewString()},
	}
	suite.mockTeamService.On("GetTeam", mock.Anything, teamID).Return(team, nil)
	suite.mockUserService.On("GetUserByID", mock.Anything, userID).Return(suite.regularUser(userID), nil)

	w := suite.doRequest(http.MethodGet, "/api/v1/teams/"+teamID, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TeamHandlerTestSuite) TestGetTeam_NotFound() {
	userID := uuid.NewString()
	teamID := uuid.NewString()
	suite.mockTeamService.On("GetTeam", mock.Anything, teamID).Return(nil, apperrors.ErrNotFound)

	w := suite.doRequest(http.MethodGet, "/api/v1/teams/"+teamID, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TeamHandlerTestSuite) TestAddMember_Conflict() {
	adminID := uuid.NewString()
	teamID := uuid.NewString()
	memberID := uuid.NewString()
	suite.mockUserService.On("GetUserByID", mock.Anything, adminID).Return(suite.adminUser(adminID), nil)
	suite.mockTeamService.On("AddMember", mock.Anything, teamID, memberID).
		Return(fmt.Errorf("%w: user already belongs to a team", apperrors.ErrDuplicate))

	w := suite.doRequest(http.MethodPost, "/api/v1/teams/"+teamID+"/members",
		suite.generateTestToken(adminID), dto.MemberRequest{MemberID: memberID})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TeamHandlerTestSuite) TestRemoveMember_Success() {
	adminID := uuid.NewString()
	teamID := uuid.NewString()
	memberID := uuid.NewString()
	suite.mockUserService.On("GetUserByID", mock.Anything, adminID).Return(suite.adminUser(adminID), nil)
	suite.mockTeamService.On("RemoveMember", mock.Anything, teamID, memberID).Return(nil)

	w := suite.doRequest(http.MethodDelete, "/api/v1/teams/"+teamID+"/members/"+memberID,
		suite.generateTestToken(adminID), nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTeamService.AssertExpectations(suite.T())
}

func (suite *TeamHandlerTestSuite) TestDeleteTeam_NonAdminForbidden() {
	userID := uuid.NewString()
	teamID := uuid.NewString()
	suite.mockUserService.On("GetUserByID", mock.Anything, userID).Return(suite.regularUser(userID), nil)

	w := suite.doRequest(http.MethodDelete, "/api/v1/teams/"+teamID, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockTeamService.AssertNotCalled(suite.T(), "DeleteTeam", mock.Anything, mock.Anything)
}

func TestTeamHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TeamHandlerTestSuite))
}
