package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/internal/core/services"
)

type MessageServiceTestSuite struct {
	suite.Suite
	mockMessageRepo *MockMessageRepository
	mockTeamRepo    *MockTeamRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.ChatSvcFacade
	ctx             context.Context
}

func (suite *MessageServiceTestSuite) SetupTest() {
	suite.mockMessageRepo = new(MockMessageRepository)
	suite.mockTeamRepo = new(MockTeamRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewMessageService(suite.mockMessageRepo, suite.mockTeamRepo, suite.mockUserRepo)
	suite.ctx = context.Background()
}

func (suite *MessageServiceTestSuite) TestAuthorize_MemberAllowed() {
	suite.mockTeamRepo.On("IsLeaderOrMember", suite.ctx, "team-1", "user-1").Return(true, nil)

	err := suite.service.Authorize(suite.ctx, "team-1", "user-1")

	suite.Require().NoError(err)
}

func (suite *MessageServiceTestSuite) TestAuthorize_NonMemberForbidden() {
	suite.mockTeamRepo.On("IsLeaderOrMember", suite.ctx, "team-1", "outsider").Return(false, nil)

	err := suite.service.Authorize(suite.ctx, "team-1", "outsider")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *MessageServiceTestSuite) TestRecentMessages_RequiresMembership() {
	suite.mockTeamRepo.On("IsLeaderOrMember", suite.ctx, "team-1", "outsider").Return(false, nil)

	messages, err := suite.service.RecentMessages(suite.ctx, "team-1", "outsider", 100)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(messages)
	suite.mockMessageRepo.AssertNotCalled(suite.T(), "FindRecentMessages", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MessageServiceTestSuite) TestRecentMessages_DefaultsLimit() {
	suite.mockTeamRepo.On("IsLeaderOrMember", suite.ctx, "team-1", "user-1").Return(true, nil)
	suite.mockMessageRepo.On("FindRecentMessages", suite.ctx, "team-1", 500).Return([]domain.Message{}, nil)

	_, err := suite.service.RecentMessages(suite.ctx, "team-1", "user-1", 0)

	suite.Require().NoError(err)
	suite.mockMessageRepo.AssertExpectations(suite.T())
}

func (suite *MessageServiceTestSuite) TestPostMessage_Success() {
	suite.mockTeamRepo.On("IsLeaderOrMember", suite.ctx, "team-1", "user-1").Return(true, nil)
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-1").Return(&domain.User{UserID: "user-1", Name: "Rafiq"}, nil)
	suite.mockMessageRepo.On("SaveMessage", suite.ctx, mock.MatchedBy(func(m *domain.Message) bool {
		return m.TeamID == "team-1" && m.SenderID == "user-1" && m.SenderName == "Rafiq" && m.Body == "on my way"
	})).Run(func(args mock.Arguments) {
		m := args.Get(1).(*domain.Message)
		m.MessageID = 42
		m.CreatedAt = time.Now()
	}).Return(nil)

	message, err := suite.service.PostMessage(suite.ctx, "team-1", "user-1", "  on my way  ")

	suite.Require().NoError(err)
	suite.Equal(int64(42), message.MessageID)
	suite.Equal("on my way", message.Body)
	suite.False(message.CreatedAt.IsZero())
	suite.mockMessageRepo.AssertExpectations(suite.T())
}

func (suite *MessageServiceTestSuite) TestPostMessage_EmptyBodyRejected() {
	message, err := suite.service.PostMessage(suite.ctx, "team-1", "user-1", "   ")

	suite.Require().Error(err)
	suite.Nil(message)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTeamRepo.AssertNotCalled(suite.T(), "IsLeaderOrMember", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MessageServiceTestSuite) TestPostMessage_OversizeBodyRejected() {
	body := strings.Repeat("x", 4001)

	message, err := suite.service.PostMessage(suite.ctx, "team-1", "user-1", body)

	suite.Require().Error(err)
	suite.Nil(message)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MessageServiceTestSuite) TestPostMessage_NonMemberForbidden() {
	suite.mockTeamRepo.On("IsLeaderOrMember", suite.ctx, "team-1", "outsider").Return(false, nil)

	message, err := suite.service.PostMessage(suite.ctx, "team-1", "outsider", "hello")

	suite.Require().Error(err)
	suite.Nil(message)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMessageRepo.AssertNotCalled(suite.T(), "SaveMessage", mock.Anything, mock.Anything)
}

func TestMessageServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MessageServiceTestSuite))
}
