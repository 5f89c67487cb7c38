package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Authorize(ctx context.Context, teamID, userID string) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *MockChatService) RecentMessages(ctx context.Context, teamID, actingUserID string, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, teamID, actingUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockChatService) PostMessage(ctx context.Context, teamID, senderID, body string) (*domain.Message, error) {
	args := m.Called(ctx, teamID, senderID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

type HubTestSuite struct {
	suite.Suite
	mockSvc *MockChatService
	hub     *Hub
	ctx     context.Context
}

func (suite *HubTestSuite) SetupTest() {
	suite.mockSvc = new(MockChatService)
	suite.hub = NewHub(suite.mockSvc, slog.Default(), 100)
	suite.ctx = context.Background()
}

// newTestClient builds a client without a live connection. The hub handlers
// only touch the send buffer, never the socket.
func (suite *HubTestSuite) newTestClient(userID string) *Client {
	return NewClient(suite.hub, nil, userID, slog.Default())
}

// nextFrame pops one queued frame off the client's send buffer.
func (suite *HubTestSuite) nextFrame(c *Client) Envelope {
	select {
	case raw := <-c.send:
		var env Envelope
		suite.Require().NoError(json.Unmarshal(raw, &env))
		return env
	default:
		suite.Require().FailNow("expected a queued frame, found none")
		return Envelope{}
	}
}

func (suite *HubTestSuite) assertNoFrame(c *Client) {
	select {
	case raw := <-c.send:
		suite.Require().FailNowf("unexpected frame", "client %s got %s", c.userID, raw)
	default:
	}
}

func (suite *HubTestSuite) TestJoin_DeliversHistoryAndEntersRoom() {
	c := suite.newTestClient("user-1")
	history := []domain.Message{
		{MessageID: 1, TeamID: "team-1", SenderID: "user-2", SenderName: "Mina", Body: "first"},
		{MessageID: 2, TeamID: "team-1", SenderID: "user-1", SenderName: "Rahim", Body: "second"},
	}
	suite.mockSvc.On("Authorize", mock.Anything, "team-1", "user-1").Return(nil)
	suite.mockSvc.On("RecentMessages", mock.Anything, "team-1", "user-1", 100).Return(history, nil)

	suite.hub.handleJoin(suite.ctx, c, "team-1")

	suite.Equal("team-1", c.teamID)
	suite.Contains(suite.hub.rooms, "team-1")

	env := suite.nextFrame(c)
	suite.Equal(EventLoadMessages, env.Event)
	var payload LoadMessagesPayload
	suite.Require().NoError(json.Unmarshal(env.Data, &payload))
	suite.Equal("team-1", payload.TeamID)
	suite.Require().Len(payload.Messages, 2)
	suite.Equal(int64(1), payload.Messages[0].MessageID)
	suite.Equal("second", payload.Messages[1].Body)
}

func (suite *HubTestSuite) TestJoin_NonMemberGetsJoinErrorAndStaysOut() {
	c := suite.newTestClient("outsider")
	suite.mockSvc.On("Authorize", mock.Anything, "team-1", "outsider").
		Return(apperrors.ErrForbidden)

	suite.hub.handleJoin(suite.ctx, c, "team-1")

	suite.Equal("", c.teamID)
	suite.NotContains(suite.hub.rooms, "team-1")

	env := suite.nextFrame(c)
	suite.Equal(EventJoinError, env.Event)
	var payload ErrorPayload
	suite.Require().NoError(json.Unmarshal(env.Data, &payload))
	suite.Equal("team-1", payload.TeamID)
	suite.Equal("not a member of this team", payload.Error)
	suite.mockSvc.AssertNotCalled(suite.T(), "RecentMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HubTestSuite) TestJoin_RejectedMemberKeepsCurrentRoom() {
	c := suite.newTestClient("user-1")
	suite.mockSvc.On("Authorize", mock.Anything, "team-1", "user-1").Return(nil)
	suite.mockSvc.On("RecentMessages", mock.Anything, "team-1", "user-1", 100).Return([]domain.Message{}, nil)
	suite.hub.handleJoin(suite.ctx, c, "team-1")
	suite.nextFrame(c)

	suite.mockSvc.On("Authorize", mock.Anything, "team-2", "user-1").Return(apperrors.ErrForbidden)

	suite.hub.handleJoin(suite.ctx, c, "team-2")

	suite.Equal("team-1", c.teamID)
	suite.Contains(suite.hub.rooms, "team-1")
	env := suite.nextFrame(c)
	suite.Equal(EventJoinError, env.Event)
}

func (suite *HubTestSuite) TestJoin_HistoryFailureStillJoins() {
	c := suite.newTestClient("user-1")
	suite.mockSvc.On("Authorize", mock.Anything, "team-1", "user-1").Return(nil)
	suite.mockSvc.On("RecentMessages", mock.Anything, "team-1", "user-1", 100).
		Return(nil, apperrors.NewInternalServerError("store is down"))

	suite.hub.handleJoin(suite.ctx, c, "team-1")

	// The membership check passed, so the client is in the room even though
	// the history replay failed.
	suite.Equal("team-1", c.teamID)
	suite.Contains(suite.hub.rooms["team-1"], c)

	env := suite.nextFrame(c)
	suite.Equal(EventLoadMessagesError, env.Event)
}

func (suite *HubTestSuite) TestJoin_SwitchingTeamsLeavesOldRoom() {
	c := suite.newTestClient("user-1")
	suite.mockSvc.On("Authorize", mock.Anything, mock.Anything, "user-1").Return(nil)
	suite.mockSvc.On("RecentMessages", mock.Anything, mock.Anything, "user-1", 100).Return([]domain.Message{}, nil)

	suite.hub.handleJoin(suite.ctx, c, "team-1")
	suite.nextFrame(c)
	suite.hub.handleJoin(suite.ctx, c, "team-2")
	suite.nextFrame(c)

	suite.Equal("team-2", c.teamID)
	suite.NotContains(suite.hub.rooms, "team-1")
	suite.Contains(suite.hub.rooms["team-2"], c)
}

func (suite *HubTestSuite) TestSend_BroadcastsToEveryRoomMember() {
	sender := suite.newTestClient("user-1")
	peer := suite.newTestClient("user-2")
	suite.mockSvc.On("Authorize", mock.Anything, "team-1", mock.Anything).Return(nil)
	suite.mockSvc.On("RecentMessages", mock.Anything, "team-1", mock.Anything, 100).Return([]domain.Message{}, nil)
	suite.hub.handleJoin(suite.ctx, sender, "team-1")
	suite.hub.handleJoin(suite.ctx, peer, "team-1")
	suite.nextFrame(sender)
	suite.nextFrame(peer)

	saved := &domain.Message{MessageID: 7, TeamID: "team-1", SenderID: "user-1", SenderName: "Rahim", Body: "hello", CreatedAt: time.Now()}
	suite.mockSvc.On("PostMessage", mock.Anything, "team-1", "user-1", "hello").Return(saved, nil)

	suite.hub.handleSend(suite.ctx, sender, "team-1", "hello")

	for _, c := range []*Client{sender, peer} {
		env := suite.nextFrame(c)
		suite.Equal(EventReceiveMessage, env.Event)
		suite.Contains(string(env.Data), `"hello"`)
	}
	suite.mockSvc.AssertExpectations(suite.T())
}

// A team member may post without having joined the room first; the message
// still reaches everyone who is joined. The sender only hears the echo when
// it is joined itself.
func (suite *HubTestSuite) TestSend_MemberNotJoinedStillReachesRoom() {
	leader := suite.newTestClient("leader-1")
	member := suite.newTestClient("user-2")
	suite.mockSvc.On("Authorize", mock.Anything, "team-1", "user-2").Return(nil)
	suite.mockSvc.On("RecentMessages", mock.Anything, "team-1", "user-2", 100).Return([]domain.Message{}, nil)
	suite.hub.handleJoin(suite.ctx, member, "team-1")
	suite.nextFrame(member)

	saved := &domain.Message{MessageID: 8, TeamID: "team-1", SenderID: "leader-1", SenderName: "Selim", Body: "hi", CreatedAt: time.Now()}
	suite.mockSvc.On("PostMessage", mock.Anything, "team-1", "leader-1", "hi").Return(saved, nil)

	suite.hub.handleSend(suite.ctx, leader, "team-1", "hi")

	env := suite.nextFrame(member)
	suite.Equal(EventReceiveMessage, env.Event)
	suite.Contains(string(env.Data), `"hi"`)
	suite.assertNoFrame(leader)
	suite.mockSvc.AssertExpectations(suite.T())
}

// A connection joined only to another team never sees the broadcast.
func (suite *HubTestSuite) TestSend_OtherRoomIsNotDelivered() {
	sender := suite.newTestClient("user-1")
	bystander := suite.newTestClient("user-3")
	suite.mockSvc.On("Authorize", mock.Anything, "team-1", "user-1").Return(nil)
	suite.mockSvc.On("Authorize", mock.Anything, "team-2", "user-3").Return(nil)
	suite.mockSvc.On("RecentMessages", mock.Anything, mock.Anything, mock.Anything, 100).Return([]domain.Message{}, nil)
	suite.hub.handleJoin(suite.ctx, sender, "team-1")
	suite.hub.handleJoin(suite.ctx, bystander, "team-2")
	suite.nextFrame(sender)
	suite.nextFrame(bystander)

	saved := &domain.Message{MessageID: 9, TeamID: "team-1", SenderID: "user-1", SenderName: "Rahim", Body: "team one only", CreatedAt: time.Now()}
	suite.mockSvc.On("PostMessage", mock.Anything, "team-1", "user-1", "team one only").Return(saved, nil)

	suite.hub.handleSend(suite.ctx, sender, "team-1", "team one only")

	env := suite.nextFrame(sender)
	suite.Equal(EventReceiveMessage, env.Event)
	suite.assertNoFrame(bystander)
}

func (suite *HubTestSuite) TestSend_FailureReachesOnlyTheSender() {
	sender := suite.newTestClient("user-1")
	peer := suite.newTestClient("user-2")
	suite.mockSvc.On("Authorize", mock.Anything, "team-1", mock.Anything).Return(nil)
	suite.mockSvc.On("RecentMessages", mock.Anything, "team-1", mock.Anything, 100).Return([]domain.Message{}, nil)
	suite.hub.handleJoin(suite.ctx, sender, "team-1")
	suite.hub.handleJoin(suite.ctx, peer, "team-1")
	suite.nextFrame(sender)
	suite.nextFrame(peer)

	suite.mockSvc.On("PostMessage", mock.Anything, "team-1", "user-1", "hello").
		Return(nil, apperrors.NewInternalServerError("store is down"))

	suite.hub.handleSend(suite.ctx, sender, "team-1", "hello")

	env := suite.nextFrame(sender)
	suite.Equal(EventSendError, env.Event)
	suite.assertNoFrame(peer)
}

func (suite *HubTestSuite) TestSend_NonMemberIsRejected() {
	outsider := suite.newTestClient("outsider")
	member := suite.newTestClient("user-2")
	suite.mockSvc.On("Authorize", mock.Anything, "team-1", "user-2").Return(nil)
	suite.mockSvc.On("RecentMessages", mock.Anything, "team-1", "user-2", 100).Return([]domain.Message{}, nil)
	suite.hub.handleJoin(suite.ctx, member, "team-1")
	suite.nextFrame(member)

	suite.mockSvc.On("PostMessage", mock.Anything, "team-1", "outsider", "hello").
		Return(nil, apperrors.ErrForbidden)

	suite.hub.handleSend(suite.ctx, outsider, "team-1", "hello")

	env := suite.nextFrame(outsider)
	suite.Equal(EventSendError, env.Event)
	var payload ErrorPayload
	suite.Require().NoError(json.Unmarshal(env.Data, &payload))
	suite.Equal("not a member of this team", payload.Error)
	suite.assertNoFrame(member)
}

func (suite *HubTestSuite) TestSend_MissingTeamIDIsRejected() {
	c := suite.newTestClient("user-1")

	suite.hub.handleSend(suite.ctx, c, "", "hello")

	env := suite.nextFrame(c)
	suite.Equal(EventSendError, env.Event)
	var payload ErrorPayload
	suite.Require().NoError(json.Unmarshal(env.Data, &payload))
	suite.Equal("teamID is required", payload.Error)
	suite.mockSvc.AssertNotCalled(suite.T(), "PostMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HubTestSuite) TestUnregister_RemovesClientFromRoom() {
	c := suite.newTestClient("user-1")
	suite.mockSvc.On("Authorize", mock.Anything, "team-1", "user-1").Return(nil)
	suite.mockSvc.On("RecentMessages", mock.Anything, "team-1", "user-1", 100).Return([]domain.Message{}, nil)
	suite.hub.handleJoin(suite.ctx, c, "team-1")
	suite.nextFrame(c)

	suite.hub.leaveRoom(c)
	c.closeSend()

	suite.Equal("", c.teamID)
	suite.NotContains(suite.hub.rooms, "team-1")
	suite.True(c.sendClosed)
}

func TestHubTestSuite(t *testing.T) {
	suite.Run(t, new(HubTestSuite))
}
