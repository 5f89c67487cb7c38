package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/movetrack/movement_tracking_app/internal/apperrors"
	"github.com/movetrack/movement_tracking_app/internal/core/domain"
	portssvc "github.com/movetrack/movement_tracking_app/internal/core/ports/services"
	"github.com/movetrack/movement_tracking_app/internal/core/services"
	"github.com/movetrack/movement_tracking_app/internal/dto"
)

type MovementServiceTestSuite struct {
	suite.Suite
	mockRepo *MockMovementRepository
	service  portssvc.MovementSvcFacade
	ctx      context.Context
}

func (suite *MovementServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMovementRepository)
	suite.service = services.NewMovementService(suite.mockRepo)
	suite.ctx = context.Background()
}

func punch(userID string, dir domain.PunchDirection, at time.Time) domain.MovementRecord {
	return domain.MovementRecord{
		MovementID:     "mv-" + at.Format("150405"),
		UserID:         userID,
		PunchDirection: dir,
		RecordedAt:     at,
	}
}

func (suite *MovementServiceTestSuite) TestRecordMovement_Success() {
	req := dto.CreateMovementRequest{
		PunchDirection: domain.PunchOut,
		VisitingStatus: "CLIENT_VISIT",
		Place:          "Dhanmondi",
		Party:          "Acme Traders",
		Purpose:        "Quarterly order",
	}
	suite.mockRepo.On("SaveMovement", suite.ctx, mock.MatchedBy(func(r domain.MovementRecord) bool {
		return r.UserID == "user-1" &&
			r.PunchDirection == domain.PunchOut &&
			r.MovementID != "" &&
			!r.RecordedAt.IsZero() &&
			r.CreatedBy == "user-1"
	})).Return(nil)

	record, err := suite.service.RecordMovement(suite.ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.Equal("Acme Traders", record.Party)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestRecordMovement_InvalidDirection() {
	req := dto.CreateMovementRequest{PunchDirection: domain.PunchDirection("SIDEWAYS")}

	record, err := suite.service.RecordMovement(suite.ctx, "user-1", req)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func (suite *MovementServiceTestSuite) TestUpdateMovement_AppliesOnlyProvidedFields() {
	existing := punch("user-1", domain.PunchIn, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	existing.Place = "Head Office"
	suite.mockRepo.On("FindMovementByID", suite.ctx, existing.MovementID).Return(&existing, nil)

	newPlace := "Branch Office"
	suite.mockRepo.On("UpdateMovement", suite.ctx, mock.MatchedBy(func(r domain.MovementRecord) bool {
		return r.Place == "Branch Office" &&
			r.PunchDirection == domain.PunchIn &&
			r.LastUpdatedBy == "admin-1"
	})).Return(nil)

	updated, err := suite.service.UpdateMovement(suite.ctx, existing.MovementID, dto.UpdateMovementRequest{Place: &newPlace}, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("Branch Office", updated.Place)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestListMovements_ClampsLimit() {
	suite.mockRepo.On("FindMovementsByUserID", suite.ctx, "user-1",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), 50, 0).
		Return([]domain.MovementRecord{}, nil)

	_, err := suite.service.ListMovements(suite.ctx, "user-1", dto.ListMovementsParams{Limit: 9999, Offset: -3})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestAttendanceSummary_PairsPunchesPerDay() {
	day1 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	records := []domain.MovementRecord{
		punch("user-1", domain.PunchIn, day1.Add(9*time.Hour)),
		punch("user-1", domain.PunchOut, day1.Add(13*time.Hour)),
		punch("user-1", domain.PunchIn, day1.Add(14*time.Hour)),
		punch("user-1", domain.PunchOut, day1.Add(18*time.Hour+30*time.Minute)),
		punch("user-1", domain.PunchIn, day2.Add(10*time.Hour)),
	}
	suite.mockRepo.On("FindMovementsByUserID", suite.ctx, "user-1",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"),
		mock.AnythingOfType("int"), 0).Return(records, nil)

	report, err := suite.service.AttendanceSummary(suite.ctx, "user-1", day1, day2.Add(24*time.Hour))

	suite.Require().NoError(err)
	suite.Require().Len(report.Days, 2)

	first := report.Days[0]
	suite.Equal("2026-03-02", first.Date)
	suite.Equal("8.5", first.WorkedHours.String())
	suite.Require().NotNil(first.FirstIn)
	suite.Equal(day1.Add(9*time.Hour), *first.FirstIn)
	suite.Require().NotNil(first.LastOut)
	suite.Equal(day1.Add(18*time.Hour+30*time.Minute), *first.LastOut)

	// The open IN on day two contributes no worked time.
	second := report.Days[1]
	suite.Equal("2026-03-03", second.Date)
	suite.True(second.WorkedHours.IsZero())
	suite.Nil(second.LastOut)

	suite.Equal("8.5", report.TotalHours.String())
}

func (suite *MovementServiceTestSuite) TestAttendanceSummary_SecondInRestartsInterval() {
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	records := []domain.MovementRecord{
		punch("user-1", domain.PunchIn, day.Add(9*time.Hour)),
		punch("user-1", domain.PunchIn, day.Add(11*time.Hour)),
		punch("user-1", domain.PunchOut, day.Add(12*time.Hour)),
	}
	suite.mockRepo.On("FindMovementsByUserID", suite.ctx, "user-1",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"),
		mock.AnythingOfType("int"), 0).Return(records, nil)

	report, err := suite.service.AttendanceSummary(suite.ctx, "user-1", day, day.Add(24*time.Hour))

	suite.Require().NoError(err)
	suite.Require().Len(report.Days, 1)
	// Only the 11:00 -> 12:00 interval counts; the first IN was superseded.
	suite.Equal("1", report.Days[0].WorkedHours.String())
	suite.Require().NotNil(report.Days[0].FirstIn)
	suite.Equal(day.Add(9*time.Hour), *report.Days[0].FirstIn)
}

func (suite *MovementServiceTestSuite) TestAttendanceSummary_OutWithoutInOnlyMovesLastOut() {
	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	records := []domain.MovementRecord{
		punch("user-1", domain.PunchOut, day.Add(8*time.Hour)),
	}
	suite.mockRepo.On("FindMovementsByUserID", suite.ctx, "user-1",
		mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"),
		mock.AnythingOfType("int"), 0).Return(records, nil)

	report, err := suite.service.AttendanceSummary(suite.ctx, "user-1", day, day.Add(24*time.Hour))

	suite.Require().NoError(err)
	suite.Require().Len(report.Days, 1)
	suite.True(report.Days[0].WorkedHours.IsZero())
	suite.Nil(report.Days[0].FirstIn)
	suite.NotNil(report.Days[0].LastOut)
}

func TestMovementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MovementServiceTestSuite))
}
