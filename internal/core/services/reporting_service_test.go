package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
	"github.com/stocknest/stocknest_backend/internal/core/services"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetDashboardSummary(ctx context.Context, from, to *time.Time) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
}

func (suite *ReportingServiceTestSuite) TestGetDashboardSummary_Unbounded() {
	ctx := context.Background()
	expected := &domain.DashboardSummary{TotalCustomers: 12, TotalItems: 40, TotalOrders: 7}

	suite.mockRepo.On("GetDashboardSummary", ctx, (*time.Time)(nil), (*time.Time)(nil)).
		Return(expected, nil).Once()

	summary, err := suite.service.GetDashboardSummary(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.Equal(expected, summary)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetDashboardSummary_InvertedWindow() {
	ctx := context.Background()
	from := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	summary, err := suite.service.GetDashboardSummary(ctx, &from, &to)

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetDashboardSummary", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetDashboardSummary_BoundedWindow() {
	ctx := context.Background()
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	expected := &domain.DashboardSummary{TotalOrders: 3}

	suite.mockRepo.On("GetDashboardSummary", ctx, &from, &to).Return(expected, nil).Once()

	summary, err := suite.service.GetDashboardSummary(ctx, &from, &to)

	suite.Require().NoError(err)
	suite.Equal(expected, summary)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
