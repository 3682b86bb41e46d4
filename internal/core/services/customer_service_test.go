package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
	"github.com/stocknest/stocknest_backend/internal/core/services"
	"github.com/stocknest/stocknest_backend/internal/dto"
)

// MockCustomerRepository is a mock type for the CustomerRepositoryFacade interface
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) CountOpenOrders(ctx context.Context, customerID string) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeactivateCustomer(ctx context.Context, customerID string, deactivatedBy string, deactivatedAt time.Time) error {
	args := m.Called(ctx, customerID, deactivatedBy, deactivatedAt)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, tx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ApplyDueDeltaInTx(ctx context.Context, tx pgx.Tx, customerID string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, customerID, delta, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---

type CustomerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCustomerRepository
	service  portssvc.CustomerSvcFacade
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCustomerRepository)
	suite.service = services.NewCustomerService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CustomerServiceTestSuite) TestCreateCustomer_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCustomerRequest{
		CustomerName: "Ayesha Rahman",
		CustomerType: domain.Individual,
	}

	suite.mockRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(nil).Once()

	created, err := suite.service.CreateCustomer(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.CustomerID)
	suite.Equal(req.CustomerName, created.CustomerName)
	suite.True(created.IsActive)
	suite.True(created.Due.IsZero())
	suite.Equal(creatorUserID, created.CreatedBy)
	suite.Equal(creatorUserID, created.LastUpdatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_BusinessRequiresContactDetails() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{
		CustomerName: "Northwind Traders",
		CustomerType: domain.Business,
		// no email or address
	}

	created, err := suite.service.CreateCustomer(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCustomer", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_BusinessRequiresEmail() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{
		CustomerName:  "Northwind Traders",
		ContactNumber: "+8801700000000",
		Address:       "12 Motijheel C/A, Dhaka",
		CustomerType:  domain.Business,
		// a contact number is no substitute for the email
	}

	created, err := suite.service.CreateCustomer(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCustomer", mock.Anything, mock.Anything)
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_BusinessWithEmailAndAddress() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{
		CustomerName: "Northwind Traders",
		Email:        "accounts@northwind.example",
		Address:      "12 Motijheel C/A, Dhaka",
		CustomerType: domain.Business,
	}

	suite.mockRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerType == domain.Business && c.Email == req.Email
	})).Return(nil).Once()

	created, err := suite.service.CreateCustomer(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_CannotDropBusinessContactDetails() {
	ctx := context.Background()
	customerID := uuid.NewString()
	existing := &domain.Customer{
		CustomerID:   customerID,
		CustomerName: "Northwind Traders",
		Email:        "accounts@northwind.example",
		Address:      "12 Motijheel C/A, Dhaka",
		CustomerType: domain.Business,
		IsActive:     true,
	}

	suite.mockRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()

	empty := ""
	updated, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{Email: &empty}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCustomer", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_AppliesPartialFields() {
	ctx := context.Background()
	customerID := uuid.NewString()
	requesterID := uuid.NewString()
	existing := &domain.Customer{
		CustomerID:   customerID,
		CustomerName: "Ayesha Rahman",
		Email:        "ayesha@example.com",
		CustomerType: domain.Individual,
		IsActive:     true,
	}

	suite.mockRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerName == "Ayesha R. Chowdhury" &&
			c.Email == "ayesha@example.com" &&
			c.LastUpdatedBy == requesterID
	})).Return(nil).Once()

	newName := "Ayesha R. Chowdhury"
	updated, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{CustomerName: &newName}, requesterID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(newName, updated.CustomerName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestDeactivateCustomer_BlockedByOpenOrders() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockRepo.On("CountOpenOrders", ctx, customerID).Return(int64(3), nil).Once()

	err := suite.service.DeactivateCustomer(ctx, customerID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestDeactivateCustomer_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	requesterID := uuid.NewString()

	suite.mockRepo.On("CountOpenOrders", ctx, customerID).Return(int64(0), nil).Once()
	suite.mockRepo.On("DeactivateCustomer", ctx, customerID, requesterID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateCustomer(ctx, customerID, requesterID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestListCustomers_DefaultsLimit() {
	ctx := context.Background()

	suite.mockRepo.On("ListCustomers", ctx, mock.MatchedBy(func(p dto.ListCustomersParams) bool {
		return p.Limit == 20
	})).Return([]domain.Customer{}, int64(0), nil).Once()

	resp, err := suite.service.ListCustomers(ctx, dto.ListCustomersParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestGetCustomerByID_NotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	customer, err := suite.service.GetCustomerByID(ctx, customerID)

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_SaveError() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{
		CustomerName: "Ayesha Rahman",
		CustomerType: domain.Individual,
	}
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(expectedErr).Once()

	created, err := suite.service.CreateCustomer(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
