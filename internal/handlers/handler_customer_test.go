package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
	"github.com/stocknest/stocknest_backend/internal/dto"
	"github.com/stocknest/stocknest_backend/internal/handlers"
	"github.com/stocknest/stocknest_backend/internal/middleware"
	"github.com/stocknest/stocknest_backend/internal/utils"
)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListCustomersResponse), args.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) DeactivateCustomer(ctx context.Context, customerID string, requestingUserID string) error {
	args := m.Called(ctx, customerID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Test Suite ---
type CustomerHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockCustomerService
	jwtSecret   string
}

func (suite *CustomerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockService = new(MockCustomerService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterCustomerRoutes(v1, suite.mockService)
}

// generateTestToken creates an access token carrying the given role and permissions.
func (suite *CustomerHandlerTestSuite) generateTestToken(userID string, role domain.Role, perms ...domain.Permission) string {
	user := &domain.User{UserID: userID, Role: role, Permissions: perms}
	token, err := utils.GenerateAccessJWT(user, suite.jwtSecret, time.Hour, "stocknest-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

// --- Test Cases ---

func (suite *CustomerHandlerTestSuite) TestCreateCustomer_Success() {
	requestingUserID := uuid.NewString()
	reqBody := dto.CreateCustomerRequest{
		CustomerName: "Northwind Traders",
		Email:        "accounts@northwind.example",
		Address:      "12 Motijheel C/A, Dhaka",
		CustomerType: domain.Business,
	}
	created := &domain.Customer{
		CustomerID:   uuid.NewString(),
		CustomerName: reqBody.CustomerName,
		Email:        reqBody.Email,
		Address:      reqBody.Address,
		CustomerType: domain.Business,
		Due:          decimal.Zero,
		IsActive:     true,
	}

	suite.mockService.On("CreateCustomer",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateCustomerRequest) bool { return r.CustomerName == reqBody.CustomerName }),
		requestingUserID,
	).Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID, domain.RoleManager))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.CustomerResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.CustomerID, resp.CustomerID)
	suite.Equal(created.CustomerName, resp.CustomerName)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestCreateCustomer_ForbiddenWithoutPermission() {
	requestingUserID := uuid.NewString()
	reqBody := dto.CreateCustomerRequest{
		CustomerName: "Ayesha Rahman",
		CustomerType: domain.Individual,
	}

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	// employee holding only the sales permission
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID, domain.RoleEmployee, domain.PermSales))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CustomerHandlerTestSuite) TestCreateCustomer_EmployeeWithPermission() {
	requestingUserID := uuid.NewString()
	reqBody := dto.CreateCustomerRequest{
		CustomerName: "Ayesha Rahman",
		CustomerType: domain.Individual,
	}
	created := &domain.Customer{
		CustomerID:   uuid.NewString(),
		CustomerName: reqBody.CustomerName,
		CustomerType: domain.Individual,
		IsActive:     true,
	}

	suite.mockService.On("CreateCustomer", mock.Anything, mock.Anything, requestingUserID).
		Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID, domain.RoleEmployee, domain.PermCustomer))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestGetCustomer_NotFound() {
	customerID := uuid.NewString()

	suite.mockService.On("GetCustomerByID", mock.Anything, customerID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/customers/"+customerID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString(), domain.RoleEmployee))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)

	var resp handlers.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Equal(http.StatusNotFound, resp.StatusCode)
	suite.NotEmpty(resp.Message)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestCreateCustomer_BusinessWithoutEmailRejected() {
	requestingUserID := uuid.NewString()
	reqBody := dto.CreateCustomerRequest{
		CustomerName: "Northwind Traders",
		Address:      "12 Motijheel C/A, Dhaka",
		CustomerType: domain.Business,
	}

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID, domain.RoleManager))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp handlers.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.NotEmpty(resp.ErrorMessages)
	suite.Contains(resp.ErrorMessages[0], "Email")

	suite.mockService.AssertNotCalled(suite.T(), "CreateCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CustomerHandlerTestSuite) TestListCustomers_Success() {
	expected := &dto.ListCustomersResponse{
		Customers: []dto.CustomerResponse{
			{CustomerID: uuid.NewString(), CustomerName: "Northwind Traders"},
		},
		Total: 1,
	}

	suite.mockService.On("ListCustomers", mock.Anything, mock.MatchedBy(func(p dto.ListCustomersParams) bool {
		return p.SearchTerm == "north"
	})).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/customers?searchTerm=north", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString(), domain.RoleEmployee))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListCustomersResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Customers, 1)
	suite.Equal(int64(1), resp.Total)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestDeactivateCustomer_ConflictWithOpenOrders() {
	customerID := uuid.NewString()
	requestingUserID := uuid.NewString()

	suite.mockService.On("DeactivateCustomer", mock.Anything, customerID, requestingUserID).
		Return(apperrors.NewAppError(409, "customer has non-cancelled orders", apperrors.ErrConflict)).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/customers/"+customerID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID, domain.RoleAdmin))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/customers", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListCustomers", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestCustomerHandler(t *testing.T) {
	suite.Run(t, new(CustomerHandlerTestSuite))
}
