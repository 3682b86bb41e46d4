package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portsrepo "github.com/stocknest/stocknest_backend/internal/core/ports/repositories"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
	"github.com/stocknest/stocknest_backend/internal/dto"
)

var (
	ErrCustomerHasOrders      = errors.New("customer has non-cancelled orders")
	ErrContactDetailsRequired = errors.New("business customers require an email and address")
)

// customerService provides customer CRUD on top of the customer repository.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

// Ensure customerService implements the portssvc.CustomerSvcFacade interface
var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer creates a new customer after validating the type-specific rules.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:    uuid.NewString(),
		CustomerName:  req.CustomerName,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Address:       req.Address,
		CustomerType:  req.CustomerType,
		Due:           decimal.Zero,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if customer.RequiresContactDetails() && (customer.Email == "" || customer.Address == "") {
		return nil, apperrors.NewAppError(422, ErrContactDetailsRequired.Error(), apperrors.ErrValidation)
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", "customer_id", customer.CustomerID)
		return nil, err
	}

	s.LogInfo(ctx, "Customer created", "customer_id", customer.CustomerID)
	return &customer, nil
}

// GetCustomerByID retrieves a specific customer by ID.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

// ListCustomers retrieves a filtered, paginated list of customers.
func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) (*dto.ListCustomersResponse, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	customers, total, err := s.customerRepo.ListCustomers(ctx, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, err
	}
	resp := dto.ToListCustomersResponse(customers, total, params.Limit, params.Offset)
	return &resp, nil
}

// UpdateCustomer applies a partial update to an existing customer.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, requestingUserID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		customer.CustomerName = *req.CustomerName
	}
	if req.ContactNumber != nil {
		customer.ContactNumber = *req.ContactNumber
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.CustomerType != nil {
		customer.CustomerType = *req.CustomerType
	}

	if customer.RequiresContactDetails() && (customer.Email == "" || customer.Address == "") {
		return nil, apperrors.NewAppError(422, ErrContactDetailsRequired.Error(), apperrors.ErrValidation)
	}

	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = requestingUserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer", "customer_id", customerID)
		return nil, err
	}
	return customer, nil
}

// DeactivateCustomer marks a customer as inactive. Customers with
// non-cancelled orders cannot be deactivated.
func (s *customerService) DeactivateCustomer(ctx context.Context, customerID string, requestingUserID string) error {
	openOrders, err := s.customerRepo.CountOpenOrders(ctx, customerID)
	if err != nil {
		return err
	}
	if openOrders > 0 {
		s.LogWarn(ctx, "Refusing to deactivate customer with open orders", "customer_id", customerID, "open_orders", openOrders)
		return apperrors.NewAppError(409, ErrCustomerHasOrders.Error(), apperrors.ErrConflict)
	}
	return s.customerRepo.DeactivateCustomer(ctx, customerID, requestingUserID, time.Now().UTC())
}
