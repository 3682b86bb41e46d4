package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
	"github.com/stocknest/stocknest_backend/internal/dto"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by their ID.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a filtered, paginated list of customers along
	// with the total count matching the filter.
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, int64, error)

	// CountOpenOrders returns the number of non-cancelled sales orders that
	// reference the customer. Used to block deactivation.
	CountOpenOrders(ctx context.Context, customerID string) (int64, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeactivateCustomer marks a customer as inactive (soft delete).
	DeactivateCustomer(ctx context.Context, customerID string, deactivatedBy string, deactivatedAt time.Time) error
}

// CustomerTxOperator defines customer operations that run inside an existing
// database transaction, used by the order workflow.
type CustomerTxOperator interface {
	// FindCustomerForUpdate locks the customer row and returns its current state.
	FindCustomerForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error)

	// ApplyDueDeltaInTx adjusts the customer's running due by delta.
	ApplyDueDeltaInTx(ctx context.Context, tx pgx.Tx, customerID string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
// This is a facade for clients that need access to all operations
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
	CustomerTxOperator
}
