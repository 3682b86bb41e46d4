package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
	"github.com/stocknest/stocknest_backend/internal/dto"
)

// SalesOrderReader defines read operations for sales order data
type SalesOrderReader interface {
	// FindOrderByID retrieves an order with its lines and the customer name joined in.
	FindOrderByID(ctx context.Context, orderID string) (*domain.SalesOrder, error)

	// ListOrders retrieves a filtered page of orders using token-based
	// pagination, plus financial aggregates over the whole filtered set.
	ListOrders(ctx context.Context, params dto.ListSalesOrdersParams) ([]domain.SalesOrder, *string, dto.SalesOrderAggregates, error)
}

// SalesOrderWriter defines the transactional write operations for the order
// workflow. Each method runs as a single database transaction that keeps
// order rows, item stock and the customer's running due consistent.
type SalesOrderWriter interface {
	// CreateOrder inserts the order and its lines, reserves item stock via the
	// per-item reservations map, snapshots the customer's due into
	// previousDue and raises the customer due by the order's outstanding
	// amount. The order number is generated inside the transaction. Returns
	// the stored order.
	CreateOrder(ctx context.Context, order domain.SalesOrder, reservations map[string]int64) (*domain.SalesOrder, error)

	// UpdateOrder rewrites the order header and lines, applies net per-item
	// stock deltas and shifts the customer due by dueDelta. Returns the
	// stored order.
	UpdateOrder(ctx context.Context, order domain.SalesOrder, quantityDeltas map[string]int64, dueDelta decimal.Decimal) (*domain.SalesOrder, error)

	// UpdateOrderStatus sets the order status without touching stock or dues.
	// The update only applies while the row still holds the from status; a
	// concurrent transition surfaces as a conflict. Transition legality is
	// the service's responsibility.
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, updatedBy string, updatedAt time.Time) error

	// CancelOrder marks the order Cancelled, restores the reserved stock of
	// its lines and lowers the customer due by the order's outstanding
	// amount. Returns the cancelled order.
	CancelOrder(ctx context.Context, orderID string, updatedBy string, updatedAt time.Time) (*domain.SalesOrder, error)

	// DeleteOrder removes the order and its lines. For non-cancelled orders
	// it first performs the same compensation as CancelOrder.
	DeleteOrder(ctx context.Context, orderID string) error
}

// SalesOrderRepositoryFacade combines all sales-order repository interfaces
// This is a facade for clients that need access to all operations
type SalesOrderRepositoryFacade interface {
	SalesOrderReader
	SalesOrderWriter
}

// SalesOrderRepositoryWithTx extends SalesOrderRepositoryFacade with transaction capabilities
type SalesOrderRepositoryWithTx interface {
	SalesOrderRepositoryFacade
	TransactionManager
}
