package services

import (
	"context"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
	"github.com/stocknest/stocknest_backend/internal/dto"
)

// SalesOrderReaderSvc defines read operations for sales order data
type SalesOrderReaderSvc interface {
	// GetSalesOrderByID retrieves an order with its lines.
	GetSalesOrderByID(ctx context.Context, orderID string) (*domain.SalesOrder, error)

	// ListSalesOrders retrieves a filtered page of orders with aggregates.
	ListSalesOrders(ctx context.Context, params dto.ListSalesOrdersParams) (*dto.ListSalesOrdersResponse, error)
}

// SalesOrderWriterSvc defines write operations for the fulfillment workflow
type SalesOrderWriterSvc interface {
	// CreateSalesOrder validates the request, computes the financial rollups
	// and persists the order atomically with stock reservation and customer
	// due propagation.
	CreateSalesOrder(ctx context.Context, req dto.CreateSalesOrderRequest, creatorUserID string) (*domain.SalesOrder, error)

	// UpdateSalesOrder applies a partial update to a Draft or Confirmed order,
	// reconciling stock via net per-item deltas.
	UpdateSalesOrder(ctx context.Context, orderID string, req dto.UpdateSalesOrderRequest, requestingUserID string) (*domain.SalesOrder, error)

	// UpdateOrderStatus advances the order through the status machine.
	// Cancelling routes through the compensating cancellation path.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, requestingUserID string) (*domain.SalesOrder, error)

	// CancelSalesOrder cancels an order, restoring stock and customer due.
	CancelSalesOrder(ctx context.Context, orderID string, requestingUserID string) (*domain.SalesOrder, error)

	// DeleteSalesOrder removes an order entirely, compensating first when the
	// order is not already cancelled.
	DeleteSalesOrder(ctx context.Context, orderID string, requestingUserID string) error
}

// SalesOrderSvcFacade combines all sales-order service interfaces
type SalesOrderSvcFacade interface {
	SalesOrderReaderSvc
	SalesOrderWriterSvc
}
