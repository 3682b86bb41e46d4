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
	"github.com/stocknest/stocknest_backend/internal/utils/ordermath"
)

var (
	ErrOrderNotEditable  = errors.New("only Draft and Confirmed orders can be edited")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrOrderDateRequired = errors.New("order date is required")
)

// salesOrderService implements the fulfillment workflow: it validates
// requests, derives the financial rollups and hands the repository a fully
// computed order plus the stock and due deltas to apply atomically.
type salesOrderService struct {
	BaseService
	orderRepo portsrepo.SalesOrderRepositoryFacade
}

// NewSalesOrderService creates a new SalesOrderService.
func NewSalesOrderService(orderRepo portsrepo.SalesOrderRepositoryFacade) portssvc.SalesOrderSvcFacade {
	return &salesOrderService{orderRepo: orderRepo}
}

// Ensure salesOrderService implements the portssvc.SalesOrderSvcFacade interface
var _ portssvc.SalesOrderSvcFacade = (*salesOrderService)(nil)

// buildOrderLines validates the requested lines and computes their amounts.
// It returns the lines plus the total quantity requested per item (duplicate
// item references are allowed and merged for stock accounting).
func buildOrderLines(reqLines []dto.OrderLineRequest) ([]domain.OrderLine, map[string]int64, error) {
	lines := make([]domain.OrderLine, 0, len(reqLines))
	quantities := make(map[string]int64, len(reqLines))

	for i, rl := range reqLines {
		amount, err := ordermath.LineAmount(rl.Quantity, rl.Rate, rl.Discount)
		if err != nil {
			return nil, nil, apperrors.NewAppError(422, err.Error(), apperrors.ErrValidation)
		}
		lines = append(lines, domain.OrderLine{
			ItemID:   rl.ItemID,
			Quantity: rl.Quantity,
			Rate:     rl.Rate,
			Discount: rl.Discount,
			Amount:   amount,
			LineNo:   i + 1,
		})
		quantities[rl.ItemID] += rl.Quantity
	}
	return lines, quantities, nil
}

// computeTotals derives subTotal and total from the lines and order-level
// charges: total = subTotal - discount + shipping + adjustment.
func computeTotals(lines []domain.OrderLine, discountType domain.DiscountType, discountValue, shipping, adjustment decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	subTotal := ordermath.SubTotal(lines)
	total, err := ordermath.OrderTotal(subTotal, discountType, discountValue, shipping, adjustment)
	if err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(422, err.Error(), apperrors.ErrValidation)
	}
	return subTotal, total, nil
}

func validatePayment(payment, total decimal.Decimal) error {
	if err := ordermath.ValidatePayment(payment, total); err != nil {
		return apperrors.NewAppError(422, err.Error(), apperrors.ErrValidation)
	}
	return nil
}

// CreateSalesOrder validates the request, computes the rollups and persists
// the order atomically. PreviousDue and Due are finalized by the repository
// under the customer lock.
func (s *salesOrderService) CreateSalesOrder(ctx context.Context, req dto.CreateSalesOrderRequest, creatorUserID string) (*domain.SalesOrder, error) {
	if req.OrderDate.IsZero() {
		return nil, apperrors.NewAppError(422, ErrOrderDateRequired.Error(), apperrors.ErrValidation)
	}

	lines, quantities, err := buildOrderLines(req.Items)
	if err != nil {
		return nil, err
	}
	subTotal, total, err := computeTotals(lines, req.DiscountType, req.DiscountValue, req.ShippingCharges, req.Adjustment)
	if err != nil {
		return nil, err
	}
	if err := validatePayment(req.Payment, total); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := domain.SalesOrder{
		SalesOrderID:         uuid.NewString(),
		CustomerID:           req.CustomerID,
		Reference:            req.Reference,
		OrderDate:            req.OrderDate,
		ExpectedShipmentDate: req.ExpectedShipmentDate,
		PaymentTerms:         req.PaymentTerms,
		DeliveryMethod:       req.DeliveryMethod,
		SalesPerson:          req.SalesPerson,
		Lines:                lines,
		SubTotal:             subTotal,
		DiscountType:         req.DiscountType,
		DiscountValue:        req.DiscountValue,
		ShippingCharges:      req.ShippingCharges,
		Adjustment:           req.Adjustment,
		Total:                total,
		Payment:              req.Payment,
		CustomerNotes:        req.CustomerNotes,
		Status:               domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	created, err := s.orderRepo.CreateOrder(ctx, order, quantities)
	if err != nil {
		s.LogError(ctx, err, "Failed to create sales order", "customer_id", req.CustomerID)
		return nil, err
	}

	s.LogInfo(ctx, "Sales order created", "sales_order_id", created.SalesOrderID, "order_number", created.OrderNumber)
	return created, nil
}

// GetSalesOrderByID retrieves an order with its lines.
func (s *salesOrderService) GetSalesOrderByID(ctx context.Context, orderID string) (*domain.SalesOrder, error) {
	return s.orderRepo.FindOrderByID(ctx, orderID)
}

// ListSalesOrders retrieves a filtered page of orders with aggregates.
func (s *salesOrderService) ListSalesOrders(ctx context.Context, params dto.ListSalesOrdersParams) (*dto.ListSalesOrdersResponse, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	orders, nextToken, agg, err := s.orderRepo.ListOrders(ctx, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales orders")
		return nil, err
	}
	resp := dto.ToListSalesOrdersResponse(orders, nextToken, agg)
	return &resp, nil
}

// UpdateSalesOrder applies a partial update to a Draft or Confirmed order.
// When the line set changes, stock is reconciled through net per-item deltas
// so unchanged quantities never touch inventory.
func (s *salesOrderService) UpdateSalesOrder(ctx context.Context, orderID string, req dto.UpdateSalesOrderRequest, requestingUserID string) (*domain.SalesOrder, error) {
	existing, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing.Status != domain.Draft && existing.Status != domain.Confirmed {
		return nil, apperrors.NewAppError(409, ErrOrderNotEditable.Error(), apperrors.ErrConflict)
	}

	order := *existing
	if req.Reference != nil {
		order.Reference = *req.Reference
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}
	if req.ExpectedShipmentDate != nil {
		order.ExpectedShipmentDate = req.ExpectedShipmentDate
	}
	if req.PaymentTerms != nil {
		order.PaymentTerms = *req.PaymentTerms
	}
	if req.DeliveryMethod != nil {
		order.DeliveryMethod = *req.DeliveryMethod
	}
	if req.SalesPerson != nil {
		order.SalesPerson = *req.SalesPerson
	}
	if req.DiscountType != nil {
		order.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		order.DiscountValue = *req.DiscountValue
	}
	if req.ShippingCharges != nil {
		order.ShippingCharges = *req.ShippingCharges
	}
	if req.Adjustment != nil {
		order.Adjustment = *req.Adjustment
	}
	if req.Payment != nil {
		order.Payment = *req.Payment
	}
	if req.CustomerNotes != nil {
		order.CustomerNotes = *req.CustomerNotes
	}

	quantityDeltas := map[string]int64{}
	if req.Items != nil {
		newLines, newQuantities, err := buildOrderLines(req.Items)
		if err != nil {
			return nil, err
		}
		order.Lines = newLines

		oldQuantities := make(map[string]int64, len(existing.Lines))
		for _, l := range existing.Lines {
			oldQuantities[l.ItemID] += l.Quantity
		}
		// Positive delta restores stock, negative reserves more.
		for itemID, oldQty := range oldQuantities {
			quantityDeltas[itemID] = oldQty - newQuantities[itemID]
		}
		for itemID, newQty := range newQuantities {
			if _, seen := oldQuantities[itemID]; !seen {
				quantityDeltas[itemID] = -newQty
			}
		}
	}

	subTotal, total, err := computeTotals(order.Lines, order.DiscountType, order.DiscountValue, order.ShippingCharges, order.Adjustment)
	if err != nil {
		return nil, err
	}
	if err := validatePayment(order.Payment, total); err != nil {
		return nil, err
	}
	order.SubTotal = subTotal
	order.Total = total
	order.Due = order.Total.Sub(order.Payment).Add(order.PreviousDue)
	order.LastUpdatedAt = time.Now().UTC()
	order.LastUpdatedBy = requestingUserID

	dueDelta := order.Outstanding().Sub(existing.Outstanding())

	updated, err := s.orderRepo.UpdateOrder(ctx, order, quantityDeltas, dueDelta)
	if err != nil {
		s.LogError(ctx, err, "Failed to update sales order", "sales_order_id", orderID)
		return nil, err
	}

	s.LogInfo(ctx, "Sales order updated", "sales_order_id", orderID, "due_delta", dueDelta.String())
	return updated, nil
}

// UpdateOrderStatus advances the order through the status machine. Moving to
// Cancelled routes through the compensating cancellation path.
func (s *salesOrderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, requestingUserID string) (*domain.SalesOrder, error) {
	if status == domain.Cancelled {
		return s.CancelSalesOrder(ctx, orderID, requestingUserID)
	}

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		s.LogWarn(ctx, "Rejected status transition", "sales_order_id", orderID, "from", string(order.Status), "to", string(status))
		return nil, apperrors.NewAppError(409, ErrInvalidTransition.Error()+": "+string(order.Status)+" -> "+string(status), apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, order.Status, status, requestingUserID, now); err != nil {
		return nil, err
	}

	order.Status = status
	order.LastUpdatedAt = now
	order.LastUpdatedBy = requestingUserID
	s.LogInfo(ctx, "Sales order status updated", "sales_order_id", orderID, "status", string(status))
	return order, nil
}

// CancelSalesOrder cancels an order, restoring stock and customer due.
func (s *salesOrderService) CancelSalesOrder(ctx context.Context, orderID string, requestingUserID string) (*domain.SalesOrder, error) {
	order, err := s.orderRepo.CancelOrder(ctx, orderID, requestingUserID, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to cancel sales order", "sales_order_id", orderID)
		return nil, err
	}
	s.LogInfo(ctx, "Sales order cancelled", "sales_order_id", orderID, "order_number", order.OrderNumber)
	return order, nil
}

// DeleteSalesOrder removes an order entirely. The repository compensates
// stock and dues first unless the order is already cancelled.
func (s *salesOrderService) DeleteSalesOrder(ctx context.Context, orderID string, requestingUserID string) error {
	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		s.LogError(ctx, err, "Failed to delete sales order", "sales_order_id", orderID)
		return err
	}
	s.LogInfo(ctx, "Sales order deleted", "sales_order_id", orderID)
	return nil
}
