package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

// OrderLineRequest defines one line of a sales order as submitted by the client.
// Amount is never accepted from the client; it is recomputed server-side.
type OrderLineRequest struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity int64           `json:"quantity" binding:"required,min=1"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
	Discount decimal.Decimal `json:"discount"`
}

// CreateSalesOrderRequest defines the data needed to create a new sales order.
type CreateSalesOrderRequest struct {
	CustomerID           string              `json:"customerID" binding:"required"`
	Reference            string              `json:"reference"`
	OrderDate            time.Time           `json:"orderDate" binding:"required"`
	ExpectedShipmentDate *time.Time          `json:"expectedShipmentDate"`
	PaymentTerms         string              `json:"paymentTerms"`
	DeliveryMethod       string              `json:"deliveryMethod"`
	SalesPerson          string              `json:"salesPerson"`
	Items                []OrderLineRequest  `json:"items" binding:"required,min=1,dive"`
	DiscountType         domain.DiscountType `json:"discountType" binding:"omitempty,oneof=percentage amount"`
	DiscountValue        decimal.Decimal     `json:"discountValue"`
	ShippingCharges      decimal.Decimal     `json:"shippingCharges"`
	Adjustment           decimal.Decimal     `json:"adjustment"`
	Payment              decimal.Decimal     `json:"payment"`
	CustomerNotes        string              `json:"customerNotes"`
}

// UpdateSalesOrderRequest defines the data allowed for updating a sales order.
// Items, when present, replaces the full line set; stock is reconciled via
// net per-item deltas against the stored lines.
type UpdateSalesOrderRequest struct {
	Reference            *string              `json:"reference"`
	OrderDate            *time.Time           `json:"orderDate"`
	ExpectedShipmentDate *time.Time           `json:"expectedShipmentDate"`
	PaymentTerms         *string              `json:"paymentTerms"`
	DeliveryMethod       *string              `json:"deliveryMethod"`
	SalesPerson          *string              `json:"salesPerson"`
	Items                []OrderLineRequest   `json:"items" binding:"omitempty,min=1,dive"`
	DiscountType         *domain.DiscountType `json:"discountType" binding:"omitempty,oneof=percentage amount"`
	DiscountValue        *decimal.Decimal     `json:"discountValue"`
	ShippingCharges      *decimal.Decimal     `json:"shippingCharges"`
	Adjustment           *decimal.Decimal     `json:"adjustment"`
	Payment              *decimal.Decimal     `json:"payment"`
	CustomerNotes        *string              `json:"customerNotes"`
}

// UpdateOrderStatusRequest defines the payload for advancing an order's status.
type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required,oneof=Draft Confirmed Shipped Delivered Cancelled"`
}

// OrderLineResponse defines one line of a sales order as returned to the client.
type OrderLineResponse struct {
	ItemID   string          `json:"itemID"`
	ItemName string          `json:"itemName"`
	Quantity int64           `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Discount decimal.Decimal `json:"discount"`
	Amount   decimal.Decimal `json:"amount"`
}

// SalesOrderResponse defines the data returned for a sales order.
type SalesOrderResponse struct {
	SalesOrderID         string              `json:"salesOrderID"`
	OrderNumber          string              `json:"orderNumber"`
	CustomerID           string              `json:"customerID"`
	CustomerName         string              `json:"customerName"`
	Reference            string              `json:"reference"`
	OrderDate            time.Time           `json:"orderDate"`
	ExpectedShipmentDate *time.Time          `json:"expectedShipmentDate"`
	PaymentTerms         string              `json:"paymentTerms"`
	DeliveryMethod       string              `json:"deliveryMethod"`
	SalesPerson          string              `json:"salesPerson"`
	Items                []OrderLineResponse `json:"items"`
	SubTotal             decimal.Decimal     `json:"subTotal"`
	DiscountType         domain.DiscountType `json:"discountType"`
	DiscountValue        decimal.Decimal     `json:"discountValue"`
	ShippingCharges      decimal.Decimal     `json:"shippingCharges"`
	Adjustment           decimal.Decimal     `json:"adjustment"`
	Total                decimal.Decimal     `json:"total"`
	Payment              decimal.Decimal     `json:"payment"`
	PreviousDue          decimal.Decimal     `json:"previousDue"`
	Due                  decimal.Decimal     `json:"due"`
	CustomerNotes        string              `json:"customerNotes"`
	Status               domain.OrderStatus  `json:"status"`
	CreatedAt            time.Time           `json:"createdAt"`
	CreatedBy            string              `json:"createdBy"`
	LastUpdatedAt        time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy        string              `json:"lastUpdatedBy"`
}

// ListSalesOrdersParams defines query parameters for listing sales orders.
// Pagination is token based: ordering by order_date DESC, created_at DESC.
type ListSalesOrdersParams struct {
	SearchTerm string           `form:"searchTerm"`
	Status     string           `form:"status" binding:"omitempty,oneof=Draft Confirmed Shipped Delivered Cancelled"`
	CustomerID string           `form:"customerID"`
	FromDate   *time.Time       `form:"fromDate" time_format:"2006-01-02"`
	ToDate     *time.Time       `form:"toDate" time_format:"2006-01-02"`
	MinTotal   *decimal.Decimal `form:"minTotal"`
	MaxTotal   *decimal.Decimal `form:"maxTotal"`
	Limit      int              `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string          `form:"nextToken"`
}

// SalesOrderAggregates carries the financial rollups over the full filtered
// result set, not just the returned page.
type SalesOrderAggregates struct {
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	TotalPayment decimal.Decimal `json:"totalPayment"`
	TotalDue     decimal.Decimal `json:"totalDue"`
	OrderCount   int64           `json:"orderCount"`
}

// ListSalesOrdersResponse wraps the page of orders, the next-page token and
// the aggregates over the filtered set.
type ListSalesOrdersResponse struct {
	Orders     []SalesOrderResponse `json:"orders"`
	NextToken  *string              `json:"nextToken,omitempty"`
	Aggregates SalesOrderAggregates `json:"aggregates"`
}

// ToOrderLineResponse converts a domain.OrderLine to its DTO.
func ToOrderLineResponse(l domain.OrderLine) OrderLineResponse {
	return OrderLineResponse{
		ItemID:   l.ItemID,
		ItemName: l.ItemName,
		Quantity: l.Quantity,
		Rate:     l.Rate,
		Discount: l.Discount,
		Amount:   l.Amount,
	}
}

// ToSalesOrderResponse converts a domain.SalesOrder to SalesOrderResponse DTO.
func ToSalesOrderResponse(o *domain.SalesOrder) SalesOrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = ToOrderLineResponse(l)
	}
	return SalesOrderResponse{
		SalesOrderID:         o.SalesOrderID,
		OrderNumber:          o.OrderNumber,
		CustomerID:           o.CustomerID,
		CustomerName:         o.CustomerName,
		Reference:            o.Reference,
		OrderDate:            o.OrderDate,
		ExpectedShipmentDate: o.ExpectedShipmentDate,
		PaymentTerms:         o.PaymentTerms,
		DeliveryMethod:       o.DeliveryMethod,
		SalesPerson:          o.SalesPerson,
		Items:                lines,
		SubTotal:             o.SubTotal,
		DiscountType:         o.DiscountType,
		DiscountValue:        o.DiscountValue,
		ShippingCharges:      o.ShippingCharges,
		Adjustment:           o.Adjustment,
		Total:                o.Total,
		Payment:              o.Payment,
		PreviousDue:          o.PreviousDue,
		Due:                  o.Due,
		CustomerNotes:        o.CustomerNotes,
		Status:               o.Status,
		CreatedAt:            o.CreatedAt,
		CreatedBy:            o.CreatedBy,
		LastUpdatedAt:        o.LastUpdatedAt,
		LastUpdatedBy:        o.LastUpdatedBy,
	}
}

// ToListSalesOrdersResponse converts a page of orders plus metadata to the list DTO.
func ToListSalesOrdersResponse(orders []domain.SalesOrder, nextToken *string, agg SalesOrderAggregates) ListSalesOrdersResponse {
	res := make([]SalesOrderResponse, len(orders))
	for i, o := range orders {
		res[i] = ToSalesOrderResponse(&o)
	}
	return ListSalesOrdersResponse{
		Orders:     res,
		NextToken:  nextToken,
		Aggregates: agg,
	}
}
