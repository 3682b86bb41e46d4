package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a sales order.
type OrderStatus string

const (
	Draft     OrderStatus = "Draft"
	Confirmed OrderStatus = "Confirmed"
	Shipped   OrderStatus = "Shipped"
	Delivered OrderStatus = "Delivered"
	Cancelled OrderStatus = "Cancelled"
)

// statusRank orders the forward progression. Cancelled and Delivered are terminal.
var statusRank = map[OrderStatus]int{
	Draft:     0,
	Confirmed: 1,
	Shipped:   2,
	Delivered: 3,
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	if s == Cancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == Cancelled || s == Delivered
}

// CanTransitionTo reports whether the status machine permits moving from s to
// next. Progression is strictly forward (Draft -> Confirmed -> Shipped ->
// Delivered, one step at a time); Cancelled is reachable from any
// non-terminal state and is itself terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() || !next.IsValid() {
		return false
	}
	if next == Cancelled {
		return true
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to == from+1
}

// DiscountType distinguishes order-level percentage discounts from flat amounts.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

// OrderLine is one entry within a sales order: a reference to an item, the
// reserved quantity, the unit rate, an optional flat line discount and the
// resulting line amount (quantity*rate - discount).
type OrderLine struct {
	ItemID   string          `json:"itemID"`
	ItemName string          `json:"itemName,omitempty"` // denormalized for listings
	Quantity int64           `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Discount decimal.Decimal `json:"discount"`
	Amount   decimal.Decimal `json:"amount"`
	LineNo   int             `json:"lineNo"`
}

// SalesOrder is the aggregate for the fulfillment workflow. Financial rollups
// obey subTotal = sum(line amounts), total = subTotal - discount + shipping +
// adjustment and due = total - payment + previousDue; all three are re-derived
// server-side on every write.
type SalesOrder struct {
	SalesOrderID         string          `json:"salesOrderID"`
	OrderNumber          string          `json:"orderNumber"`
	CustomerID           string          `json:"customerID"`
	CustomerName         string          `json:"customerName,omitempty"` // denormalized for listings
	Reference            string          `json:"reference,omitempty"`
	OrderDate            time.Time       `json:"orderDate"`
	ExpectedShipmentDate *time.Time      `json:"expectedShipmentDate,omitempty"`
	PaymentTerms         string          `json:"paymentTerms"`
	DeliveryMethod       string          `json:"deliveryMethod,omitempty"`
	SalesPerson          string          `json:"salesPerson,omitempty"`
	Lines                []OrderLine     `json:"lines"`
	SubTotal             decimal.Decimal `json:"subTotal"`
	DiscountType         DiscountType    `json:"discountType,omitempty"`
	DiscountValue        decimal.Decimal `json:"discountValue"`
	ShippingCharges      decimal.Decimal `json:"shippingCharges"`
	Adjustment           decimal.Decimal `json:"adjustment"`
	Total                decimal.Decimal `json:"total"`
	Payment              decimal.Decimal `json:"payment"`
	PreviousDue          decimal.Decimal `json:"previousDue"`
	Due                  decimal.Decimal `json:"due"`
	CustomerNotes        string          `json:"customerNotes,omitempty"`
	Status               OrderStatus     `json:"status"`
	AuditFields
}

// Outstanding is the order's net contribution to the customer's running due:
// what was billed minus what was paid. The Due field additionally folds in the
// customer's balance at creation time (PreviousDue) for statement display.
func (o SalesOrder) Outstanding() decimal.Decimal {
	return o.Total.Sub(o.Payment)
}

// OrderNumberPrefix returns the month-scoped order number prefix for a date,
// e.g. "SO2508" for August 2025.
func OrderNumberPrefix(orderDate time.Time) string {
	return fmt.Sprintf("SO%02d%02d", orderDate.Year()%100, int(orderDate.Month()))
}

// NextOrderNumber derives the next order number within a month from the
// highest existing number sharing the prefix. lastNumber is empty when the
// month has no orders yet; sequences start at 0001 and are four digits wide
// until they overflow, after which they simply grow.
func NextOrderNumber(lastNumber string, orderDate time.Time) string {
	prefix := OrderNumberPrefix(orderDate)
	seq := 0
	if len(lastNumber) > len(prefix) && lastNumber[:len(prefix)] == prefix {
		if n, err := strconv.Atoi(lastNumber[len(prefix):]); err == nil {
			seq = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1)
}
