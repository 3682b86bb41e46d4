package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder is the sales_orders table row.
type SalesOrder struct {
	SalesOrderID         string          `db:"sales_order_id"`
	OrderNumber          string          `db:"order_number"`
	CustomerID           string          `db:"customer_id"`
	CustomerName         string          `db:"customer_name"` // joined, not a column
	Reference            string          `db:"reference"`
	OrderDate            time.Time       `db:"order_date"`
	ExpectedShipmentDate *time.Time      `db:"expected_shipment_date"`
	PaymentTerms         string          `db:"payment_terms"`
	DeliveryMethod       string          `db:"delivery_method"`
	SalesPerson          string          `db:"sales_person"`
	SubTotal             decimal.Decimal `db:"sub_total"`
	DiscountType         string          `db:"discount_type"`
	DiscountValue        decimal.Decimal `db:"discount_value"`
	ShippingCharges      decimal.Decimal `db:"shipping_charges"`
	Adjustment           decimal.Decimal `db:"adjustment"`
	Total                decimal.Decimal `db:"total"`
	Payment              decimal.Decimal `db:"payment"`
	PreviousDue          decimal.Decimal `db:"previous_due"`
	Due                  decimal.Decimal `db:"due"`
	CustomerNotes        string          `db:"customer_notes"`
	Status               string          `db:"status"`
	AuditFields
}

// SalesOrderLine is the sales_order_items table row.
type SalesOrderLine struct {
	SalesOrderID string          `db:"sales_order_id"`
	LineNo       int             `db:"line_no"`
	ItemID       string          `db:"item_id"`
	ItemName     string          `db:"item_name"` // joined, not a column
	Quantity     int64           `db:"quantity"`
	Rate         decimal.Decimal `db:"rate"`
	Discount     decimal.Decimal `db:"discount"`
	Amount       decimal.Decimal `db:"amount"`
}
