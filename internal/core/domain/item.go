package domain

import "github.com/shopspring/decimal"

// Item represents a stocked product. Quantity is the available stock counter
// and must never go negative; it is adjusted under row locks by the
// sales-order workflow and manual stock adjustments.
type Item struct {
	ItemID       string          `json:"itemID"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku,omitempty"`
	Unit         string          `json:"unit"`
	Description  string          `json:"description,omitempty"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	Quantity     int64           `json:"quantity"`
	ReorderPoint int64           `json:"reorderPoint"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// IsLowStock reports whether the available quantity has fallen to or below
// the reorder point.
func (i Item) IsLowStock() bool {
	return i.ReorderPoint > 0 && i.Quantity <= i.ReorderPoint
}
