package models

import "github.com/shopspring/decimal"

// Item is the items table row.
type Item struct {
	ItemID       string          `db:"item_id"`
	Name         string          `db:"name"`
	SKU          string          `db:"sku"`
	Unit         string          `db:"unit"`
	Description  string          `db:"description"`
	SellingPrice decimal.Decimal `db:"selling_price"`
	CostPrice    decimal.Decimal `db:"cost_price"`
	Quantity     int64           `db:"quantity"`
	ReorderPoint int64           `db:"reorder_point"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
