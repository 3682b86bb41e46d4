package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

// CreateItemRequest defines the data needed to create a new inventory item.
// SKU is optional but must be unique among items that carry one.
type CreateItemRequest struct {
	Name         string          `json:"name" binding:"required,min=2,max=100"`
	SKU          string          `json:"sku" binding:"omitempty,max=50"`
	Unit         string          `json:"unit" binding:"required"`
	Description  string          `json:"description"`
	SellingPrice decimal.Decimal `json:"sellingPrice" binding:"required"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	Quantity     int64           `json:"quantity" binding:"omitempty,min=0"`
	ReorderPoint int64           `json:"reorderPoint" binding:"omitempty,min=0"`
}

// UpdateItemRequest defines the data allowed for updating an item.
// Quantity is deliberately absent: stock moves only through orders or
// the explicit stock adjustment endpoint.
type UpdateItemRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=2,max=100"`
	Unit         *string          `json:"unit"`
	Description  *string          `json:"description"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	CostPrice    *decimal.Decimal `json:"costPrice"`
	ReorderPoint *int64           `json:"reorderPoint" binding:"omitempty,min=0"`
}

// AdjustStockRequest defines a manual stock adjustment (positive or negative delta).
type AdjustStockRequest struct {
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required,min=3,max=200"`
}

// ItemResponse defines the data returned for an item.
type ItemResponse struct {
	ItemID        string          `json:"itemID"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Unit          string          `json:"unit"`
	Description   string          `json:"description"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	Quantity      int64           `json:"quantity"`
	ReorderPoint  int64           `json:"reorderPoint"`
	IsLowStock    bool            `json:"isLowStock"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ListItemsParams defines query parameters for listing items.
type ListItemsParams struct {
	SearchTerm string           `form:"searchTerm"`
	MinPrice   *decimal.Decimal `form:"minPrice"`
	MaxPrice   *decimal.Decimal `form:"maxPrice"`
	Limit      int              `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset     int              `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ListItemsResponse wraps the list of items with paging metadata.
type ListItemsResponse struct {
	Items  []ItemResponse `json:"items"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ToItemResponse converts a domain.Item to ItemResponse DTO.
func ToItemResponse(it *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:        it.ItemID,
		Name:          it.Name,
		SKU:           it.SKU,
		Unit:          it.Unit,
		Description:   it.Description,
		SellingPrice:  it.SellingPrice,
		CostPrice:     it.CostPrice,
		Quantity:      it.Quantity,
		ReorderPoint:  it.ReorderPoint,
		IsLowStock:    it.IsLowStock(),
		IsActive:      it.IsActive,
		CreatedAt:     it.CreatedAt,
		CreatedBy:     it.CreatedBy,
		LastUpdatedAt: it.LastUpdatedAt,
		LastUpdatedBy: it.LastUpdatedBy,
	}
}

// ToListItemsResponse converts a slice of domain.Item plus paging info to the list DTO.
func ToListItemsResponse(items []domain.Item, total int64, limit, offset int) ListItemsResponse {
	res := make([]ItemResponse, len(items))
	for i, it := range items {
		res[i] = ToItemResponse(&it)
	}
	return ListItemsResponse{
		Items:  res,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
