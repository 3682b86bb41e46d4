package services

import (
	"context"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
	"github.com/stocknest/stocknest_backend/internal/dto"
)

// ItemReaderSvc defines read operations for item data
type ItemReaderSvc interface {
	// GetItemByID retrieves a specific item by ID.
	GetItemByID(ctx context.Context, itemID string) (*domain.Item, error)

	// ListItems retrieves a filtered, paginated list of items.
	ListItems(ctx context.Context, params dto.ListItemsParams) (*dto.ListItemsResponse, error)

	// ListLowStockItems retrieves active items at or below their reorder point.
	ListLowStockItems(ctx context.Context, limit int) ([]domain.Item, error)
}

// ItemWriterSvc defines write operations for item data
type ItemWriterSvc interface {
	// CreateItem creates a new inventory item.
	CreateItem(ctx context.Context, req dto.CreateItemRequest, creatorUserID string) (*domain.Item, error)

	// UpdateItem updates an existing item's details (not its quantity).
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, requestingUserID string) (*domain.Item, error)

	// AdjustStock applies a manual stock delta with an audit reason.
	AdjustStock(ctx context.Context, itemID string, req dto.AdjustStockRequest, requestingUserID string) (*domain.Item, error)

	// DeactivateItem marks an item as inactive.
	DeactivateItem(ctx context.Context, itemID string, requestingUserID string) error
}

// ItemSvcFacade combines all item-related service interfaces
type ItemSvcFacade interface {
	ItemReaderSvc
	ItemWriterSvc
}
