package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
	"github.com/stocknest/stocknest_backend/internal/dto"
)

// ItemReader defines read operations for item data
type ItemReader interface {
	// FindItemByID retrieves a specific item by its ID.
	FindItemByID(ctx context.Context, itemID string) (*domain.Item, error)

	// ListItems retrieves a filtered, paginated list of items along with the
	// total count matching the filter.
	ListItems(ctx context.Context, params dto.ListItemsParams) ([]domain.Item, int64, error)

	// ListLowStockItems retrieves active items whose quantity is at or below
	// their reorder point.
	ListLowStockItems(ctx context.Context, limit int) ([]domain.Item, error)
}

// ItemWriter defines write operations for item data
type ItemWriter interface {
	// SaveItem persists a new item.
	SaveItem(ctx context.Context, item domain.Item) error

	// UpdateItem updates an existing item's details (not its quantity).
	UpdateItem(ctx context.Context, item domain.Item) error

	// AdjustStock applies a manual quantity delta and returns the updated item.
	// Fails with ErrInsufficientStock if the delta would take quantity negative.
	AdjustStock(ctx context.Context, itemID string, delta int64, updatedBy string, updatedAt time.Time) (*domain.Item, error)

	// DeactivateItem marks an item as inactive (soft delete).
	DeactivateItem(ctx context.Context, itemID string, deactivatedBy string, deactivatedAt time.Time) error
}

// ItemTxOperator defines item operations that run inside an existing database
// transaction, used by the order workflow.
type ItemTxOperator interface {
	// FindItemsByIDsForUpdate locks the item rows in a deterministic order and
	// returns them keyed by item ID. Missing IDs yield ErrNotFound.
	FindItemsByIDsForUpdate(ctx context.Context, tx pgx.Tx, itemIDs []string) (map[string]domain.Item, error)

	// ApplyQuantityDeltasInTx adjusts stock levels by the given per-item deltas.
	// Negative deltas reserve stock, positive deltas restore it.
	ApplyQuantityDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]int64, updatedBy string, updatedAt time.Time) error
}

// ItemRepositoryFacade combines all item-related repository interfaces
// This is a facade for clients that need access to all operations
type ItemRepositoryFacade interface {
	ItemReader
	ItemWriter
	ItemTxOperator
}
