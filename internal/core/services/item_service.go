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
)

var (
	ErrNegativePrice = errors.New("item prices must not be negative")
	ErrZeroDelta     = errors.New("stock adjustment delta must not be zero")
)

// itemService provides inventory item operations on top of the item repository.
type itemService struct {
	BaseService
	itemRepo portsrepo.ItemRepositoryFacade
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo portsrepo.ItemRepositoryFacade) portssvc.ItemSvcFacade {
	return &itemService{itemRepo: itemRepo}
}

// Ensure itemService implements the portssvc.ItemSvcFacade interface
var _ portssvc.ItemSvcFacade = (*itemService)(nil)

func validatePrices(selling, cost decimal.Decimal) error {
	if selling.IsNegative() || cost.IsNegative() {
		return apperrors.NewAppError(422, ErrNegativePrice.Error(), apperrors.ErrValidation)
	}
	return nil
}

// CreateItem creates a new inventory item.
func (s *itemService) CreateItem(ctx context.Context, req dto.CreateItemRequest, creatorUserID string) (*domain.Item, error) {
	if err := validatePrices(req.SellingPrice, req.CostPrice); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := domain.Item{
		ItemID:       uuid.NewString(),
		Name:         req.Name,
		SKU:          req.SKU,
		Unit:         req.Unit,
		Description:  req.Description,
		SellingPrice: req.SellingPrice,
		CostPrice:    req.CostPrice,
		Quantity:     req.Quantity,
		ReorderPoint: req.ReorderPoint,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.itemRepo.SaveItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save item", "item_id", item.ItemID, "sku", item.SKU)
		return nil, err
	}

	s.LogInfo(ctx, "Item created", "item_id", item.ItemID, "sku", item.SKU)
	return &item, nil
}

// GetItemByID retrieves a specific item by ID.
func (s *itemService) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.itemRepo.FindItemByID(ctx, itemID)
}

// ListItems retrieves a filtered, paginated list of items.
func (s *itemService) ListItems(ctx context.Context, params dto.ListItemsParams) (*dto.ListItemsResponse, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	items, total, err := s.itemRepo.ListItems(ctx, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to list items")
		return nil, err
	}
	resp := dto.ToListItemsResponse(items, total, params.Limit, params.Offset)
	return &resp, nil
}

// ListLowStockItems retrieves active items at or below their reorder point.
func (s *itemService) ListLowStockItems(ctx context.Context, limit int) ([]domain.Item, error) {
	return s.itemRepo.ListLowStockItems(ctx, limit)
}

// UpdateItem applies a partial update to an existing item.
func (s *itemService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, requestingUserID string) (*domain.Item, error) {
	item, err := s.itemRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.SellingPrice != nil {
		item.SellingPrice = *req.SellingPrice
	}
	if req.CostPrice != nil {
		item.CostPrice = *req.CostPrice
	}
	if req.ReorderPoint != nil {
		item.ReorderPoint = *req.ReorderPoint
	}

	if err := validatePrices(item.SellingPrice, item.CostPrice); err != nil {
		return nil, err
	}
	if item.ReorderPoint < 0 {
		return nil, apperrors.NewAppError(422, "reorder point must not be negative", apperrors.ErrValidation)
	}

	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = requestingUserID

	if err := s.itemRepo.UpdateItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update item", "item_id", itemID)
		return nil, err
	}
	return item, nil
}

// AdjustStock applies a manual stock delta with an audit reason.
func (s *itemService) AdjustStock(ctx context.Context, itemID string, req dto.AdjustStockRequest, requestingUserID string) (*domain.Item, error) {
	if req.Delta == 0 {
		return nil, apperrors.NewAppError(422, ErrZeroDelta.Error(), apperrors.ErrValidation)
	}

	item, err := s.itemRepo.AdjustStock(ctx, itemID, req.Delta, requestingUserID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Stock adjusted", "item_id", itemID, "delta", req.Delta, "reason", req.Reason, "quantity", item.Quantity)
	return item, nil
}

// DeactivateItem marks an item as inactive.
func (s *itemService) DeactivateItem(ctx context.Context, itemID string, requestingUserID string) error {
	return s.itemRepo.DeactivateItem(ctx, itemID, requestingUserID, time.Now().UTC())
}
