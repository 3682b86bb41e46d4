package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
	"github.com/stocknest/stocknest_backend/internal/core/services"
	"github.com/stocknest/stocknest_backend/internal/dto"
)

type ItemServiceTestSuite struct {
	suite.Suite
	mockRepo *MockItemRepository
	service  portssvc.ItemSvcFacade
}

func (suite *ItemServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockItemRepository)
	suite.service = services.NewItemService(suite.mockRepo)
}

func (suite *ItemServiceTestSuite) TestCreateItem_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateItemRequest{
		Name:         "A4 Paper 80gsm",
		SKU:          "PAP-A4-80",
		Unit:         "ream",
		SellingPrice: dec("5.40"),
		CostPrice:    dec("4.10"),
		Quantity:     120,
		ReorderPoint: 20,
	}

	suite.mockRepo.On("SaveItem", ctx, mock.MatchedBy(func(i domain.Item) bool {
		return i.SKU == req.SKU &&
			i.Quantity == 120 &&
			i.IsActive &&
			i.CreatedBy == creatorUserID
	})).Return(nil).Once()

	created, err := suite.service.CreateItem(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.ItemID)
	suite.Equal(req.Name, created.Name)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestCreateItem_WithoutSKU() {
	ctx := context.Background()
	req := dto.CreateItemRequest{
		Name:         "Loose Jute Twine",
		Unit:         "kg",
		SellingPrice: dec("2.00"),
	}

	suite.mockRepo.On("SaveItem", ctx, mock.MatchedBy(func(i domain.Item) bool {
		return i.SKU == "" && i.Name == req.Name
	})).Return(nil).Once()

	created, err := suite.service.CreateItem(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Empty(created.SKU)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestCreateItem_NegativePrice() {
	ctx := context.Background()
	req := dto.CreateItemRequest{
		Name:         "A4 Paper 80gsm",
		SKU:          "PAP-A4-80",
		Unit:         "ream",
		SellingPrice: dec("-1.00"),
		CostPrice:    dec("4.10"),
	}

	created, err := suite.service.CreateItem(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveItem", mock.Anything, mock.Anything)
}

func (suite *ItemServiceTestSuite) TestUpdateItem_NegativeReorderPoint() {
	ctx := context.Background()
	itemID := uuid.NewString()
	existing := &domain.Item{
		ItemID:       itemID,
		Name:         "A4 Paper 80gsm",
		SellingPrice: dec("5.40"),
		CostPrice:    dec("4.10"),
		IsActive:     true,
	}

	suite.mockRepo.On("FindItemByID", ctx, itemID).Return(existing, nil).Once()

	bad := int64(-5)
	updated, err := suite.service.UpdateItem(ctx, itemID, dto.UpdateItemRequest{ReorderPoint: &bad}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateItem", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestAdjustStock_ZeroDelta() {
	ctx := context.Background()
	itemID := uuid.NewString()

	item, err := suite.service.AdjustStock(ctx, itemID, dto.AdjustStockRequest{Delta: 0, Reason: "recount"}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "AdjustStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ItemServiceTestSuite) TestAdjustStock_AppliesDelta() {
	ctx := context.Background()
	itemID := uuid.NewString()
	requesterID := uuid.NewString()
	adjusted := &domain.Item{ItemID: itemID, Quantity: 95}

	suite.mockRepo.On("AdjustStock", ctx, itemID, int64(-5), requesterID, mock.AnythingOfType("time.Time")).
		Return(adjusted, nil).Once()

	item, err := suite.service.AdjustStock(ctx, itemID, dto.AdjustStockRequest{Delta: -5, Reason: "damaged in transit"}, requesterID)

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.Equal(int64(95), item.Quantity)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestAdjustStock_InsufficientStock() {
	ctx := context.Background()
	itemID := uuid.NewString()

	suite.mockRepo.On("AdjustStock", ctx, itemID, int64(-500), mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.NewAppError(400, "insufficient stock", apperrors.ErrInsufficientStock)).Once()

	item, err := suite.service.AdjustStock(ctx, itemID, dto.AdjustStockRequest{Delta: -500, Reason: "bulk issue"}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(item)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ItemServiceTestSuite) TestListLowStockItems_PassesLimit() {
	ctx := context.Background()
	low := []domain.Item{{ItemID: uuid.NewString(), Quantity: 2, ReorderPoint: 10}}

	suite.mockRepo.On("ListLowStockItems", ctx, 25).Return(low, nil).Once()

	items, err := suite.service.ListLowStockItems(ctx, 25)

	suite.Require().NoError(err)
	suite.Len(items, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestItemServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ItemServiceTestSuite))
}
