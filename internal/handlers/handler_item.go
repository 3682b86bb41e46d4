package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
	"github.com/stocknest/stocknest_backend/internal/dto"
	"github.com/stocknest/stocknest_backend/internal/middleware"
)

// itemHandler handles HTTP requests related to inventory items.
type itemHandler struct {
	itemService portssvc.ItemSvcFacade
}

func newItemHandler(is portssvc.ItemSvcFacade) *itemHandler {
	return &itemHandler{itemService: is}
}

// registerItemRoutes registers all item-related routes. Writes require the
// item permission (admins and managers hold it implicitly).
func registerItemRoutes(rg *gin.RouterGroup, itemService portssvc.ItemSvcFacade) {
	h := newItemHandler(itemService)
	canWrite := middleware.RequirePermission(domain.PermItem)

	items := rg.Group("/items")
	{
		items.POST("", canWrite, h.createItem)
		items.GET("", h.listItems)
		items.GET("/low-stock", h.listLowStockItems)
		items.GET("/:id", h.getItem)
		items.PATCH("/:id", canWrite, h.updateItem)
		items.PATCH("/:id/stock", canWrite, h.adjustStock)
		items.DELETE("/:id", canWrite, h.deactivateItem)
	}
}

// createItem godoc
// @Summary Create a new item
// @Tags items
// @Accept json
// @Produce json
// @Param item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /items [post]
func (h *itemHandler) createItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// listItems godoc
// @Summary List items
// @Description Retrieves active items with search, price range filter and offset pagination.
// @Tags items
// @Produce json
// @Param searchTerm query string false "Match against name or SKU"
// @Param minPrice query number false "Minimum selling price"
// @Param maxPrice query number false "Maximum selling price"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListItemsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /items [get]
func (h *itemHandler) listItems(c *gin.Context) {
	var params dto.ListItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.itemService.ListItems(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list items")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listLowStockItems godoc
// @Summary List low stock items
// @Description Retrieves active items whose quantity is at or below their reorder point.
// @Tags items
// @Produce json
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {object} dto.ListItemsResponse
// @Security BearerAuth
// @Router /items/low-stock [get]
func (h *itemHandler) listLowStockItems(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "Invalid limit"))
		return
	}

	items, err := h.itemService.ListLowStockItems(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Failed to list low stock items")
		return
	}

	responses := make([]dto.ItemResponse, len(items))
	for i := range items {
		responses[i] = dto.ToItemResponse(&items[i])
	}
	c.JSON(http.StatusOK, gin.H{"items": responses})
}

// getItem godoc
// @Summary Get an item by ID
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /items/{id} [get]
func (h *itemHandler) getItem(c *gin.Context) {
	item, err := h.itemService.GetItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// updateItem godoc
// @Summary Update an item
// @Description Applies a partial update to item details. Quantity is not
// @Description editable here; stock moves through orders or the stock endpoint.
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param item body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /items/{id} [patch]
func (h *itemHandler) updateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// adjustStock godoc
// @Summary Adjust item stock
// @Description Applies a manual signed stock delta with an audit reason.
// @Description Rejected when the delta would take quantity below zero.
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param adjustment body dto.AdjustStockRequest true "Stock delta and reason"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} ErrorResponse "Insufficient stock"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /items/{id}/stock [patch]
func (h *itemHandler) adjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	item, err := h.itemService.AdjustStock(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to adjust stock")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// deactivateItem godoc
// @Summary Deactivate an item
// @Description Soft-deactivates an item so it cannot appear on new orders.
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /items/{id} [delete]
func (h *itemHandler) deactivateItem(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	if err := h.itemService.DeactivateItem(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondError(c, err, "Failed to deactivate item")
		return
	}
	c.Status(http.StatusNoContent)
}
