package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
	"github.com/stocknest/stocknest_backend/internal/dto"
	"github.com/stocknest/stocknest_backend/internal/middleware"
)

// salesOrderHandler handles HTTP requests for the order fulfillment workflow.
type salesOrderHandler struct {
	orderService portssvc.SalesOrderSvcFacade
}

func newSalesOrderHandler(os portssvc.SalesOrderSvcFacade) *salesOrderHandler {
	return &salesOrderHandler{orderService: os}
}

// registerSalesOrderRoutes registers the sales order routes. Creating and
// reading require the sales permission; edits and status changes are limited
// to admins and managers, deletion to admins.
func registerSalesOrderRoutes(rg *gin.RouterGroup, orderService portssvc.SalesOrderSvcFacade) {
	h := newSalesOrderHandler(orderService)
	canSell := middleware.RequirePermission(domain.PermSales)
	managerUp := middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	orders := rg.Group("/sales-orders")
	{
		orders.POST("", canSell, h.createSalesOrder)
		orders.GET("", canSell, h.listSalesOrders)
		orders.GET("/:id", canSell, h.getSalesOrder)
		orders.PATCH("/:id", managerUp, h.updateSalesOrder)
		orders.PATCH("/:id/status", managerUp, h.updateOrderStatus)
		orders.DELETE("/:id", adminOnly, h.deleteSalesOrder)
	}
}

// createSalesOrder godoc
// @Summary Create a sales order
// @Description Creates an order atomically: stock is reserved, the order number
// @Description generated and the customer's due updated in one transaction.
// @Description Any failure leaves no partial mutation.
// @Tags sales-orders
// @Accept json
// @Produce json
// @Param order body dto.CreateSalesOrderRequest true "Order details"
// @Success 201 {object} dto.SalesOrderResponse
// @Failure 400 {object} ErrorResponse "Validation failure or insufficient stock"
// @Failure 404 {object} ErrorResponse "Unknown customer or item"
// @Failure 422 {object} ErrorResponse "Inactive customer or item"
// @Security BearerAuth
// @Router /sales-orders [post]
func (h *salesOrderHandler) createSalesOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	order, err := h.orderService.CreateSalesOrder(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create sales order")
		return
	}

	logger.Info("Sales order created",
		slog.String("sales_order_id", order.SalesOrderID),
		slog.String("order_number", order.OrderNumber))
	c.JSON(http.StatusCreated, dto.ToSalesOrderResponse(order))
}

// listSalesOrders godoc
// @Summary List sales orders
// @Description Retrieves a token-paginated page of orders, newest first, with
// @Description financial aggregates over the full filtered set.
// @Tags sales-orders
// @Produce json
// @Param searchTerm query string false "Match against order number or customer name"
// @Param status query string false "Filter by status" Enums(Draft, Confirmed, Shipped, Delivered, Cancelled)
// @Param customerID query string false "Filter by customer"
// @Param fromDate query string false "Order date lower bound (YYYY-MM-DD)"
// @Param toDate query string false "Order date upper bound (YYYY-MM-DD)"
// @Param minTotal query number false "Order total lower bound"
// @Param maxTotal query number false "Order total upper bound"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Continuation token from the previous page"
// @Success 200 {object} dto.ListSalesOrdersResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales-orders [get]
func (h *salesOrderHandler) listSalesOrders(c *gin.Context) {
	var params dto.ListSalesOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.orderService.ListSalesOrders(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list sales orders")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getSalesOrder godoc
// @Summary Get a sales order by ID
// @Description Retrieves an order with all of its lines.
// @Tags sales-orders
// @Produce json
// @Param id path string true "Sales order ID"
// @Success 200 {object} dto.SalesOrderResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales-orders/{id} [get]
func (h *salesOrderHandler) getSalesOrder(c *gin.Context) {
	order, err := h.orderService.GetSalesOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve sales order")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalesOrderResponse(order))
}

// updateSalesOrder godoc
// @Summary Update a sales order
// @Description Applies a partial update to a Draft or Confirmed order. When
// @Description lines change, stock is reconciled by net per-item deltas and the
// @Description customer due adjusted, all in one transaction.
// @Tags sales-orders
// @Accept json
// @Produce json
// @Param id path string true "Sales order ID"
// @Param order body dto.UpdateSalesOrderRequest true "Fields to update"
// @Success 200 {object} dto.SalesOrderResponse
// @Failure 400 {object} ErrorResponse "Validation failure or insufficient stock"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order is not editable in its current status"
// @Security BearerAuth
// @Router /sales-orders/{id} [patch]
func (h *salesOrderHandler) updateSalesOrder(c *gin.Context) {
	var req dto.UpdateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	order, err := h.orderService.UpdateSalesOrder(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update sales order")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalesOrderResponse(order))
}

// updateOrderStatus godoc
// @Summary Change order status
// @Description Advances the order through the status machine (forward only).
// @Description Setting Cancelled restores stock and reverses the customer due
// @Description exactly once.
// @Tags sales-orders
// @Accept json
// @Produce json
// @Param id path string true "Sales order ID"
// @Param status body dto.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} dto.SalesOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transition not permitted"
// @Security BearerAuth
// @Router /sales-orders/{id}/status [patch]
func (h *salesOrderHandler) updateOrderStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalesOrderResponse(order))
}

// deleteSalesOrder godoc
// @Summary Delete a sales order
// @Description Deletes an order. Unless already cancelled, stock and customer
// @Description due are compensated first, then the order and its lines removed.
// @Tags sales-orders
// @Produce json
// @Param id path string true "Sales order ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales-orders/{id} [delete]
func (h *salesOrderHandler) deleteSalesOrder(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, newErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	if err := h.orderService.DeleteSalesOrder(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondError(c, err, "Failed to delete sales order")
		return
	}
	c.Status(http.StatusNoContent)
}
