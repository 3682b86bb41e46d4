package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
	"github.com/stocknest/stocknest_backend/internal/dto"
	"github.com/stocknest/stocknest_backend/internal/middleware"
)

// dashboardHandler serves the analytics endpoints.
type dashboardHandler struct {
	reportingService portssvc.ReportingService
}

func newDashboardHandler(rs portssvc.ReportingService) *dashboardHandler {
	return &dashboardHandler{reportingService: rs}
}

// registerDashboardRoutes registers the dashboard routes. Access requires the
// dashboard permission (admins and managers hold it implicitly).
func registerDashboardRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newDashboardHandler(reportingService)
	canView := middleware.RequirePermission(domain.PermDashboard)

	dashboard := rg.Group("/dashboard", canView)
	{
		dashboard.GET("/summary", h.getSummary)
		dashboard.GET("/summary/range", h.getSummaryRange)
	}
}

// getSummary godoc
// @Summary Dashboard summary
// @Description Returns entity counts, revenue over Confirmed/Shipped/Delivered
// @Description orders, recent orders, a six-month sales series, top customers,
// @Description top items and a per-status breakdown.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *dashboardHandler) getSummary(c *gin.Context) {
	summary, err := h.reportingService.GetDashboardSummary(c.Request.Context(), nil, nil)
	if err != nil {
		respondError(c, err, "Failed to build dashboard summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(summary))
}

// getSummaryRange godoc
// @Summary Dashboard summary for a date range
// @Description Same payload as /summary, bounded to the given order date window.
// @Tags dashboard
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "from after to"
// @Security BearerAuth
// @Router /dashboard/summary/range [get]
func (h *dashboardHandler) getSummaryRange(c *gin.Context) {
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindingError(c, err)
		return
	}

	summary, err := h.reportingService.GetDashboardSummary(c.Request.Context(), params.FromDate, params.ToDate)
	if err != nil {
		respondError(c, err, "Failed to build dashboard summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(summary))
}
