package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

// DashboardParams defines the optional reporting window for the dashboard.
type DashboardParams struct {
	FromDate *time.Time `form:"from" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to" time_format:"2006-01-02"`
}

// RecentOrderResponse is a compact order row for the dashboard feed.
type RecentOrderResponse struct {
	SalesOrderID string          `json:"salesOrderID"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	OrderDate    time.Time       `json:"orderDate"`
}

// MonthlySalesResponse is one point of the sales-over-time series.
type MonthlySalesResponse struct {
	Month string          `json:"month"` // YYYY-MM
	Total decimal.Decimal `json:"total"`
}

// TopCustomerResponse is one row of the top-customers ranking.
type TopCustomerResponse struct {
	CustomerID   string          `json:"customerID"`
	CustomerName string          `json:"customerName"`
	TotalOrders  int64           `json:"totalOrders"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
}

// TopItemResponse is one row of the top-items ranking.
type TopItemResponse struct {
	ItemID    string          `json:"itemID"`
	ItemName  string          `json:"itemName"`
	TotalSold int64           `json:"totalSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// StatusBreakdownResponse is order count and value per status.
type StatusBreakdownResponse struct {
	Status string          `json:"status"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// DashboardSummaryResponse aggregates everything the dashboard needs in one call.
type DashboardSummaryResponse struct {
	TotalCustomers int64                     `json:"totalCustomers"`
	TotalItems     int64                     `json:"totalItems"`
	TotalOrders    int64                     `json:"totalOrders"`
	TotalRevenue   decimal.Decimal           `json:"totalRevenue"`
	RecentOrders   []RecentOrderResponse     `json:"recentOrders"`
	SalesOverTime  []MonthlySalesResponse    `json:"salesOverTime"`
	TopCustomers   []TopCustomerResponse     `json:"topCustomers"`
	TopItems       []TopItemResponse         `json:"topItems"`
	SalesByStatus  []StatusBreakdownResponse `json:"salesByStatus"`
}

// ToDashboardSummaryResponse converts the domain summary to its DTO.
func ToDashboardSummaryResponse(s *domain.DashboardSummary) DashboardSummaryResponse {
	recent := make([]RecentOrderResponse, len(s.RecentOrders))
	for i, o := range s.RecentOrders {
		recent[i] = RecentOrderResponse{
			SalesOrderID: o.SalesOrderID,
			OrderNumber:  o.OrderNumber,
			CustomerName: o.CustomerName,
			Total:        o.Total,
			Status:       string(o.Status),
			OrderDate:    o.OrderDate,
		}
	}
	monthly := make([]MonthlySalesResponse, len(s.SalesOverTime))
	for i, m := range s.SalesOverTime {
		monthly[i] = MonthlySalesResponse{Month: m.Month, Total: m.Total}
	}
	customers := make([]TopCustomerResponse, len(s.TopCustomers))
	for i, c := range s.TopCustomers {
		customers[i] = TopCustomerResponse{
			CustomerID:   c.CustomerID,
			CustomerName: c.CustomerName,
			TotalOrders:  c.TotalOrders,
			TotalSpent:   c.TotalSpent,
		}
	}
	items := make([]TopItemResponse, len(s.TopItems))
	for i, it := range s.TopItems {
		items[i] = TopItemResponse{
			ItemID:    it.ItemID,
			ItemName:  it.ItemName,
			TotalSold: it.TotalSold,
			Revenue:   it.Revenue,
		}
	}
	statuses := make([]StatusBreakdownResponse, len(s.SalesByStatus))
	for i, st := range s.SalesByStatus {
		statuses[i] = StatusBreakdownResponse{
			Status: string(st.Status),
			Count:  st.Count,
			Total:  st.Total,
		}
	}
	return DashboardSummaryResponse{
		TotalCustomers: s.TotalCustomers,
		TotalItems:     s.TotalItems,
		TotalOrders:    s.TotalOrders,
		TotalRevenue:   s.TotalRevenue,
		RecentOrders:   recent,
		SalesOverTime:  monthly,
		TopCustomers:   customers,
		TopItems:       items,
		SalesByStatus:  statuses,
	}
}
