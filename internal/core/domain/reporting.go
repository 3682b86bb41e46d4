package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecentOrder is a trimmed order row for the dashboard feed.
type RecentOrder struct {
	SalesOrderID string          `json:"salesOrderID"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
	OrderDate    time.Time       `json:"orderDate"`
}

// MonthlySales is one point of the sales-over-time series, keyed by "YYYY-MM".
type MonthlySales struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// TopCustomer aggregates order count and spend per customer.
type TopCustomer struct {
	CustomerID   string          `json:"customerID"`
	CustomerName string          `json:"customerName"`
	TotalOrders  int64           `json:"totalOrders"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
}

// TopItem aggregates units sold and revenue per item.
type TopItem struct {
	ItemID    string          `json:"itemID"`
	ItemName  string          `json:"itemName"`
	TotalSold int64           `json:"totalSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// StatusBreakdown is order count and value grouped by status.
type StatusBreakdown struct {
	Status OrderStatus     `json:"status"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// DashboardSummary is the aggregate analytics payload. Revenue counts only
// Confirmed, Shipped and Delivered orders.
type DashboardSummary struct {
	TotalCustomers int64             `json:"totalCustomers"`
	TotalItems     int64             `json:"totalItems"`
	TotalOrders    int64             `json:"totalOrders"`
	TotalRevenue   decimal.Decimal   `json:"totalRevenue"`
	RecentOrders   []RecentOrder     `json:"recentOrders"`
	SalesOverTime  []MonthlySales    `json:"salesOverTime"`
	TopCustomers   []TopCustomer     `json:"topCustomers"`
	TopItems       []TopItem         `json:"topItems"`
	SalesByStatus  []StatusBreakdown `json:"salesByStatus"`
}
