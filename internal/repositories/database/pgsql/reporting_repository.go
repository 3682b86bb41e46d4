package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portsrepo "github.com/stocknest/stocknest_backend/internal/core/ports/repositories"
)

// revenueStatuses are the order states that count toward revenue figures.
const revenueStatuses = `('Confirmed', 'Shipped', 'Delivered')`

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a repository for dashboard aggregation queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// windowClause builds an optional order_date window starting at argument
// position offset+1 and returns the clause plus its arguments.
func windowClause(alias string, from, to *time.Time, offset int) (string, []interface{}) {
	clause := ""
	args := []interface{}{}
	if from != nil {
		args = append(args, *from)
		clause += ` AND ` + alias + `.order_date >= $` + strconv.Itoa(offset+len(args))
	}
	if to != nil {
		args = append(args, *to)
		clause += ` AND ` + alias + `.order_date <= $` + strconv.Itoa(offset+len(args))
	}
	return clause, args
}

// GetDashboardSummary retrieves the aggregate analytics payload in a handful
// of grouped queries. A nil from/to leaves that side of the window unbounded.
func (r *ReportingRepository) GetDashboardSummary(ctx context.Context, from, to *time.Time) (*domain.DashboardSummary, error) {
	summary := &domain.DashboardSummary{
		TotalRevenue:  decimal.Zero,
		RecentOrders:  []domain.RecentOrder{},
		SalesOverTime: []domain.MonthlySales{},
		TopCustomers:  []domain.TopCustomer{},
		TopItems:      []domain.TopItem{},
		SalesByStatus: []domain.StatusBreakdown{},
	}

	window, windowArgs := windowClause("o", from, to, 0)

	countsQuery := `
		SELECT (SELECT COUNT(*) FROM customers WHERE is_active = TRUE),
		       (SELECT COUNT(*) FROM items WHERE is_active = TRUE),
		       COUNT(o.*),
		       COALESCE(SUM(o.total) FILTER (WHERE o.status IN ` + revenueStatuses + `), 0)
		FROM sales_orders o
		WHERE 1=1` + window + `;`
	if err := r.Pool.QueryRow(ctx, countsQuery, windowArgs...).Scan(
		&summary.TotalCustomers,
		&summary.TotalItems,
		&summary.TotalOrders,
		&summary.TotalRevenue,
	); err != nil {
		return nil, apperrors.NewAppError(500, "failed to load dashboard counts", err)
	}

	recentQuery := `
		SELECT o.sales_order_id, o.order_number, c.customer_name, o.total, o.status, o.order_date
		FROM sales_orders o
		JOIN customers c ON o.customer_id = c.customer_id
		WHERE 1=1` + window + `
		ORDER BY o.order_date DESC, o.created_at DESC
		LIMIT 10;`
	rows, err := r.Pool.Query(ctx, recentQuery, windowArgs...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load recent orders", err)
	}
	for rows.Next() {
		var o domain.RecentOrder
		var status string
		if err := rows.Scan(&o.SalesOrderID, &o.OrderNumber, &o.CustomerName, &o.Total, &status, &o.OrderDate); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan recent order row", err)
		}
		o.Status = domain.OrderStatus(status)
		summary.RecentOrders = append(summary.RecentOrders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating recent order rows", err)
	}

	// Six months of history unless an explicit window asks otherwise.
	salesWindow := window
	salesArgs := windowArgs
	if from == nil && to == nil {
		salesWindow = ` AND o.order_date >= date_trunc('month', NOW()) - INTERVAL '5 months'`
		salesArgs = []interface{}{}
	}
	monthlyQuery := `
		SELECT to_char(date_trunc('month', o.order_date), 'YYYY-MM') AS month,
		       COALESCE(SUM(o.total), 0)
		FROM sales_orders o
		WHERE o.status IN ` + revenueStatuses + salesWindow + `
		GROUP BY month
		ORDER BY month;`
	rows, err = r.Pool.Query(ctx, monthlyQuery, salesArgs...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load monthly sales", err)
	}
	for rows.Next() {
		var m domain.MonthlySales
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan monthly sales row", err)
		}
		summary.SalesOverTime = append(summary.SalesOverTime, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating monthly sales rows", err)
	}

	topCustomersQuery := `
		SELECT c.customer_id, c.customer_name, COUNT(o.*), COALESCE(SUM(o.total), 0) AS spent
		FROM sales_orders o
		JOIN customers c ON o.customer_id = c.customer_id
		WHERE o.status IN ` + revenueStatuses + window + `
		GROUP BY c.customer_id, c.customer_name
		ORDER BY spent DESC
		LIMIT 5;`
	rows, err = r.Pool.Query(ctx, topCustomersQuery, windowArgs...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load top customers", err)
	}
	for rows.Next() {
		var c domain.TopCustomer
		if err := rows.Scan(&c.CustomerID, &c.CustomerName, &c.TotalOrders, &c.TotalSpent); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan top customer row", err)
		}
		summary.TopCustomers = append(summary.TopCustomers, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating top customer rows", err)
	}

	topItemsQuery := `
		SELECT i.item_id, i.name, COALESCE(SUM(l.quantity), 0) AS sold, COALESCE(SUM(l.amount), 0)
		FROM sales_order_items l
		JOIN sales_orders o ON l.sales_order_id = o.sales_order_id
		JOIN items i ON l.item_id = i.item_id
		WHERE o.status IN ` + revenueStatuses + window + `
		GROUP BY i.item_id, i.name
		ORDER BY sold DESC
		LIMIT 5;`
	rows, err = r.Pool.Query(ctx, topItemsQuery, windowArgs...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load top items", err)
	}
	for rows.Next() {
		var it domain.TopItem
		if err := rows.Scan(&it.ItemID, &it.ItemName, &it.TotalSold, &it.Revenue); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan top item row", err)
		}
		summary.TopItems = append(summary.TopItems, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating top item rows", err)
	}

	statusQuery := `
		SELECT o.status, COUNT(*), COALESCE(SUM(o.total), 0)
		FROM sales_orders o
		WHERE 1=1` + window + `
		GROUP BY o.status
		ORDER BY o.status;`
	rows, err = r.Pool.Query(ctx, statusQuery, windowArgs...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load sales by status", err)
	}
	for rows.Next() {
		var st domain.StatusBreakdown
		var status string
		if err := rows.Scan(&status, &st.Count, &st.Total); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan status breakdown row", err)
		}
		st.Status = domain.OrderStatus(status)
		summary.SalesByStatus = append(summary.SalesByStatus, st)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating status breakdown rows", err)
	}

	return summary, nil
}
