package repositories

import (
	"context"
	"time"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

// ReportingRepository defines operations for retrieving dashboard data
type ReportingRepository interface {
	// GetDashboardSummary retrieves the aggregate analytics payload. A nil
	// from/to leaves that side of the window unbounded.
	GetDashboardSummary(ctx context.Context, from, to *time.Time) (*domain.DashboardSummary, error)
}
