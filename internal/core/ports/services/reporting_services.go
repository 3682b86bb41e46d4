package services

import (
	"context"
	"time"

	"github.com/stocknest/stocknest_backend/internal/core/domain"
)

// ReportingService defines operations for generating dashboard analytics
type ReportingService interface {
	// GetDashboardSummary generates the aggregate analytics payload for the
	// given window. A nil from/to leaves that side unbounded.
	GetDashboardSummary(ctx context.Context, from, to *time.Time) (*domain.DashboardSummary, error)
}
