package services

import (
	"context"
	"time"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portsrepo "github.com/stocknest/stocknest_backend/internal/core/ports/repositories"
	portssvc "github.com/stocknest/stocknest_backend/internal/core/ports/services"
)

// reportingService generates the dashboard analytics payload. Aggregation
// stays in the database; this layer only validates the window.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: reportingRepo}
}

// Ensure reportingService implements the portssvc.ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetDashboardSummary generates the aggregate analytics payload for the window.
func (s *reportingService) GetDashboardSummary(ctx context.Context, from, to *time.Time) (*domain.DashboardSummary, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, apperrors.NewAppError(422, "from date must not be after to date", apperrors.ErrValidation)
	}
	summary, err := s.reportingRepo.GetDashboardSummary(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to build dashboard summary")
		return nil, err
	}
	return summary, nil
}
