package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
	"github.com/edupro/talentdesk/internal/pkg/helpers"
)

// DashboardService aggregates counts for the admin dashboard
type DashboardService struct {
	dashboardRepo repositories.IDashboardRepository
	logger        zerolog.Logger
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(dashboardRepo repositories.IDashboardRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo, logger: logger}
}

// Counts returns entity totals. A month filter ("MM-YYYY") restricts
// every count to records created inside that calendar month.
func (s *DashboardService) Counts(ctx context.Context, month string) (dto.DashboardCounts, error) {
	var from, to *time.Time
	if month != "" {
		f, t, err := helpers.ParseMonthRange(month)
		if err != nil {
			return dto.DashboardCounts{}, apperrors.NewBadRequestError(err.Error())
		}
		from, to = &f, &t
	}
	counts, err := s.dashboardRepo.Counts(ctx, from, to)
	if err != nil {
		return dto.DashboardCounts{}, err
	}
	counts.Month = month
	return counts, nil
}
