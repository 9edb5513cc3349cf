package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
)

// IDashboardRepository aggregates entity counts across collections
type IDashboardRepository interface {
	Counts(ctx context.Context, from, to *time.Time) (dto.DashboardCounts, error)
}

// DashboardRepository composes the per-collection count queries used
// by the admin dashboard.
type DashboardRepository struct {
	users       *UserRepository
	assignments *AssignmentRepository
	submissions *SubmissionRepository
	catalog     *CatalogRepository
	careers     *CareerRepository
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *mongo.Database) *DashboardRepository {
	return &DashboardRepository{
		users:       NewUserRepository(db),
		assignments: NewAssignmentRepository(db),
		submissions: NewSubmissionRepository(db),
		catalog:     NewCatalogRepository(db),
		careers:     NewCareerRepository(db),
	}
}

// Counts gathers totals, optionally restricted to records created inside [from, to)
func (r *DashboardRepository) Counts(ctx context.Context, from, to *time.Time) (dto.DashboardCounts, error) {
	var counts dto.DashboardCounts
	var err error

	if counts.Students, err = r.users.CountByRole(ctx, models.RoleStudent, from, to); err != nil {
		return counts, err
	}
	if counts.Employees, err = r.users.CountByRole(ctx, models.RoleEmployee, from, to); err != nil {
		return counts, err
	}
	if counts.Courses, counts.Internships, counts.Projects, err = r.catalog.CountCatalog(ctx, from, to); err != nil {
		return counts, err
	}
	if counts.Assignments, err = r.assignments.Count(ctx, from, to); err != nil {
		return counts, err
	}
	if counts.Submissions, err = r.submissions.Count(ctx, from, to); err != nil {
		return counts, err
	}
	if counts.Careers, err = r.careers.CountCareers(ctx, from, to); err != nil {
		return counts, err
	}
	if counts.Inquiries, err = r.careers.CountInquiries(ctx, from, to); err != nil {
		return counts, err
	}
	if counts.Announcements, err = r.careers.CountAnnouncements(ctx, from, to); err != nil {
		return counts, err
	}
	if counts.Revenue, err = r.assignments.SumPayments(ctx, from, to); err != nil {
		return counts, err
	}
	return counts, nil
}
