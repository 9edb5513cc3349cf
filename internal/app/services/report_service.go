package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/pkg/docgen"
	"github.com/edupro/talentdesk/internal/pkg/helpers"
)

// reportPageSize bounds how many rows a single export walks per batch
const reportPageSize = 500

// ReportService builds tabular exports for the admin panel
type ReportService struct {
	userRepo       repositories.IUserRepository
	assignmentRepo repositories.IAssignmentRepository
	payroll        *PayrollService
	logger         zerolog.Logger
}

// NewReportService creates a new report service instance
func NewReportService(
	userRepo repositories.IUserRepository,
	assignmentRepo repositories.IAssignmentRepository,
	payroll *PayrollService,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		payroll:        payroll,
		logger:         logger,
	}
}

// StudentsTable lists every student account
func (s *ReportService) StudentsTable(ctx context.Context) (docgen.Table, error) {
	table := docgen.Table{
		Title:   "Students",
		Headers: []string{"Name", "Email", "Phone", "Status", "Registered"},
	}
	for skip := int64(0); ; skip += reportPageSize {
		users, total, err := s.userRepo.List(ctx, models.RoleStudent, skip, reportPageSize)
		if err != nil {
			return docgen.Table{}, err
		}
		for _, u := range users {
			table.Rows = append(table.Rows, []interface{}{
				u.FullName(), u.Email, u.Phone, string(u.Status), u.CreatedAt.Format("2006-01-02"),
			})
		}
		if skip+reportPageSize >= total {
			break
		}
	}
	return table, nil
}

// AssignmentsTable lists assignments, optionally narrowed by filter
func (s *ReportService) AssignmentsTable(ctx context.Context, filter repositories.AssignmentFilter) (docgen.Table, error) {
	table := docgen.Table{
		Title:   "Assignments",
		Headers: []string{"Student", "Type", "Status", "Progress", "Amount", "Paid", "Created"},
	}
	for skip := int64(0); ; skip += reportPageSize {
		assignments, total, err := s.assignmentRepo.List(ctx, filter, skip, reportPageSize)
		if err != nil {
			return docgen.Table{}, err
		}
		for _, a := range assignments {
			student := a.StudentID.Hex()
			if u, err := s.userRepo.GetByID(ctx, a.StudentID); err == nil {
				student = u.FullName()
			}
			paid := a.Payment.AdvanceAmount + a.Payment.FinalAmount
			table.Rows = append(table.Rows, []interface{}{
				student, string(a.ItemType), string(a.Status),
				fmt.Sprintf("%d%%", a.Progress), a.Payment.Amount, paid,
				a.CreatedAt.Format("2006-01-02"),
			})
		}
		if skip+reportPageSize >= total {
			break
		}
	}
	return table, nil
}

// PayrollTable lists every payslip generated for a month
func (s *ReportService) PayrollTable(ctx context.Context, month string) (docgen.Table, error) {
	rows, err := s.payroll.MonthlyPayrollRows(ctx, month)
	if err != nil {
		return docgen.Table{}, err
	}
	return docgen.Table{
		Title:   "Payroll " + helpers.MonthLabel(month),
		Headers: []string{"Employee", "Month", "Basic", "Gross", "Deductions", "Net"},
		Rows:    rows,
	}, nil
}
