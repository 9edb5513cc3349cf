package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
	"github.com/edupro/talentdesk/internal/pkg/docgen"
	"github.com/edupro/talentdesk/internal/pkg/helpers"
)

// PayrollService manages salary structures and payslip generation
type PayrollService struct {
	payrollRepo repositories.IPayrollRepository
	userRepo    repositories.IUserRepository
	outboxRepo  repositories.IOutboxRepository
	logger      zerolog.Logger
}

// NewPayrollService creates a new payroll service instance
func NewPayrollService(
	payrollRepo repositories.IPayrollRepository,
	userRepo repositories.IUserRepository,
	outboxRepo repositories.IOutboxRepository,
	logger zerolog.Logger,
) *PayrollService {
	return &PayrollService{
		payrollRepo: payrollRepo,
		userRepo:    userRepo,
		outboxRepo:  outboxRepo,
		logger:      logger,
	}
}

// UpsertSalaryStructure sets an employee's salary definition. Component
// formulas are validated up front so a broken expression never reaches
// payslip generation.
func (s *PayrollService) UpsertSalaryStructure(ctx context.Context, req dto.UpsertSalaryStructureRequest) (*models.SalaryStructure, error) {
	employeeID, err := primitive.ObjectIDFromHex(req.EmployeeID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid employee id")
	}
	user, err := s.userRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleEmployee && user.Role != models.RoleAdmin {
		return nil, apperrors.ErrEmployeeNotFound
	}

	for _, c := range req.Components {
		if c.Kind != models.ComponentEarning && c.Kind != models.ComponentDeduction {
			return nil, apperrors.NewBadRequestError("component kind must be earning or deduction")
		}
		if c.Formula != "" {
			if _, err := govaluate.NewEvaluableExpression(c.Formula); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidFormula, c.Name, err)
			}
		}
	}

	structure := &models.SalaryStructure{
		EmployeeID:    employeeID,
		Basic:         req.Basic,
		Components:    req.Components,
		EffectiveFrom: time.Now().UTC(),
	}
	if err := s.payrollRepo.UpsertSalaryStructure(ctx, structure); err != nil {
		return nil, err
	}
	s.logger.Info().Str("employeeId", employeeID.Hex()).Msg("Salary structure saved")
	return structure, nil
}

// GetSalaryStructure fetches an employee's salary definition
func (s *PayrollService) GetSalaryStructure(ctx context.Context, employeeID primitive.ObjectID) (*models.SalaryStructure, error) {
	return s.payrollRepo.GetSalaryStructure(ctx, employeeID)
}

// evaluateComponent resolves a component amount. A formula takes
// precedence over the fixed amount and sees {basic, gross} where gross
// is the running earnings total so far.
func evaluateComponent(c models.SalaryComponent, basic, gross float64) (float64, error) {
	if c.Formula == "" {
		return round2(c.Amount), nil
	}
	expr, err := govaluate.NewEvaluableExpression(c.Formula)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidFormula, c.Name, err)
	}
	result, err := expr.Evaluate(map[string]interface{}{
		"basic": basic,
		"gross": gross,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidFormula, c.Name, err)
	}
	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s: expression is not numeric", apperrors.ErrInvalidFormula, c.Name)
	}
	return round2(value), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GeneratePayslip computes and freezes the payslip for one employee
// and month. The snapshot never changes after creation, later edits to
// the salary structure only affect future months.
func (s *PayrollService) GeneratePayslip(ctx context.Context, req dto.GeneratePayslipRequest) (*models.Payslip, error) {
	employeeID, err := primitive.ObjectIDFromHex(req.EmployeeID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid employee id")
	}
	if _, _, err := helpers.ParseMonthRange(req.Month); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	structure, err := s.payrollRepo.GetSalaryStructure(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	payslip := &models.Payslip{
		EmployeeID:  employeeID,
		Month:       req.Month,
		Basic:       round2(structure.Basic),
		GeneratedAt: time.Now().UTC(),
	}

	gross := payslip.Basic
	var totalDeduct float64
	// Earnings settle first so deduction formulas can reference gross
	for _, c := range structure.Components {
		if c.Kind != models.ComponentEarning {
			continue
		}
		amount, err := evaluateComponent(c, payslip.Basic, gross)
		if err != nil {
			return nil, err
		}
		payslip.Earnings = append(payslip.Earnings, models.PayslipLine{Name: c.Name, Amount: amount})
		gross = round2(gross + amount)
	}
	for _, c := range structure.Components {
		if c.Kind != models.ComponentDeduction {
			continue
		}
		amount, err := evaluateComponent(c, payslip.Basic, gross)
		if err != nil {
			return nil, err
		}
		payslip.Deductions = append(payslip.Deductions, models.PayslipLine{Name: c.Name, Amount: amount})
		totalDeduct = round2(totalDeduct + amount)
	}

	payslip.Gross = gross
	payslip.TotalDeduct = totalDeduct
	payslip.Net = round2(gross - totalDeduct)

	if _, err := s.payrollRepo.CreatePayslip(ctx, payslip); err != nil {
		return nil, err
	}

	if user, err := s.userRepo.GetByID(ctx, employeeID); err == nil {
		notification := &models.Notification{
			Key:           fmt.Sprintf("payslip:%s:%s", employeeID.Hex(), req.Month),
			Template:      models.TemplatePayslipReady,
			Recipient:     user.Email,
			RecipientName: user.FullName(),
			Subject:       "Your payslip for " + helpers.MonthLabel(req.Month),
			Payload: map[string]string{
				"name":  user.FullName(),
				"month": helpers.MonthLabel(req.Month),
			},
		}
		if err := s.outboxRepo.Enqueue(ctx, notification); err != nil {
			s.logger.Error().Err(err).Str("employeeId", employeeID.Hex()).Msg("Failed to queue payslip notification")
		}
	}

	s.logger.Info().
		Str("employeeId", employeeID.Hex()).
		Str("month", req.Month).
		Float64("net", payslip.Net).
		Msg("Payslip generated")
	return payslip, nil
}

// GetPayslip returns one payslip, restricted to its owner for employees
func (s *PayrollService) GetPayslip(ctx context.Context, id primitive.ObjectID, caller *authContext) (*models.Payslip, error) {
	payslip, err := s.payrollRepo.GetPayslip(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin && payslip.EmployeeID != caller.UserID {
		return nil, apperrors.ErrPermissionDenied
	}
	return payslip, nil
}

// PayslipDocument assembles the data needed to render a payslip PDF
func (s *PayrollService) PayslipDocument(ctx context.Context, id primitive.ObjectID, caller *authContext) (docgen.PayslipData, error) {
	payslip, err := s.GetPayslip(ctx, id, caller)
	if err != nil {
		return docgen.PayslipData{}, err
	}
	data := docgen.PayslipData{Payslip: *payslip}
	if user, err := s.userRepo.GetByID(ctx, payslip.EmployeeID); err == nil {
		data.EmployeeName = user.FullName()
	}
	if profile, err := s.payrollRepo.GetEmployeeProfile(ctx, payslip.EmployeeID); err == nil {
		data.EmployeeNo = profile.EmployeeNo
		data.Designation = profile.Designation
	}
	return data, nil
}

// ListPayslips pages one employee's payslips
func (s *PayrollService) ListPayslips(ctx context.Context, employeeID primitive.ObjectID, skip, limit int64) ([]models.Payslip, int64, error) {
	return s.payrollRepo.ListPayslips(ctx, employeeID, skip, limit)
}

// MonthlyPayrollRows flattens a month's payslips for report export
func (s *PayrollService) MonthlyPayrollRows(ctx context.Context, month string) ([][]interface{}, error) {
	if _, _, err := helpers.ParseMonthRange(month); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	slips, err := s.payrollRepo.ListPayslipsForMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	rows := make([][]interface{}, 0, len(slips))
	for _, p := range slips {
		name := p.EmployeeID.Hex()
		if user, err := s.userRepo.GetByID(ctx, p.EmployeeID); err == nil {
			name = user.FullName()
		}
		rows = append(rows, []interface{}{name, p.Month, p.Basic, p.Gross, p.TotalDeduct, p.Net})
	}
	return rows, nil
}

// CreateEmployeeProfile stores HR details for an employee user
func (s *PayrollService) CreateEmployeeProfile(ctx context.Context, req dto.CreateEmployeeProfileRequest) (*models.EmployeeProfile, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid user id")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleEmployee && user.Role != models.RoleAdmin {
		return nil, apperrors.NewBadRequestError("profiles apply to employee accounts only")
	}

	profile := &models.EmployeeProfile{
		UserID:      userID,
		EmployeeNo:  req.EmployeeNo,
		Designation: req.Designation,
		Department:  req.Department,
		BankAccount: req.BankAccount,
		PAN:         req.PAN,
	}
	if req.JoinedAt != "" {
		t, err := time.Parse("2006-01-02", req.JoinedAt)
		if err != nil {
			return nil, apperrors.NewBadRequestError("joined date must be YYYY-MM-DD")
		}
		profile.JoinedAt = &t
	}
	if _, err := s.payrollRepo.CreateEmployeeProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetEmployeeProfile fetches the profile for a user
func (s *PayrollService) GetEmployeeProfile(ctx context.Context, userID primitive.ObjectID) (*models.EmployeeProfile, error) {
	return s.payrollRepo.GetEmployeeProfile(ctx, userID)
}

// ListEmployeeProfiles pages employee profiles
func (s *PayrollService) ListEmployeeProfiles(ctx context.Context, skip, limit int64) ([]models.EmployeeProfile, int64, error) {
	return s.payrollRepo.ListEmployeeProfiles(ctx, skip, limit)
}
