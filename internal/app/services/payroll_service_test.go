package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

type payrollFixture struct {
	service  *PayrollService
	payroll  *fakePayrollRepo
	users    *fakeUserRepo
	outbox   *fakeOutboxRepo
	employee *models.User
}

func newPayrollFixture() *payrollFixture {
	payroll := newFakePayrollRepo()
	users := newFakeUserRepo()
	outbox := newFakeOutboxRepo()

	employee := users.add(&models.User{
		Email:     "kiran@example.com",
		FirstName: "Kiran",
		LastName:  "Rao",
		Role:      models.RoleEmployee,
		Status:    models.UserStatusActive,
	})

	return &payrollFixture{
		service:  NewPayrollService(payroll, users, outbox, zerolog.Nop()),
		payroll:  payroll,
		users:    users,
		outbox:   outbox,
		employee: employee,
	}
}

func (f *payrollFixture) saveStructure(t *testing.T, basic float64, components []models.SalaryComponent) {
	t.Helper()
	_, err := f.service.UpsertSalaryStructure(context.Background(), dto.UpsertSalaryStructureRequest{
		EmployeeID: f.employee.ID.Hex(),
		Basic:      basic,
		Components: components,
	})
	require.NoError(t, err)
}

func TestUpsertSalaryStructure(t *testing.T) {
	f := newPayrollFixture()

	structure, err := f.service.UpsertSalaryStructure(context.Background(), dto.UpsertSalaryStructureRequest{
		EmployeeID: f.employee.ID.Hex(),
		Basic:      30000,
		Components: []models.SalaryComponent{
			{Name: "HRA", Kind: models.ComponentEarning, Formula: "basic * 0.4"},
			{Name: "PF", Kind: models.ComponentDeduction, Formula: "basic * 0.12"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, f.employee.ID, structure.EmployeeID)
	assert.False(t, structure.EffectiveFrom.IsZero())
}

func TestUpsertSalaryStructureInvalidFormula(t *testing.T) {
	f := newPayrollFixture()

	_, err := f.service.UpsertSalaryStructure(context.Background(), dto.UpsertSalaryStructureRequest{
		EmployeeID: f.employee.ID.Hex(),
		Basic:      30000,
		Components: []models.SalaryComponent{
			{Name: "HRA", Kind: models.ComponentEarning, Formula: "basic * * 0.4"},
		},
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidFormula)
}

func TestUpsertSalaryStructureStudentRejected(t *testing.T) {
	f := newPayrollFixture()
	student := f.users.add(&models.User{
		Email:  "student@example.com",
		Role:   models.RoleStudent,
		Status: models.UserStatusActive,
	})

	_, err := f.service.UpsertSalaryStructure(context.Background(), dto.UpsertSalaryStructureRequest{
		EmployeeID: student.ID.Hex(),
		Basic:      30000,
	})

	assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
}

func TestUpsertSalaryStructureBadComponentKind(t *testing.T) {
	f := newPayrollFixture()

	_, err := f.service.UpsertSalaryStructure(context.Background(), dto.UpsertSalaryStructureRequest{
		EmployeeID: f.employee.ID.Hex(),
		Basic:      30000,
		Components: []models.SalaryComponent{
			{Name: "Bonus", Kind: "allowance", Amount: 1000},
		},
	})

	assert.Error(t, err)
}

func TestGeneratePayslip(t *testing.T) {
	f := newPayrollFixture()
	f.saveStructure(t, 30000, []models.SalaryComponent{
		{Name: "HRA", Kind: models.ComponentEarning, Formula: "basic * 0.4"},
		{Name: "Transport", Kind: models.ComponentEarning, Amount: 1600},
		{Name: "PF", Kind: models.ComponentDeduction, Formula: "basic * 0.12"},
		{Name: "Professional Tax", Kind: models.ComponentDeduction, Amount: 200},
	})

	payslip, err := f.service.GeneratePayslip(context.Background(), dto.GeneratePayslipRequest{
		EmployeeID: f.employee.ID.Hex(),
		Month:      "03-2026",
	})

	require.NoError(t, err)
	assert.Equal(t, 30000.0, payslip.Basic)
	// 30000 + 12000 HRA + 1600 transport
	assert.Equal(t, 43600.0, payslip.Gross)
	// 3600 PF + 200 tax
	assert.Equal(t, 3800.0, payslip.TotalDeduct)
	assert.Equal(t, 39800.0, payslip.Net)
	require.Len(t, payslip.Earnings, 2)
	assert.Equal(t, 12000.0, payslip.Earnings[0].Amount)

	queued := f.outbox.byTemplate(models.TemplatePayslipReady)
	require.Len(t, queued, 1)
	assert.Equal(t, "kiran@example.com", queued[0].Recipient)
	assert.Equal(t, "March 2026", queued[0].Payload["month"])
}

func TestGeneratePayslipDeductionSeesGross(t *testing.T) {
	f := newPayrollFixture()
	f.saveStructure(t, 20000, []models.SalaryComponent{
		{Name: "HRA", Kind: models.ComponentEarning, Formula: "basic * 0.5"},
		{Name: "Levy", Kind: models.ComponentDeduction, Formula: "gross * 0.1"},
	})

	payslip, err := f.service.GeneratePayslip(context.Background(), dto.GeneratePayslipRequest{
		EmployeeID: f.employee.ID.Hex(),
		Month:      "04-2026",
	})

	require.NoError(t, err)
	assert.Equal(t, 30000.0, payslip.Gross)
	assert.Equal(t, 3000.0, payslip.TotalDeduct)
	assert.Equal(t, 27000.0, payslip.Net)
}

func TestGeneratePayslipDuplicateMonth(t *testing.T) {
	f := newPayrollFixture()
	f.saveStructure(t, 30000, nil)

	req := dto.GeneratePayslipRequest{EmployeeID: f.employee.ID.Hex(), Month: "03-2026"}
	_, err := f.service.GeneratePayslip(context.Background(), req)
	require.NoError(t, err)

	_, err = f.service.GeneratePayslip(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrPayslipAlreadyExists)
}

func TestGeneratePayslipBadMonth(t *testing.T) {
	f := newPayrollFixture()
	f.saveStructure(t, 30000, nil)

	_, err := f.service.GeneratePayslip(context.Background(), dto.GeneratePayslipRequest{
		EmployeeID: f.employee.ID.Hex(),
		Month:      "2026-03",
	})
	assert.Error(t, err)
}

func TestGeneratePayslipWithoutStructure(t *testing.T) {
	f := newPayrollFixture()

	_, err := f.service.GeneratePayslip(context.Background(), dto.GeneratePayslipRequest{
		EmployeeID: f.employee.ID.Hex(),
		Month:      "03-2026",
	})
	assert.ErrorIs(t, err, apperrors.ErrSalaryStructureNotFound)
}

func TestGetPayslipOwnership(t *testing.T) {
	f := newPayrollFixture()
	f.saveStructure(t, 30000, nil)
	payslip, err := f.service.GeneratePayslip(context.Background(), dto.GeneratePayslipRequest{
		EmployeeID: f.employee.ID.Hex(),
		Month:      "03-2026",
	})
	require.NoError(t, err)

	_, err = f.service.GetPayslip(context.Background(), payslip.ID, NewAuthContext(primitive.NewObjectID(), models.RoleEmployee))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	got, err := f.service.GetPayslip(context.Background(), payslip.ID, NewAuthContext(f.employee.ID, models.RoleEmployee))
	require.NoError(t, err)
	assert.Equal(t, payslip.ID, got.ID)
}

func TestPayslipDocument(t *testing.T) {
	f := newPayrollFixture()
	f.saveStructure(t, 30000, nil)
	_, err := f.service.CreateEmployeeProfile(context.Background(), dto.CreateEmployeeProfileRequest{
		UserID:      f.employee.ID.Hex(),
		EmployeeNo:  "EMP-0042",
		Designation: "Trainer",
	})
	require.NoError(t, err)

	payslip, err := f.service.GeneratePayslip(context.Background(), dto.GeneratePayslipRequest{
		EmployeeID: f.employee.ID.Hex(),
		Month:      "03-2026",
	})
	require.NoError(t, err)

	data, err := f.service.PayslipDocument(context.Background(), payslip.ID, NewAuthContext(f.employee.ID, models.RoleEmployee))
	require.NoError(t, err)
	assert.Equal(t, "Kiran Rao", data.EmployeeName)
	assert.Equal(t, "EMP-0042", data.EmployeeNo)
	assert.Equal(t, "Trainer", data.Designation)
}

func TestCreateEmployeeProfileBadJoinDate(t *testing.T) {
	f := newPayrollFixture()

	_, err := f.service.CreateEmployeeProfile(context.Background(), dto.CreateEmployeeProfileRequest{
		UserID:     f.employee.ID.Hex(),
		EmployeeNo: "EMP-0042",
		JoinedAt:   "01/03/2026",
	})
	assert.Error(t, err)
}

func TestMonthlyPayrollRows(t *testing.T) {
	f := newPayrollFixture()
	f.saveStructure(t, 30000, nil)
	_, err := f.service.GeneratePayslip(context.Background(), dto.GeneratePayslipRequest{
		EmployeeID: f.employee.ID.Hex(),
		Month:      "03-2026",
	})
	require.NoError(t, err)

	rows, err := f.service.MonthlyPayrollRows(context.Background(), "03-2026")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Kiran Rao", rows[0][0])
	assert.Equal(t, "03-2026", rows[0][1])
}
