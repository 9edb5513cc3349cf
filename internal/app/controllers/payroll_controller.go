package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/services"
	"github.com/edupro/talentdesk/internal/middleware"
	"github.com/edupro/talentdesk/internal/pkg/docgen"
	"github.com/edupro/talentdesk/internal/pkg/helpers"
)

// PayrollController handles salary structures, payslips and employee profiles
type PayrollController struct {
	payrollService *services.PayrollService
}

// NewPayrollController creates a new PayrollController
func NewPayrollController(payrollService *services.PayrollService) *PayrollController {
	return &PayrollController{payrollService: payrollService}
}

// UpsertSalaryStructure creates or replaces an employee's salary definition
// @Summary Upsert a salary structure
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertSalaryStructureRequest true "Salary structure"
// @Success 200 {object} dto.APIResponse{data=models.SalaryStructure} "Structure saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid component formula"
// @Failure 404 {object} dto.ErrorResponse "Employee not found"
// @Router /payroll/structures [put]
func (c *PayrollController) UpsertSalaryStructure(ctx *gin.Context) {
	var req dto.UpsertSalaryStructureRequest
	if !bindJSON(ctx, &req) {
		return
	}
	structure, err := c.payrollService.UpsertSalaryStructure(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(structure, "Structure saved"))
}

// GetSalaryStructure fetches an employee's salary definition
// @Summary Get a salary structure
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param employeeId path string true "Employee user ID"
// @Success 200 {object} dto.APIResponse{data=models.SalaryStructure} "Structure"
// @Failure 404 {object} dto.ErrorResponse "Structure not found"
// @Router /payroll/structures/{employeeId} [get]
func (c *PayrollController) GetSalaryStructure(ctx *gin.Context) {
	employeeID, ok := parseIDParam(ctx, "employeeId")
	if !ok {
		return
	}
	structure, err := c.payrollService.GetSalaryStructure(ctx, employeeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(structure, ""))
}

// GeneratePayslip computes and stores a payslip for one month
// @Summary Generate a payslip
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GeneratePayslipRequest true "Employee and month"
// @Success 201 {object} dto.APIResponse{data=models.Payslip} "Payslip generated"
// @Failure 400 {object} dto.ErrorResponse "Bad month format"
// @Failure 409 {object} dto.ErrorResponse "Payslip already exists for the month"
// @Router /payroll/payslips [post]
func (c *PayrollController) GeneratePayslip(ctx *gin.Context) {
	var req dto.GeneratePayslipRequest
	if !bindJSON(ctx, &req) {
		return
	}
	payslip, err := c.payrollService.GeneratePayslip(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(payslip, "Payslip generated"))
}

// GetPayslip fetches one payslip
// @Summary Get a payslip
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payslip ID"
// @Success 200 {object} dto.APIResponse{data=models.Payslip} "Payslip"
// @Failure 403 {object} dto.ErrorResponse "Not the payslip owner"
// @Failure 404 {object} dto.ErrorResponse "Payslip not found"
// @Router /payroll/payslips/{id} [get]
func (c *PayrollController) GetPayslip(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	caller := services.NewAuthContext(userID, middleware.CurrentRole(ctx))
	payslip, err := c.payrollService.GetPayslip(ctx, id, caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(payslip, ""))
}

// PayslipPDF streams one payslip as a PDF
// @Summary Download a payslip PDF
// @Tags payroll
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Payslip ID"
// @Success 200 {file} binary "Payslip PDF"
// @Failure 403 {object} dto.ErrorResponse "Not the payslip owner"
// @Failure 404 {object} dto.ErrorResponse "Payslip not found"
// @Router /payroll/payslips/{id}/pdf [get]
func (c *PayrollController) PayslipPDF(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	caller := services.NewAuthContext(userID, middleware.CurrentRole(ctx))
	data, err := c.payrollService.PayslipDocument(ctx, id, caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := docgen.WritePayslipPDF(&buf, data); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="payslip-`+data.Payslip.Month+`.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// ListPayslips pages payslips. Admins pick an employee via the employeeId
// query; everyone else sees their own.
// @Summary List payslips
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param employeeId query string false "Employee user ID (admin only)"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Payslips"
// @Router /payroll/payslips [get]
func (c *PayrollController) ListPayslips(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	employeeID := userID
	if middleware.CurrentRole(ctx) == models.RoleAdmin {
		if hex := ctx.Query("employeeId"); hex != "" {
			parsed, ok := parseIDQuery(ctx, hex)
			if !ok {
				return
			}
			employeeID = parsed
		}
	}

	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)
	payslips, total, err := c.payrollService.ListPayslips(ctx, employeeID, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      payslips,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// CreateEmployeeProfile stores HR details for an employee
// @Summary Create an employee profile
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEmployeeProfileRequest true "Profile details"
// @Success 201 {object} dto.APIResponse{data=models.EmployeeProfile} "Profile created"
// @Failure 409 {object} dto.ErrorResponse "Profile already exists"
// @Router /payroll/employees [post]
func (c *PayrollController) CreateEmployeeProfile(ctx *gin.Context) {
	var req dto.CreateEmployeeProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}
	profile, err := c.payrollService.CreateEmployeeProfile(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(profile, "Profile created"))
}

// GetEmployeeProfile fetches one employee profile
// @Summary Get an employee profile
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Employee user ID"
// @Success 200 {object} dto.APIResponse{data=models.EmployeeProfile} "Profile"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /payroll/employees/{userId} [get]
func (c *PayrollController) GetEmployeeProfile(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	profile, err := c.payrollService.GetEmployeeProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile, ""))
}

// ListEmployeeProfiles pages employee profiles
// @Summary List employee profiles
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Profiles"
// @Router /payroll/employees [get]
func (c *PayrollController) ListEmployeeProfiles(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)

	profiles, total, err := c.payrollService.ListEmployeeProfiles(ctx, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      profiles,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}
