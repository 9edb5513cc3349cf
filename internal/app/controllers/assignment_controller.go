package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/app/services"
	"github.com/edupro/talentdesk/internal/middleware"
	"github.com/edupro/talentdesk/internal/pkg/docgen"
	"github.com/edupro/talentdesk/internal/pkg/helpers"
)

// AssignmentController handles the student assignment workflow
type AssignmentController struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService}
}

// Assign hands a catalog item to a student
// @Summary Assign an item to a student
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignRequest true "Assignment details"
// @Success 201 {object} dto.APIResponse{data=models.StudentAssignment} "Assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or duplicate assignment"
// @Failure 404 {object} dto.ErrorResponse "Student or item not found"
// @Router /assignments [post]
func (c *AssignmentController) Assign(ctx *gin.Context) {
	var req dto.AssignRequest
	if !bindJSON(ctx, &req) {
		return
	}
	assignment, err := c.assignmentService.Assign(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(assignment, "Assigned"))
}

// AdvanceStatus moves an assignment along its workflow
// @Summary Advance assignment status
// @Description Accepts only the next status in the item's workflow. Payment-gated steps require the matching payment first.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param request body dto.AdvanceStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.StudentAssignment} "Status advanced"
// @Failure 400 {object} dto.ErrorResponse "Illegal transition or payment missing"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{id}/status [patch]
func (c *AssignmentController) AdvanceStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AdvanceStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}
	assignment, err := c.assignmentService.AdvanceStatus(ctx, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Status advanced"))
}

// RecordPayment applies a payment to a project assignment
// @Summary Record a payment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param request body dto.RecordPaymentRequest true "Payment amount"
// @Success 200 {object} dto.APIResponse{data=models.StudentAssignment} "Payment recorded"
// @Failure 400 {object} dto.ErrorResponse "Not a project assignment"
// @Failure 409 {object} dto.ErrorResponse "Payment already settled"
// @Router /assignments/{id}/payments [post]
func (c *AssignmentController) RecordPayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	assignment, err := c.assignmentService.RecordPayment(ctx, id, req.Amount)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Payment recorded"))
}

// Invoice streams a payment invoice PDF
// @Summary Download a payment invoice
// @Tags assignments
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param stage query string true "Payment stage" Enums(advance, final)
// @Success 200 {file} binary "Invoice PDF"
// @Failure 400 {object} dto.ErrorResponse "Payment not recorded"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{id}/invoice [get]
func (c *AssignmentController) Invoice(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	data, err := c.assignmentService.InvoiceData(ctx, id, ctx.DefaultQuery("stage", "advance"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := docgen.WriteInvoicePDF(&buf, data); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+data.InvoiceNo+`.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// SubmitRequirement records the student's requirement hand-in
// @Summary Submit project requirements
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param request body dto.SubmitRequirementRequest true "Requirement details"
// @Success 200 {object} dto.APIResponse{data=models.StudentAssignment} "Requirement submitted"
// @Failure 400 {object} dto.ErrorResponse "Wrong state or item type"
// @Failure 403 {object} dto.ErrorResponse "Not the assignment owner"
// @Router /assignments/{id}/requirement [post]
func (c *AssignmentController) SubmitRequirement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.SubmitRequirementRequest
	if !bindJSON(ctx, &req) {
		return
	}
	assignment, err := c.assignmentService.SubmitRequirement(ctx, id, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Requirement submitted"))
}

// UpdateProgress sets percent complete
// @Summary Update assignment progress
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param request body dto.UpdateProgressRequest true "Progress"
// @Success 200 {object} dto.APIResponse{data=models.StudentAssignment} "Progress updated"
// @Failure 409 {object} dto.ErrorResponse "Assignment already completed"
// @Router /assignments/{id}/progress [patch]
func (c *AssignmentController) UpdateProgress(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateProgressRequest
	if !bindJSON(ctx, &req) {
		return
	}
	assignment, err := c.assignmentService.UpdateProgress(ctx, id, req.Progress)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "Progress updated"))
}

// AttachDeliveryFile adds a deliverable to the assignment
// @Summary Attach a delivery file
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param request body dto.AttachDeliveryFileRequest true "File reference"
// @Success 200 {object} dto.APIResponse{data=models.StudentAssignment} "File attached"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{id}/files [post]
func (c *AssignmentController) AttachDeliveryFile(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AttachDeliveryFileRequest
	if !bindJSON(ctx, &req) {
		return
	}
	assignment, err := c.assignmentService.AttachDeliveryFile(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, "File attached"))
}

// Get fetches one assignment
// @Summary Get an assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=models.StudentAssignment} "Assignment"
// @Failure 403 {object} dto.ErrorResponse "Not the assignment owner"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
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
	assignment, err := c.assignmentService.Get(ctx, id, caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment, ""))
}

// List pages assignments for staff
// @Summary List assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param studentId query string false "Filter by student"
// @Param itemType query string false "Filter by item type" Enums(course, internship, project)
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Assignments"
// @Router /assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)

	filter := repositories.AssignmentFilter{
		ItemType: models.ItemType(ctx.Query("itemType")),
		Status:   models.AssignmentStatus(ctx.Query("status")),
	}
	if studentHex := ctx.Query("studentId"); studentHex != "" {
		studentID, ok := parseIDQuery(ctx, studentHex)
		if !ok {
			return
		}
		filter.StudentID = &studentID
	}

	assignments, total, err := c.assignmentService.List(ctx, filter, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      assignments,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// ListMine pages the caller's own assignments
// @Summary List own assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Assignments"
// @Router /assignments/mine [get]
func (c *AssignmentController) ListMine(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)

	assignments, total, err := c.assignmentService.ListForStudent(ctx, userID, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      assignments,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}
