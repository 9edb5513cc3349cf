package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupro/talentdesk/internal/app/models"
	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/services"
	"github.com/edupro/talentdesk/internal/middleware"
	"github.com/edupro/talentdesk/internal/pkg/helpers"
)

// SubmissionController handles project submissions and their review
type SubmissionController struct {
	submissionService *services.SubmissionService
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService *services.SubmissionService) *SubmissionController {
	return &SubmissionController{submissionService: submissionService}
}

// Create records a student's project submission
// @Summary Submit a project
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubmissionRequest true "Submission details"
// @Success 201 {object} dto.APIResponse{data=models.Submission} "Submission created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Linked assignment belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /submissions [post]
func (c *SubmissionController) Create(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.CreateSubmissionRequest
	if !bindJSON(ctx, &req) {
		return
	}
	submission, err := c.submissionService.Create(ctx, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(submission, "Submission created"))
}

// Review records a staff verdict on a submission
// @Summary Review a submission
// @Description Approving a submission that is linked to an assignment also marks that assignment completed.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Param request body dto.ReviewSubmissionRequest true "Review verdict"
// @Success 200 {object} dto.APIResponse{data=models.Submission} "Review recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid review status"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /submissions/{id}/review [patch]
func (c *SubmissionController) Review(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ReviewSubmissionRequest
	if !bindJSON(ctx, &req) {
		return
	}
	submission, err := c.submissionService.Review(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submission, "Review recorded"))
}

// Get fetches a single submission
// @Summary Get a submission
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 200 {object} dto.APIResponse{data=models.Submission} "Submission"
// @Failure 403 {object} dto.ErrorResponse "Not the submission owner"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /submissions/{id} [get]
func (c *SubmissionController) Get(ctx *gin.Context) {
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
	submission, err := c.submissionService.Get(ctx, id, caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(submission, ""))
}

// List pages submissions for staff
// @Summary List submissions
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by review status"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Submissions"
// @Router /submissions [get]
func (c *SubmissionController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)

	status := models.SubmissionStatus(ctx.Query("status"))
	submissions, total, err := c.submissionService.List(ctx, status, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      submissions,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// ListMine pages the caller's own submissions
// @Summary List own submissions
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Submissions"
// @Router /submissions/mine [get]
func (c *SubmissionController) ListMine(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)

	submissions, total, err := c.submissionService.ListForStudent(ctx, userID, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      submissions,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}
