package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/repositories"
	"github.com/edupro/talentdesk/internal/app/services"
	"github.com/edupro/talentdesk/internal/middleware"
	"github.com/edupro/talentdesk/internal/pkg/helpers"
)

// CatalogController handles courses, internships and projects
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

func catalogFilter(ctx *gin.Context) (repositories.CatalogFilter, int64, int64, int, int) {
	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)
	filter := repositories.CatalogFilter{
		Search:     ctx.Query("search"),
		ActiveOnly: ctx.Query("activeOnly") == "true",
	}
	return filter, skip, limit, page, size
}

func activeOrDefault(active *bool) bool {
	if active != nil {
		return *active
	}
	return true
}

// CreateCourse adds a course to the catalog
// @Summary Create a course
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 409 {object} dto.ErrorResponse "Name already in use"
// @Router /courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}
	course, err := c.catalogService.CreateCourse(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course, "Course created"))
}

// GetCourse fetches one course
// @Summary Get a course
// @Tags catalog
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	course, err := c.catalogService.GetCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course, ""))
}

// UpdateCourse replaces a course's details
// @Summary Update a course
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.CreateCourseRequest true "Course details"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [put]
func (c *CatalogController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateCourseRequest
	if !bindJSON(ctx, &req) {
		return
	}
	course, err := c.catalogService.UpdateCourse(ctx, id, req, activeOrDefault(req.Active))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course, "Course updated"))
}

// DeleteCourse removes a course
// @Summary Delete a course
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CatalogController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.catalogService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Course deleted"))
}

// ListCourses pages the course catalog
// @Summary List courses
// @Tags catalog
// @Produce json
// @Param search query string false "Name search"
// @Param activeOnly query bool false "Only active entries"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Courses"
// @Router /courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	filter, skip, limit, page, size := catalogFilter(ctx)
	courses, total, err := c.catalogService.ListCourses(ctx, filter, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      courses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// CreateInternship adds an internship to the catalog
// @Summary Create an internship
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInternshipRequest true "Internship details"
// @Success 201 {object} dto.APIResponse{data=models.Internship} "Internship created"
// @Failure 409 {object} dto.ErrorResponse "Name already in use"
// @Router /internships [post]
func (c *CatalogController) CreateInternship(ctx *gin.Context) {
	var req dto.CreateInternshipRequest
	if !bindJSON(ctx, &req) {
		return
	}
	internship, err := c.catalogService.CreateInternship(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(internship, "Internship created"))
}

// GetInternship fetches one internship
// @Summary Get an internship
// @Tags catalog
// @Produce json
// @Param id path string true "Internship ID"
// @Success 200 {object} dto.APIResponse{data=models.Internship} "Internship"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /internships/{id} [get]
func (c *CatalogController) GetInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	internship, err := c.catalogService.GetInternship(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(internship, ""))
}

// UpdateInternship replaces an internship's details
// @Summary Update an internship
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Internship ID"
// @Param request body dto.CreateInternshipRequest true "Internship details"
// @Success 200 {object} dto.APIResponse{data=models.Internship} "Internship updated"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /internships/{id} [put]
func (c *CatalogController) UpdateInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateInternshipRequest
	if !bindJSON(ctx, &req) {
		return
	}
	internship, err := c.catalogService.UpdateInternship(ctx, id, req, activeOrDefault(req.Active))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(internship, "Internship updated"))
}

// DeleteInternship removes an internship
// @Summary Delete an internship
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Internship ID"
// @Success 200 {object} dto.APIResponse "Internship deleted"
// @Failure 404 {object} dto.ErrorResponse "Internship not found"
// @Router /internships/{id} [delete]
func (c *CatalogController) DeleteInternship(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.catalogService.DeleteInternship(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Internship deleted"))
}

// ListInternships pages the internship catalog
// @Summary List internships
// @Tags catalog
// @Produce json
// @Param search query string false "Name search"
// @Param activeOnly query bool false "Only active entries"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Internships"
// @Router /internships [get]
func (c *CatalogController) ListInternships(ctx *gin.Context) {
	filter, skip, limit, page, size := catalogFilter(ctx)
	internships, total, err := c.catalogService.ListInternships(ctx, filter, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      internships,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// CreateProject adds a project to the catalog
// @Summary Create a project
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.APIResponse{data=models.Project} "Project created"
// @Failure 409 {object} dto.ErrorResponse "Name already in use"
// @Router /projects [post]
func (c *CatalogController) CreateProject(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(ctx, &req) {
		return
	}
	project, err := c.catalogService.CreateProject(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(project, "Project created"))
}

// GetProject fetches one project
// @Summary Get a project
// @Tags catalog
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Project"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (c *CatalogController) GetProject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	project, err := c.catalogService.GetProject(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(project, ""))
}

// UpdateProject replaces a project's details
// @Summary Update a project
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body dto.CreateProjectRequest true "Project details"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Project updated"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [put]
func (c *CatalogController) UpdateProject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if !bindJSON(ctx, &req) {
		return
	}
	project, err := c.catalogService.UpdateProject(ctx, id, req, activeOrDefault(req.Active))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(project, "Project updated"))
}

// DeleteProject removes a project
// @Summary Delete a project
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse "Project deleted"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [delete]
func (c *CatalogController) DeleteProject(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.catalogService.DeleteProject(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Project deleted"))
}

// ListProjects pages the project catalog
// @Summary List projects
// @Tags catalog
// @Produce json
// @Param search query string false "Name search"
// @Param activeOnly query bool false "Only active entries"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Projects"
// @Router /projects [get]
func (c *CatalogController) ListProjects(ctx *gin.Context) {
	filter, skip, limit, page, size := catalogFilter(ctx)
	projects, total, err := c.catalogService.ListProjects(ctx, filter, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      projects,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

type setThumbnailRequest struct {
	StorageKey string `json:"storageKey" binding:"required"`
}

// SetProjectThumbnail points a project at an uploaded thumbnail
// @Summary Set a project thumbnail
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body object true "Storage key of the uploaded image"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Thumbnail set"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/thumbnail [put]
func (c *CatalogController) SetProjectThumbnail(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req setThumbnailRequest
	if !bindJSON(ctx, &req) {
		return
	}
	project, err := c.catalogService.SetProjectThumbnail(ctx, id, req.StorageKey)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(project, "Thumbnail set"))
}
