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

// UserController handles admin-side account management
type UserController struct {
	userService *services.UserService
	authService *services.AuthService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, authService *services.AuthService) *UserController {
	return &UserController{userService: userService, authService: authService}
}

// Invite creates an employee or admin account in invited state
// @Summary Invite a user
// @Description Creates an account and e-mails an activation link
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InviteUserRequest true "Invitee details"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User invited"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /users/invite [post]
func (c *UserController) Invite(ctx *gin.Context) {
	var req dto.InviteUserRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.authService.InviteUser(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "User invited"))
}

// List pages user accounts
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role" Enums(ADMIN, EMPLOYEE, STUDENT)
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Users"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.CalculateSkipLimit(page, size)
	role := models.Role(ctx.Query("role"))

	users, total, err := c.userService.List(ctx, role, skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp := dto.PaginatedResponse{
		Items:      users,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Get fetches one account
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.userService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

type setStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required"`
}

// SetStatus enables or disables an account
// @Summary Enable or disable a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body setStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/status [patch]
func (c *UserController) SetStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req setStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.userService.SetStatus(ctx, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Status updated"))
}
