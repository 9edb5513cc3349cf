package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/app/services"
	"github.com/edupro/talentdesk/internal/middleware"
)

// AuthController handles authentication and registration endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login authenticates a user
// @Summary Log in
// @Description Verifies credentials and returns an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Logged in"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 429 {object} dto.ErrorResponse "Too many attempts"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.authService.Login(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Logged in"))
}

// RequestOTP starts student self-registration
// @Summary Request a registration code
// @Description Sends a 60 second one-time code to the given e-mail
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestOTPRequest true "E-mail address"
// @Success 200 {object} dto.APIResponse "Code sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register/request-otp [post]
func (c *AuthController) RequestOTP(ctx *gin.Context) {
	var req dto.RequestOTPRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if err := c.authService.RequestOTP(ctx, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Verification code sent"))
}

// VerifyOTP completes student self-registration
// @Summary Verify registration code
// @Description Validates the one-time code and creates the student account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Code and profile"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Registered"
// @Failure 400 {object} dto.ErrorResponse "Code invalid or expired"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register/verify-otp [post]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.authService.VerifyOTP(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Registered"))
}

// Refresh rotates a refresh token
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a fresh pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Tokens refreshed"
// @Failure 401 {object} dto.ErrorResponse "Token invalid, expired or revoked"
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Tokens refreshed"))
}

// Logout revokes a refresh token
// @Summary Log out
// @Description Revokes the presented refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse "Logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if err := c.authService.Logout(ctx, req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Logged out"))
}

// Activate finishes an invited account
// @Summary Activate an invited account
// @Description Sets the password for an invited user and logs them in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ActivateAccountRequest true "Invite token and password"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Account activated"
// @Failure 400 {object} dto.ErrorResponse "Token invalid or expired"
// @Failure 409 {object} dto.ErrorResponse "Invite already used"
// @Router /auth/activate [post]
func (c *AuthController) Activate(ctx *gin.Context) {
	var req dto.ActivateAccountRequest
	if !bindJSON(ctx, &req) {
		return
	}
	resp, err := c.authService.ActivateAccount(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Account activated"))
}

// ForgotPassword requests a reset link
// @Summary Request password reset
// @Description Sends a reset link if the e-mail is registered
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "E-mail address"
// @Success 200 {object} dto.APIResponse "Reset link sent if the address exists"
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if err := c.authService.ForgotPassword(ctx, req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "If the address is registered, a reset link has been sent"))
}

// ResetPassword consumes a reset token
// @Summary Reset password
// @Description Sets a new password using a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.APIResponse "Password updated"
// @Failure 401 {object} dto.ErrorResponse "Token invalid, expired or used"
// @Router /auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}
	if err := c.authService.ResetPassword(ctx, req.Token, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Password updated"))
}

// Me returns the caller's own account
// @Summary Get own profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	resp, err := c.authService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}
