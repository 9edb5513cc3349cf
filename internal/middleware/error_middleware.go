package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/edupro/talentdesk/internal/app/models/dto"
	"github.com/edupro/talentdesk/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers
// delegate every error path here so status codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account disabled")))
	case errors.Is(err, apperrors.ErrTooManyAttempts):
		c.JSON(429, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeTooManyAttempts, "Too many attempts, try again later")))
	case errors.Is(err, apperrors.ErrOTPExpired):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidOTP, "OTP expired")))
	case errors.Is(err, apperrors.ErrOTPInvalid):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidOTP, "Invalid OTP")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked")))
	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case errors.Is(err, apperrors.ErrInviteTokenInvalid):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invite token invalid or expired")))
	case errors.Is(err, apperrors.ErrInviteTokenUsed):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Invite already used")))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")))
	case errors.Is(err, apperrors.ErrNameAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Name already exists")))
	case errors.Is(err, apperrors.ErrPayslipAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Payslip already generated for this month")))
	case errors.Is(err, apperrors.ErrAlreadyAssigned):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Student already holds this item")))
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, err.Error())))
	case errors.Is(err, apperrors.ErrPaymentNotRecorded):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Required payment not recorded")))
	case errors.Is(err, apperrors.ErrUnknownItemType):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Unknown item type")))
	case errors.Is(err, apperrors.ErrInvalidReviewStatus):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Invalid review status")))
	case errors.Is(err, apperrors.ErrInvalidFormula):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, err.Error())))
	case errors.Is(err, apperrors.ErrFileTooLarge):
		c.JSON(413, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "File exceeds the upload limit")))
	case errors.Is(err, apperrors.ErrInvalidFileName):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Invalid file name")))
	case errors.Is(err, apperrors.ErrFileNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrAssignmentNotFound),
		errors.Is(err, apperrors.ErrSubmissionNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrInternshipNotFound),
		errors.Is(err, apperrors.ErrProjectNotFound),
		errors.Is(err, apperrors.ErrCareerNotFound),
		errors.Is(err, apperrors.ErrAnnouncementNotFound),
		errors.Is(err, apperrors.ErrSalaryStructureNotFound),
		errors.Is(err, apperrors.ErrPayslipNotFound),
		errors.Is(err, apperrors.ErrEmployeeNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, notFoundMessage(err))))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, err.Error())))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())))
	default:
		// Never leak internals on unexpected failures
		c.JSON(500, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

func notFoundMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return err.Error()
}
