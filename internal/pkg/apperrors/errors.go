package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	// OTP errors
	ErrOTPExpired = errors.New("OTP expired")
	ErrOTPInvalid = errors.New("invalid OTP")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Assignment errors
var (
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrAlreadyAssigned     = errors.New("student already has an assignment for this item")
	ErrInvalidTransition   = errors.New("invalid assignment status transition")
	ErrPaymentNotRecorded  = errors.New("required payment has not been recorded")
	ErrUnknownItemType     = errors.New("unknown assignment item type")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrInvalidReviewStatus = errors.New("invalid submission review status")
)

// Catalog errors
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrInternshipNotFound   = errors.New("internship not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrCareerNotFound       = errors.New("career not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrNameAlreadyExists    = errors.New("an entry with this name already exists")
)

// Payroll errors
var (
	ErrSalaryStructureNotFound = errors.New("salary structure not found")
	ErrPayslipNotFound         = errors.New("payslip not found")
	ErrEmployeeNotFound        = errors.New("employee profile not found")
	ErrPayslipAlreadyExists    = errors.New("payslip for this month already exists")
	ErrInvalidFormula          = errors.New("invalid salary component formula")
)

// File errors
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrStorageFailure  = errors.New("object storage operation failed")
	ErrInvalidFileName = errors.New("invalid file name")
)

// Invite/activation errors
var (
	ErrInviteTokenInvalid = errors.New("invalid or expired invite token")
	ErrInviteTokenUsed    = errors.New("invite token has already been used")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new custom error for validation failures with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
