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
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User / profile errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrProfileNotFound    = errors.New("profile not found")
)

// Role assignment errors
var (
	ErrRoleNotFound        = errors.New("role assignment not found")
	ErrRoleAlreadyGranted  = errors.New("role already granted to this user")
	ErrUnknownRole         = errors.New("unknown role")
	ErrRoleChangeForbidden = errors.New("only admins can manage role assignments")
)

// Course errors
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseAlreadyExists  = errors.New("course with this name or code already exists")
	ErrCourseHasEnrollments = errors.New("course has enrollments and cannot be deleted")
)

// Student errors
var (
	ErrStudentNotFound           = errors.New("student not found")
	ErrRegistrationNumberExists  = errors.New("registration number already exists")
	ErrCPFAlreadyExists          = errors.New("CPF already exists")
	ErrStudentEmailAlreadyExists = errors.New("student email already exists")
	ErrInvalidRegistrationNumber = errors.New("invalid registration number format")
	ErrInvalidCPF                = errors.New("invalid CPF format")
	ErrInvalidStudentStatus      = errors.New("invalid student status")
)

// Enrollment errors
var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("student is already enrolled in this course")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a field-level validation error. Shape
// validation reports the first violation per field, so one error carries
// exactly one field.
func NewValidationError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// NewConflictError creates a conflict error with a user-facing hint
func NewConflictError(message string) *CustomError {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// FieldOf returns the field name of a validation error, if any
func FieldOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}
