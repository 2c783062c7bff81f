package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrProfessorNotFound      = errors.New("professor not found")
	ErrModuleNotFound         = errors.New("module not found")
	ErrModuleInstanceNotFound = errors.New("module instance not found")
	ErrRatingNotFound         = errors.New("rating not found")
	ErrUserNotFound           = errors.New("user not found")

	// Conflict errors
	ErrUsernameAlreadyExists       = errors.New("username already exists")
	ErrModuleAlreadyExists         = errors.New("module with this code already exists")
	ErrProfessorAlreadyExists      = errors.New("professor with this id already exists")
	ErrModuleInstanceAlreadyExists = errors.New("module instance for this module, year and semester already exists")
	ErrRatingAlreadyExists         = errors.New("rating already exists for this module instance, professor and user")

	// Validation errors
	ErrValidationFailed     = errors.New("validation failed")
	ErrProfessorNotTeaching = errors.New("professor is not teaching this module instance")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
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

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
