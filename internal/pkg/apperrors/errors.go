// Package apperrors defines the sentinel errors the middleware maps to HTTP
// status codes, plus a CustomError wrapper for attaching request-facing text.
package apperrors

import "errors"

var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Record errors
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrStaffNotFound   = errors.New("staff member not found")
)

// File errors
var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrInvalidFileType = errors.New("file type is not allowed")
	ErrInvalidFolder   = errors.New("invalid upload folder")
)

// CustomError carries a sentinel plus request-specific text. Message replaces
// the sentinel's text in responses; StatusMsg, when set, becomes the details
// field.
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithStatusMsg sets the user-facing details text.
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}

// NewBadRequestError wraps ErrBadRequest with a request-specific message.
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// Is reports whether err matches target or any of the extra errors.
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
