package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses.
func HandleAPIError(c *gin.Context, err error) {
	status := statusForError(err)

	if status == http.StatusInternalServerError {
		// Do not leak internals to clients.
		c.JSON(status, dto.NewErrorResponse("Internal server error"))
		return
	}

	body := dto.NewErrorResponse(err.Error())

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		if customErr.Message != "" {
			body.Error = customErr.Message
		}
		if customErr.StatusMsg != "" {
			body.Details = customErr.StatusMsg
		}
	}

	c.JSON(status, body)
}

func statusForError(err error) int {
	switch {
	case apperrors.Is(err, apperrors.ErrStudentNotFound,
		apperrors.ErrStaffNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrResourceNotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrBadRequest,
		apperrors.ErrValidationFailed,
		apperrors.ErrFileTooLarge,
		apperrors.ErrInvalidFileType,
		apperrors.ErrInvalidFolder):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrInvalidCredentials,
		apperrors.ErrTokenExpired,
		apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized
	case apperrors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
