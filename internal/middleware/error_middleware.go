package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventvault/backend/internal/app/models/dto"
	"github.com/eventvault/backend/internal/pkg/apperrors"
	"github.com/eventvault/backend/internal/pkg/logger"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("Request failed")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

// ErrorStatus returns the HTTP status for an application error
func ErrorStatus(err error) int {
	status, _ := errorDetailFor(err)
	return status
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	var status int
	var detail *dto.ErrorDetail

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Bad request")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		status, detail = http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	case errors.Is(err, apperrors.ErrConflict):
		status, detail = http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Conflict")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status, detail = http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrTokenExpired):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrUnauthorized):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrNotConfigured):
		status, detail = http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeNotConfigured, "Service not configured")
	case errors.Is(err, apperrors.ErrExternalService):
		status, detail = http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "External service error")
	case errors.Is(err, apperrors.ErrPersistence):
		status, detail = http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database error")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}

	// Keep the message of known kinds; it is written for the caller.
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" && status < http.StatusInternalServerError {
			detail.Message = custom.Message
		}
		if custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
	} else if status == http.StatusBadGateway {
		detail = detail.WithDetails(err.Error())
	}
	return status, detail
}
