package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omnalage/skill-exchange-platform/internal/app/models/dto"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Controllers call it
// for every error that crosses the service boundary so status codes stay
// consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError

	detail := func(code dto.ErrorCode, message string) *dto.ErrorDetail {
		if errors.As(err, &customErr) && customErr.Message != "" {
			message = customErr.Message
		}
		return dto.NewErrorDetail(code, message)
	}

	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail(dto.ErrorCodeResourceNotFound, "User not found")))
	case errors.Is(err, apperrors.ErrConnectionNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail(dto.ErrorCodeResourceNotFound, "No pending request found")))
	case errors.Is(err, apperrors.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail(dto.ErrorCodeResourceNotFound, "Conversation not found")))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail(dto.ErrorCodeResourceNotFound, "Resource not found")))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")))
	case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail(dto.ErrorCodeResourceAlreadyExists, "Username already exists")))
	case errors.Is(err, apperrors.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail(dto.ErrorCodeConflict, "A pending request already exists")))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail(dto.ErrorCodeConflict, "Resource conflict")))
	case errors.Is(err, apperrors.ErrSelfRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail(dto.ErrorCodeValidationFailed, "Cannot send a request to yourself")))
	case errors.Is(err, apperrors.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail(dto.ErrorCodeValidationFailed, "Status must be accepted or rejected")))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail(dto.ErrorCodeValidationFailed, "Validation failed")))
	case errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail(dto.ErrorCodeValidationFailed, "Invalid format")))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail(dto.ErrorCodeValidationFailed, "Bad request")))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail(dto.ErrorCodeTokenNotFound, "Token not found")))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(detail(dto.ErrorCodeUnauthorized, "Permission denied")))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
