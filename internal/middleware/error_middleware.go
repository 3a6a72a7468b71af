package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hogwarts/internal/app/models/dto"
	"github.com/yigit/hogwarts/internal/pkg/apperrors"
	"github.com/yigit/hogwarts/internal/pkg/logger"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("requestID", c.GetString(RequestIDKey)).
			Msg("Unhandled error")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	var customErr *apperrors.CustomError
	hasMessage := errors.As(err, &customErr)

	message := func(fallback string) string {
		if hasMessage {
			return customErr.Error()
		}
		return fallback
	}

	withDetails := func(detail *dto.ErrorDetail) *dto.ErrorDetail {
		if hasMessage && len(customErr.Details) > 0 {
			detail.WithDetails(customErr.Details)
		}
		return detail
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, withDetails(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Resource not found")))
	case errors.Is(err, apperrors.ErrResourceGone):
		return http.StatusGone, withDetails(dto.NewErrorDetail(dto.ErrorCodeResourceGone, message("Resource gone")))
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, withDetails(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message("Validation failed")))
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, withDetails(dto.NewErrorDetail(dto.ErrorCodeBadRequest, message("Bad request")))
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// RespondBadRequest writes a 400 envelope for malformed path or query input
func RespondBadRequest(c *gin.Context, message, details string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, message)
	if details != "" {
		errorDetail = errorDetail.WithDetails(details)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
