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
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		abortWithError(c, http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, errorMessage(err, "Resource not found")))
	case errors.Is(err, apperrors.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, errorMessage(err, "Validation failed")))
	case errors.Is(err, apperrors.ErrBadRequest):
		abortWithError(c, http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, errorMessage(err, "Bad request")))
	default:
		logger.Error().Err(err).
			Str("requestID", RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error while serving request")
		abortWithError(c, http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

// HandleInvalidEdit answers an edit that targets a missing record. A missing
// target is a client error on PUT, so not found becomes 400.
func HandleInvalidEdit(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		abortWithError(c, http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, errorMessage(err, "Edit target does not exist")))
		return
	}
	HandleAPIError(c, err)
}

// HandleBindingError answers a request whose body or query could not be bound
func HandleBindingError(c *gin.Context, err error) {
	abortWithError(c, http.StatusBadRequest, dto.HandleValidationError(err))
}

// HandleInvalidID answers a path id that is not an integer
func HandleInvalidID(c *gin.Context, resource string) {
	detail := dto.NewErrorDetail(dto.ErrorCodeInvalidParam, "Invalid "+resource+" ID").
		WithField("id").
		WithDetails(resource + " ID must be a valid number")
	abortWithError(c, http.StatusBadRequest, detail)
}

func abortWithError(c *gin.Context, status int, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// errorMessage prefers the message carried by an apperrors.CustomError
func errorMessage(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}
