package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"community-api/internal/response"
)

// handleServiceError maps service layer errors to appropriate HTTP responses
func handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		statusCode, code, message := mapAppError(appErr)
		response.SendError(c, statusCode, code, message)
		return
	}

	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

// mapAppError maps error codes to HTTP status codes. Forbidden ownership
// failures on comments are rendered as 404 so callers cannot probe whether a
// foreign resource exists; the distinct code stays internal.
func mapAppError(appErr *response.AppError) (int, string, string) {
	switch appErr.Code {
	case response.ErrCodeNotFound:
		return http.StatusNotFound, appErr.Code, appErr.Message
	case response.ErrCodeAlreadyExists:
		return http.StatusConflict, appErr.Code, appErr.Message
	case response.ErrCodeValidation:
		return http.StatusBadRequest, appErr.Code, appErr.Message
	case response.ErrCodeUnauthorized:
		return http.StatusUnauthorized, appErr.Code, appErr.Message
	case response.ErrCodeForbidden:
		return http.StatusNotFound, response.ErrCodeNotFound, appErr.Message
	default:
		return http.StatusInternalServerError, appErr.Code, appErr.Message
	}
}
