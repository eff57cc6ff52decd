package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prperemyshlev/pomodoro-service/internal/dto"
	"github.com/prperemyshlev/pomodoro-service/internal/service"
)

type errorMapping struct {
	target  error
	status  int
	title   string
	message string
}

var errorMappings = []errorMapping{
	{service.ErrInvalidInput, http.StatusBadRequest, "Bad request", ""},
	{service.ErrInvalidOAuthState, http.StatusBadRequest, "Bad request", ""},
	{service.ErrInvalidOAuthCode, http.StatusBadRequest, "Bad request", "Invalid authorization code"},
	{service.ErrUserNotFound, http.StatusNotFound, "Not found", ""},
	{service.ErrTaskNotFound, http.StatusNotFound, "Not found", ""},
	{service.ErrCategoryNotFound, http.StatusNotFound, "Not found", ""},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Unauthorized", ""},
	{service.ErrTokenExpired, http.StatusUnauthorized, "Unauthorized", ""},
	{service.ErrInvalidToken, http.StatusUnauthorized, "Unauthorized", ""},
	{service.ErrUserAlreadyExists, http.StatusConflict, "Conflict", ""},
	{service.ErrCategoryAlreadyExists, http.StatusConflict, "Conflict", ""},
	{service.ErrProviderDisabled, http.StatusNotImplemented, "Not implemented", ""},
}

// respondError writes the response for a service error. Unknown errors are
// logged and reported as 500 without their details.
func respondError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			message := m.message
			if message == "" {
				message = err.Error()
			}
			c.JSON(m.status, dto.ErrorResponse{Error: m.title, Message: message})
			return
		}
	}

	zap.L().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Internal server error",
		Message: "An unexpected error occurred",
	})
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: err.Error(),
	})
}
