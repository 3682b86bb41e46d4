package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/middleware"
)

// ErrorResponse is the uniform error envelope returned by all handlers.
// ErrorMessages carries per-field detail for validation failures.
type ErrorResponse struct {
	Success       bool     `json:"success"`
	StatusCode    int      `json:"statusCode"`
	Message       string   `json:"message"`
	ErrorMessages []string `json:"errorMessages,omitempty"`
}

func newErrorResponse(status int, message string, errorMessages ...string) ErrorResponse {
	return ErrorResponse{
		Success:       false,
		StatusCode:    status,
		Message:       message,
		ErrorMessages: errorMessages,
	}
}

// respondError maps a service error to an HTTP response. Classified errors
// (sentinels and AppError) surface their own message; anything else becomes
// an opaque 500 with the fallback message, logged with the real cause.
func respondError(c *gin.Context, err error, fallback string) {
	status := apperrors.StatusOf(err)
	if status == http.StatusInternalServerError {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, newErrorResponse(status, fallback))
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(status, newErrorResponse(status, appErr.Message))
		return
	}
	c.JSON(status, newErrorResponse(status, err.Error()))
}

// respondBindingError turns a request binding failure into a 400 response.
// Validator errors are flattened to per-field messages instead of leaking the
// struct-level error string.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, len(verrs))
		for i, fe := range verrs {
			if fe.Param() != "" {
				parts[i] = fmt.Sprintf("%s failed on %s=%s", fe.Field(), fe.Tag(), fe.Param())
			} else {
				parts[i] = fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
			}
		}
		c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "Invalid request", parts...))
		return
	}
	c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, "Invalid request format: "+err.Error()))
}
