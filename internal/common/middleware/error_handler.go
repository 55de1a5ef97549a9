package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"giveaway-engine/internal/common/errors"
)

// ErrorHandler recovers panics and renders them as typed errors.
func ErrorHandler(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := getRequestID(c)

		logger.Error().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("stack", string(debug.Stack())).
			Interface("panic", recovered).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, "Internal server error").
			WithDetail("panic", fmt.Sprintf("%v", recovered))

		RespondError(c, appErr, logger)
	})
}

// RequestID assigns or propagates the X-Request-ID header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
	Path      string           `json:"path,omitempty"`
}

// RespondError writes err as a JSON envelope with the mapped status code.
func RespondError(c *gin.Context, err error, logger zerolog.Logger) {
	requestID := getRequestID(c)

	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "Internal server error")
	}

	statusCode := httpStatusCode(appErr)

	event := logger.Warn()
	if statusCode >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("request_id", requestID).
		Str("code", string(appErr.Code)).
		Str("path", c.Request.URL.Path).
		Err(appErr).
		Msg("Request failed")

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: requestID,
		Path:      c.Request.URL.Path,
	})
}

func httpStatusCode(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeValidation, errors.ErrCodeInvalidConfiguration, errors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeGiveawayNotFound, errors.ErrCodeEntryNotFound:
		return http.StatusNotFound
	case errors.ErrCodeConflict, errors.ErrCodeEmptyPool:
		return http.StatusConflict
	case errors.ErrCodeDependencyFailure, errors.ErrCodeDatabaseError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func getRequestID(c *gin.Context) string {
	if v, exists := c.Get("request_id"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
