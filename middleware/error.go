package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/landing-analyzer/backend/models"
)

// Abort writes a coded error response and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error:     &models.ErrorDetail{Code: code, Message: message},
		RequestID: c.GetString(RequestIDKey),
	})
}

// AbortWithError writes err as a coded error response and stops the handler
// chain. The wrapped cause is not exposed to the client.
func AbortWithError(c *gin.Context, status int, err *models.APIError) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error:     err.ToDetail(),
		RequestID: c.GetString(RequestIDKey),
	})
}

// ErrorHandler middleware recovers from any panics and handles errors
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"requestId", c.GetString(RequestIDKey),
					"stack", string(debug.Stack()),
				)
				Abort(c, http.StatusInternalServerError, models.ErrCodeInternal, "an unexpected error occurred")
			}
		}()

		c.Next()
	}
}
