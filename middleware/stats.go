package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorRecorder counts requests that ended without a result.
type ErrorRecorder interface {
	RecordError()
}

// TrackErrors records failed analysis requests. Successful analyses are
// recorded by the handler, which knows the result.
func TrackErrors(rec ErrorRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodPost && c.FullPath() == "/api/analyze" && c.Writer.Status() >= 400 {
			rec.RecordError()
		}
	}
}
