package middleware

import (
	"time"

	"go-candidate-backend/internal/delivery/http/response"
	"go-candidate-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AccessLog writes one structured line per request through pkg/logger.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", c.GetString(response.RequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			logger.Log.Error("request completed", attrs...)
		case status >= 400:
			logger.Log.Warn("request completed", attrs...)
		default:
			logger.Log.Info("request completed", attrs...)
		}
	}
}
