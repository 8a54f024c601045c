package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"walletledger/internal/logger"
	"walletledger/internal/uuid"
)

const requestIDKey = "requestID"

// RequestLogging returns a Gin middleware that logs each request with a
// request ID (taken from X-Request-ID when the client sends one), method,
// path, status code, latency, and client IP using Zap.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		latency := time.Since(start)
		log := logger.Named("http")
		status := c.Writer.Status()
		logFn := log.Infow
		if status >= 500 {
			logFn = log.Errorw
		} else if status >= 400 {
			logFn = log.Warnw
		}
		logFn("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
