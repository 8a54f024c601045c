package middleware

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "walletledger/internal/errors"
	"walletledger/internal/logger"
)

// ErrorHandler turns errors attached with c.Error, and panics, into the
// API's JSON error envelope. Only the last attached error is reported.
// Handlers that already wrote a response are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				writeError(c, fmt.Errorf("panic: %v", rec))
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		writeError(c, c.Errors.Last().Err)
	}
}

func writeError(c *gin.Context, err error) {
	log := logger.Named("http")
	requestID, _ := c.Get(requestIDKey)

	appErr := apperrors.ErrInternalServer
	if !errors.As(err, &appErr) {
		log.Errorw("unhandled error",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err.Error(),
		)
	} else if appErr.Internal != nil {
		log.Errorw("app error",
			"request_id", requestID,
			"code", appErr.Code,
			"path", c.Request.URL.Path,
			"internal", appErr.Internal.Error(),
		)
	}

	c.JSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
