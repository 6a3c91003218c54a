package middleware

import (
	"net/http"
	"runtime/debug"

	"radarboard/internal/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Recovery Middleware
// Catches panics, logs the stack trace and answers 500 instead of
// crashing the server.
// ===========================================================================

// Recovery catches panics in handlers.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.String("request_id", GetRequestID(c)),
					zap.Any("error", err),
					zap.String("stack", string(debug.Stack())),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Error(
					"INTERNAL_ERROR",
					"An internal error occurred",
				))
			}
		}()

		c.Next()
	}
}
