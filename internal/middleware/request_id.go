package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===========================================================================
// Request ID Middleware
// Adds a unique id to every request for tracing. The id is kept in the
// context and echoed back in the response header.
// ===========================================================================

const (
	// RequestIDKey context key for the request id
	RequestIDKey = "request_id"

	// RequestIDHeader header carrying the request id
	RequestIDHeader = "X-Request-ID"
)

// RequestID reuses the client-sent X-Request-ID or generates a fresh UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID returns the request id, or "" when absent.
func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		return id.(string)
	}
	return ""
}
