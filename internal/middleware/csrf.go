package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"radarboard/internal/dto"

	"github.com/gin-gonic/gin"
)

// ===========================================================================
// CSRF Middleware
// Double Submit Cookie pattern: the token is set in a JS-readable cookie
// and must match the request header on state-changing methods.
// ===========================================================================

const (
	CSRFCookieName  = "csrf_token"
	CSRFHeaderName  = "X-CSRF-Token"
	CSRFTokenLength = 32
)

// GenerateCSRFToken creates a random CSRF token
func GenerateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// SetCSRFCookie sets the CSRF token cookie (readable by JS)
func SetCSRFCookie(c *gin.Context, token string) {
	c.SetCookie(
		CSRFCookieName,
		token,
		86400*7, // 7 days
		"/",
		"",    // domain empty for localhost
		false, // secure (should be true in production)
		false, // httpOnly = false so the client can read it
	)
}

// CSRFMiddlewareWithExempt validates the CSRF token on state-changing
// requests, skipping safe methods and the given path prefixes.
func CSRFMiddlewareWithExempt(exemptPaths []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip safe methods
		method := c.Request.Method
		if method == "GET" || method == "HEAD" || method == "OPTIONS" {
			c.Next()
			return
		}

		// Check if path is exempt
		path := c.Request.URL.Path
		for _, exempt := range exemptPaths {
			if strings.HasPrefix(path, exempt) {
				c.Next()
				return
			}
		}

		cookieToken, err := c.Cookie(CSRFCookieName)
		if err != nil || cookieToken == "" {
			c.JSON(http.StatusForbidden, dto.Error("CSRF_MISSING", "CSRF token required"))
			c.Abort()
			return
		}

		headerToken := c.GetHeader(CSRFHeaderName)
		if headerToken == "" {
			c.JSON(http.StatusForbidden, dto.Error("CSRF_MISSING", "CSRF token header required"))
			c.Abort()
			return
		}

		if !secureCompare(cookieToken, headerToken) {
			c.JSON(http.StatusForbidden, dto.Error("CSRF_INVALID", "CSRF token mismatch"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// secureCompare compares two strings in constant time
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	result := 0
	for i := 0; i < len(a); i++ {
		result |= int(a[i]) ^ int(b[i])
	}
	return result == 0
}
