package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ===========================================================================
// CORS Middleware
// Cross-Origin Resource Sharing for browser clients.
// ===========================================================================

// CORS returns the CORS middleware for the given origins ("*" allows all).
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	allowAll := false
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
			break
		}
	}
	if allowAll {
		// Credentials + wildcard needs origin echo, not "*"
		cfg.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		cfg.AllowOrigins = allowedOrigins
	}

	return cors.New(cfg)
}
