package middleware

import (
	"net/http"
	"strings"

	"radarboard/internal/auth"
	"radarboard/internal/dto"
	"radarboard/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===========================================================================
// Auth Middleware
// Protect routes with JWT authentication.
// ===========================================================================

// Context keys for auth data
const (
	ContextKeyUserID     = "user_id"
	ContextKeyUsername   = "username"
	ContextKeyUserRole   = "user_role"
	ContextKeyDepartment = "department"
	ContextKeyClaims     = "claims"
)

// AuthMiddleware verifies the JWT from cookie or Authorization header
func AuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// 1. First try to get token from cookie (httpOnly)
		if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
			tokenString = cookie
		}

		// 2. Fallback to Authorization header (for API clients)
		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					tokenString = parts[1]
				}
			}
		}

		// 3. No token found
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, dto.Error("UNAUTHORIZED", "Authentication required"))
			c.Abort()
			return
		}

		// 4. Validate token
		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				c.JSON(http.StatusUnauthorized, dto.Error("TOKEN_EXPIRED", "Token has expired"))
			} else {
				c.JSON(http.StatusUnauthorized, dto.Error("INVALID_TOKEN", "Invalid token"))
			}
			c.Abort()
			return
		}

		// 5. Set user info in context
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyUserRole, claims.Role)
		c.Set(ContextKeyDepartment, claims.Department)
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// RequireRole requires one of the given roles
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextKeyUserRole)
		if !exists {
			c.JSON(http.StatusForbidden, dto.Error("FORBIDDEN", "Access denied"))
			c.Abort()
			return
		}

		userRole := role.(models.UserRole)
		for _, r := range roles {
			if userRole == r {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, dto.Error("FORBIDDEN", "Insufficient permissions"))
		c.Abort()
	}
}

// RequireSupervisor requires the supervisor role
func RequireSupervisor() gin.HandlerFunc {
	return RequireRole(models.RoleSupervisor)
}

// ===========================================================================
// Context helpers
// ===========================================================================

// GetUserID returns the authenticated user id
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	id, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	return id.(uuid.UUID), true
}

// GetUsername returns the authenticated username
func GetUsername(c *gin.Context) (string, bool) {
	name, exists := c.Get(ContextKeyUsername)
	if !exists {
		return "", false
	}
	return name.(string), true
}

// GetUserRole returns the authenticated user role
func GetUserRole(c *gin.Context) (models.UserRole, bool) {
	role, exists := c.Get(ContextKeyUserRole)
	if !exists {
		return "", false
	}
	return role.(models.UserRole), true
}

// GetDepartment returns the authenticated user's department
func GetDepartment(c *gin.Context) (models.Department, bool) {
	dep, exists := c.Get(ContextKeyDepartment)
	if !exists {
		return "", false
	}
	return dep.(models.Department), true
}

// GetClaims returns the full token claims
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	claims, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	return claims.(*auth.Claims), true
}

// GetActor builds the audit identity from the session claims.
func GetActor(c *gin.Context) (models.Actor, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return models.Actor{}, false
	}
	return claims.Actor(), true
}
