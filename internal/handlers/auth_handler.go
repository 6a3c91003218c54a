package handlers

import (
	"net/http"
	"time"

	"radarboard/internal/dto"
	apperrors "radarboard/internal/errors"
	"radarboard/internal/middleware"
	"radarboard/internal/models"
	"radarboard/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Auth Handler
// Handle authentication endpoints: login, refresh, me, logout.
// Tokens travel in httpOnly cookies; the CSRF token is readable by JS.
// ===========================================================================

// AuthHandler handles the auth endpoints
type AuthHandler struct {
	authService services.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService services.AuthService,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// ===========================================================================
// Request/Response DTOs
// ===========================================================================

// LoginRequest body for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserResponse user data (no password)
type UserResponse struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email,omitempty"`
	Role       string     `json:"role"`
	Department string     `json:"department"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
}

func toUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID.String(),
		Username:   u.Username,
		Email:      u.Email,
		Role:       string(u.Role),
		Department: string(u.Department),
		LastLogin:  u.LastLogin,
	}
}

// ===========================================================================
// Handlers
// ===========================================================================

// Login authenticates a user
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.Error("INVALID_CREDENTIALS", "wrong username or password"))
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.Error("INTERNAL_ERROR", "something went wrong"))
		return
	}

	h.setAuthCookies(c, result)

	c.JSON(http.StatusOK, dto.Success(toUserResponse(result.User)))
}

// Refresh rotates the token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, dto.Error("NO_TOKEN", "refresh token missing"))
		return
	}

	result, err := h.authService.RefreshTokens(c.Request.Context(), refreshToken)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTokenExpired) {
			c.SetCookie("access_token", "", -1, "/", "", false, true)
			c.SetCookie("refresh_token", "", -1, "/", "", false, true)
			c.JSON(http.StatusUnauthorized, dto.Error("TOKEN_EXPIRED", "refresh token expired"))
			return
		}
		if apperrors.Is(err, apperrors.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, dto.Error("INVALID_TOKEN", "invalid refresh token"))
			return
		}
		h.logger.Error("refresh failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.Error("INTERNAL_ERROR", "something went wrong"))
		return
	}

	h.setAuthCookies(c, result)

	c.JSON(http.StatusOK, dto.Success(toUserResponse(result.User)))
}

// Me returns the current user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.Error("USER_NOT_FOUND", "user does not exist"))
		return
	}

	c.JSON(http.StatusOK, dto.Success(toUserResponse(user)))
}

// Logout revokes the refresh token and clears cookies
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if ok {
		if err := h.authService.RevokeRefreshToken(c.Request.Context(), userID); err != nil {
			h.logger.Warn("revoke refresh token failed", zap.Error(err))
		}
	}

	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)
	c.SetCookie("csrf_token", "", -1, "/", "", false, false)

	c.JSON(http.StatusOK, dto.Success(gin.H{"message": "logged out"}))
}

// setAuthCookies sets the httpOnly token cookies plus the CSRF token.
func (h *AuthHandler) setAuthCookies(c *gin.Context, result *services.LoginResult) {
	accessMaxAge := int(time.Until(result.Tokens.ExpiresAt).Seconds())

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", result.Tokens.AccessToken, accessMaxAge, "/", "", false, true)
	c.SetCookie("refresh_token", result.Tokens.RefreshToken, 604800, "/", "", false, true)

	csrfToken, err := middleware.GenerateCSRFToken()
	if err != nil {
		h.logger.Error("generate csrf token failed", zap.Error(err))
	} else {
		middleware.SetCSRFCookie(c, csrfToken)
	}
}

// ===========================================================================
// Route Registration
// ===========================================================================

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)

		auth.GET("/me", authMiddleware, h.Me)
		auth.POST("/logout", authMiddleware, h.Logout)
	}
}
