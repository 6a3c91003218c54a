package services

import (
	"context"

	"radarboard/internal/auth"
	"radarboard/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Auth Service Interface
// Handle authentication: login, refresh, token validation. Role and
// department claims are always filled from the stored profile, never from
// the request.
// ===========================================================================

// LoginResult result of login operation
type LoginResult struct {
	User   *models.User
	Tokens *auth.TokenPair
}

// AuthService interface for authentication operations
type AuthService interface {
	// Login authenticates user with username and password
	// Returns user and tokens if successful
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// RefreshTokens generate new token pair using refresh token
	RefreshTokens(ctx context.Context, refreshToken string) (*LoginResult, error)

	// ValidateAccessToken validates access token and returns claims
	ValidateAccessToken(token string) (*auth.Claims, error)

	// GetUserByID gets user by ID
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// RevokeRefreshToken invalidates refresh token (for logout)
	RevokeRefreshToken(ctx context.Context, userID uuid.UUID) error
}
