package auth

import (
	"errors"
	"time"

	"radarboard/internal/config"
	"radarboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ===========================================================================
// JWT Service
// Generate and validate JWT tokens for authentication.
// Role and department claims are filled from the stored user profile at
// login; the client never supplies them.
// ===========================================================================

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims custom JWT claims
type Claims struct {
	UserID     uuid.UUID         `json:"user_id"`
	Username   string            `json:"username"`
	Role       models.UserRole   `json:"role"`
	Department models.Department `json:"department"`
	TokenType  string            `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// Actor builds the audit identity carried by this session.
func (c *Claims) Actor() models.Actor {
	return models.Actor{Username: c.Username, Department: c.Department}
}

// TokenPair access and refresh tokens
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// JWTService signs and validates tokens
type JWTService struct {
	secret          []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:          []byte(cfg.Secret),
		accessDuration:  cfg.AccessDuration,
		refreshDuration: cfg.RefreshDuration,
	}
}

// GenerateTokenPair creates an access + refresh token pair for a user
func (s *JWTService) GenerateTokenPair(user *models.User) (*TokenPair, error) {
	now := time.Now()
	accessExp := now.Add(s.accessDuration)
	refreshExp := now.Add(s.refreshDuration)

	accessClaims := Claims{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		Department: user.Department,
		TokenType:  "access",
		RegisteredClaims: jwt.RegisteredClaims{
			// A fresh jti per token: iat/exp only have one-second
			// resolution, so without it two pairs issued within the
			// same second would be byte-identical and rotation could
			// not invalidate the previous refresh token.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(accessExp),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID.String(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	refreshClaims := Claims{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		Department: user.Department,
		TokenType:  "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID.String(),
		},
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresAt:    accessExp,
	}, nil
}

// ValidateToken validates a token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateAccessToken validates an access token
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != "access" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateRefreshToken validates a refresh token
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != "refresh" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
