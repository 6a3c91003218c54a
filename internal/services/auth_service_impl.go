package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"radarboard/internal/auth"
	apperrors "radarboard/internal/errors"
	"radarboard/internal/models"
	"radarboard/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Auth Service Implementation
// ===========================================================================

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   repositories.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// hashToken creates SHA256 hash of token for storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// Login authenticates user with username and password
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error("find user by username failed",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find user by username: %w", err)
	}

	// Verify password
	if !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Generate tokens; role and department come from the stored profile
	tokens, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("generate token failed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("generate token: %w", err)
	}

	// Hash and store the refresh token for later validation
	tokenHash := hashToken(tokens.RefreshToken)
	user.RefreshTokenHash = &tokenHash
	user.UpdateLastLogin()

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("save refresh token hash failed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		// login still succeeds, refresh will just fail later
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("department", string(user.Department)),
	)

	return &LoginResult{User: user, Tokens: tokens}, nil
}

// RefreshTokens generates new token pair using refresh token
func (s *authServiceImpl) RefreshTokens(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	// Validate refresh token hash against DB
	tokenHash := hashToken(refreshToken)
	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != tokenHash {
		s.logger.Warn("refresh token hash mismatch - token possibly revoked",
			zap.String("user_id", user.ID.String()),
		)
		return nil, apperrors.ErrInvalidToken
	}

	tokens, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error("generate token failed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("generate token: %w", err)
	}

	// Token rotation: store the new hash
	newTokenHash := hashToken(tokens.RefreshToken)
	user.RefreshTokenHash = &newTokenHash

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("update refresh token hash failed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
	}

	return &LoginResult{User: user, Tokens: tokens}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *authServiceImpl) ValidateAccessToken(token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// GetUserByID gets user by ID
func (s *authServiceImpl) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// RevokeRefreshToken invalidates refresh token (for logout)
func (s *authServiceImpl) RevokeRefreshToken(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrNotFound
	}

	user.RefreshTokenHash = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	s.logger.Info("refresh token revoked",
		zap.String("user_id", userID.String()),
	)

	return nil
}
