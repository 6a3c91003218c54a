package auth

import (
	"testing"
	"time"

	"radarboard/internal/config"
	"radarboard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:         uuid.New(),
		Username:   "cco1",
		Role:       models.RoleAssistente,
		Department: models.DepartmentCCO,
	}
}

func testService(accessDur time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret",
		AccessDuration:  accessDur,
		RefreshDuration: 24 * time.Hour,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := testService(15 * time.Minute)
	user := testUser()

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "cco1", claims.Username)
	assert.Equal(t, models.RoleAssistente, claims.Role)
	assert.Equal(t, models.DepartmentCCO, claims.Department)
	assert.Equal(t, "access", claims.TokenType)

	actor := claims.Actor()
	assert.Equal(t, "cco1", actor.Username)
	assert.Equal(t, models.DepartmentCCO, actor.Department)
}

func TestJWTService_PairsAreUniquePerIssue(t *testing.T) {
	svc := testService(15 * time.Minute)
	user := testUser()

	first, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	second, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	// Issued back-to-back within the same second: the jti claim must still
	// make every token distinct, or refresh rotation could not tell the
	// new token from the one it replaces.
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	claims, err := svc.ValidateRefreshToken(first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)
}

func TestJWTService_TokenTypeEnforced(t *testing.T) {
	svc := testService(15 * time.Minute)

	pair, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := testService(-time.Minute)

	pair, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	pair, err := testService(15 * time.Minute).GenerateTokenPair(testUser())
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:          "different-secret",
		AccessDuration:  15 * time.Minute,
		RefreshDuration: 24 * time.Hour,
	})

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Garbage(t *testing.T) {
	svc := testService(15 * time.Minute)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
