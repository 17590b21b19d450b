package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-with-enough-length",
		RefreshSecret:          "test-refresh-secret-with-enough-length",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "jubilee-backoffice-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()
	roleID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:   userID,
		Username: "jdoe",
		RoleID:   roleID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, roleID.String(), claims.RoleID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID, "JTI must be set for blacklisting")
}

func TestJWTService_TokenTypeMismatch(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(), Username: "jdoe", RoleID: uuid.New(),
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTService(config.JWTConfig{
		Secret:                 "a-completely-different-secret-key-here",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "other",
	})
	pair, err := other.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(), Username: "x", RoleID: uuid.New(),
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-with-enough-length",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test",
	})
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(), Username: "x", RoleID: uuid.New(),
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
