package jwt

import (
	"testing"
	"time"

	"clinic-records-api/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(accessExpiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: time.Hour,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService(time.Minute)
	userID := uuid.New()

	access, accessID, err := svc.GenerateAccessToken(userID, 1)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, 1, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, accessID, claims.TokenID)

	refresh, refreshID, err := svc.GenerateRefreshToken(userID, 1)
	require.NoError(t, err)
	assert.NotEqual(t, accessID, refreshID)

	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := newService(-time.Minute)

	access, _, err := svc.GenerateAccessToken(uuid.New(), 2)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	access, _, err := newService(time.Minute).GenerateAccessToken(uuid.New(), 2)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "other", AccessExpiry: time.Minute})
	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}
