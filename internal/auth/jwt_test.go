package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-characters!", 15*time.Minute)

	token, err := m.GenerateToken("user-1", "shopper@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "shopper@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "grocery-api", claims.Issuer)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-characters!", -time.Minute)

	token, err := m.GenerateToken("user-1", "shopper@example.com", "user")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m1 := NewJWTManager("test-secret-at-least-32-characters!", 15*time.Minute)
	m2 := NewJWTManager("another-secret-also-32-characters!!", 15*time.Minute)

	token, err := m1.GenerateToken("user-1", "shopper@example.com", "admin")
	require.NoError(t, err)

	claims, err := m2.ValidateToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTManager_GarbageToken(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-characters!", 15*time.Minute)

	claims, err := m.ValidateToken("not.a.token")
	assert.Nil(t, claims)
	assert.Error(t, err)
}
