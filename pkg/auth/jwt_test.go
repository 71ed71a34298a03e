package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPair(t *testing.T, secret string) (*JWTGenerator, *JWTValidator) {
	t.Helper()
	generator, err := NewJWTGenerator(JWTGeneratorConfig{SecretKey: secret, Issuer: "dotspark-backend"})
	require.NoError(t, err)
	validator, err := NewJWTValidator(JWTConfig{SecretKey: secret, Issuer: "dotspark-backend"})
	require.NoError(t, err)
	return generator, validator
}

func TestJWT_RoundTrip(t *testing.T) {
	generator, validator := newPair(t, "secret-1")

	token, err := generator.GenerateToken("user-1", "user@example.com", []string{"authenticated"})
	require.NoError(t, err)

	claims, err := validator.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	generator, _ := newPair(t, "secret-1")
	_, validator := newPair(t, "secret-2")

	token, err := generator.GenerateToken("user-1", "", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_ExpiredTokenRejected(t *testing.T) {
	generator, err := NewJWTGenerator(JWTGeneratorConfig{
		SecretKey:  "secret-1",
		Issuer:     "dotspark-backend",
		ExpiryTime: -time.Minute,
	})
	require.NoError(t, err)
	_, validator := newPair(t, "secret-1")

	token, err := generator.GenerateToken("user-1", "", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWT_MissingTokenRejected(t *testing.T) {
	_, validator := newPair(t, "secret-1")

	_, err := validator.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}
