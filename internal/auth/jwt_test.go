package auth

import (
	"testing"
	"time"

	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(expiresIn time.Duration) config.Config {
	return config.Config{JWTSecret: "test-secret", JWTExpiresIn: expiresIn}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testConfig(time.Hour))

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewTokenService(testConfig(-time.Minute))

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewTokenService(testConfig(time.Hour))
	verifier := NewTokenService(config.Config{JWTSecret: "other-secret", JWTExpiresIn: time.Hour})

	token, err := issuer.GenerateToken(42)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewTokenService(testConfig(time.Hour))

	_, err := svc.ParseToken("not.a.token")
	assert.Error(t, err)
}
