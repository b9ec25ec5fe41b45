package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user-1", "a@b.co")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseJWTRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseJWT("")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	signed, err := GenerateJWT("user-1", "a@b.co")
	require.NoError(t, err)
	t.Setenv("JWT_SECRET", "test-secret")
	_, err = ParseJWT(signed)
	assert.Error(t, err, "wrong secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	s, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = ParseJWT(s)
	assert.Error(t, err, "expired")

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{})
	s, err = noUser.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = ParseJWT(s)
	assert.Error(t, err, "missing user id")
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("FORMCRAFT_TEST_VALUE", "")
	assert.Equal(t, "def", GetEnv("FORMCRAFT_TEST_VALUE", "def"))
	t.Setenv("FORMCRAFT_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("FORMCRAFT_TEST_VALUE", "def"))

	t.Setenv("FORMCRAFT_TEST_TTL", "90m")
	assert.Equal(t, 90*time.Minute, GetEnvDuration("FORMCRAFT_TEST_TTL", time.Hour))
	t.Setenv("FORMCRAFT_TEST_TTL", "soon")
	assert.Equal(t, time.Hour, GetEnvDuration("FORMCRAFT_TEST_TTL", time.Hour))
	t.Setenv("FORMCRAFT_TEST_TTL", "-5s")
	assert.Equal(t, time.Hour, GetEnvDuration("FORMCRAFT_TEST_TTL", time.Hour))
}
