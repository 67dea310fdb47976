package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emonshikder007/chat-app/config"
)

func Test_JWTRoundTrip(t *testing.T) {
	cfg := config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiredIn = 1

	userID := uuid.New()

	token, err := GenerateJWTToken(userID, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func Test_ParseJWTToken_BadInputs(t *testing.T) {
	cfg := config.Config{}
	cfg.JWT.Secret = "test-secret"

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseJWTToken("not-a-token", cfg)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateJWTToken(uuid.New(), cfg)
		require.NoError(t, err)

		other := config.Config{}
		other.JWT.Secret = "different-secret"
		_, err = ParseJWTToken(token, other)
		assert.Error(t, err)
	})

	t.Run("non-positive expiry falls back to 24h", func(t *testing.T) {
		short := cfg
		short.JWT.ExpiredIn = -1

		token, err := GenerateJWTToken(uuid.New(), short)
		require.NoError(t, err)
		_, err = ParseJWTToken(token, cfg)
		assert.NoError(t, err)
	})
}
