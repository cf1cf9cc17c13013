package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("requires the token secret", func(t *testing.T) {
		t.Setenv("ACCOUNT_TOKEN_SECRET", "")
		_, err := LoadConfig()
		require.ErrorIs(t, err, ErrMissingTokenSecret)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("ACCOUNT_TOKEN_SECRET", "test-secret")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, "accountd", cfg.Issuer)
		require.Equal(t, time.Hour, cfg.TokenTTL)
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("ACCOUNT_TOKEN_SECRET", "test-secret")
		t.Setenv("ACCOUNT_TOKEN_TTL", "30m")
		t.Setenv("PORT", "9090")
		t.Setenv("DEBUG", "true")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 30*time.Minute, cfg.TokenTTL)
		require.Equal(t, 9090, cfg.Port)
		require.True(t, cfg.Debug)
		require.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("plain integers read as minutes", func(t *testing.T) {
		t.Setenv("ACCOUNT_TOKEN_SECRET", "test-secret")
		t.Setenv("ACCOUNT_TOKEN_TTL", "90")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 90*time.Minute, cfg.TokenTTL)
	})
}
