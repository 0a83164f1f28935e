package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFailsWithoutSecretInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AUTH_TOKEN_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingTokenSecret)
}

func TestLoadDevFallbackSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("AUTH_TOKEN_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.UsingDevSecret)
	require.Equal(t, DevTokenSecret, cfg.AuthTokenSecret)
}

func TestLoadExplicitSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("AUTH_TOKEN_SECRET", "super-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.UsingDevSecret)
	require.Equal(t, "super-secret", cfg.AuthTokenSecret)
}
