package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tarotlabs/go-tarot-server/internal/config"
	apperrors "github.com/tarotlabs/go-tarot-server/internal/errors"
)

func setProviderEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("OIDC_ISSUER", "https://idp.example.com")
	t.Setenv("OIDC_CLIENT_ID", "client-id")
	t.Setenv("OIDC_CLIENT_SECRET", "client-secret")
	t.Setenv("OIDC_REDIRECT_URL", "http://localhost:8080/api/auth/callback")
}

func TestLoad(t *testing.T) {
	t.Run("full provider configuration", func(t *testing.T) {
		setProviderEnv(t)

		cfg, err := config.Load()
		require.NoError(t, err)
		require.Equal(t, "https://idp.example.com", cfg.OIDCIssuer)
		require.Equal(t, 24*time.Hour, cfg.SessionTokenTTL)
		require.Equal(t, 30*time.Minute, cfg.LoginSessionTTL)
		require.False(t, cfg.DemoMode)
	})

	t.Run("missing jwt secret is fatal", func(t *testing.T) {
		setProviderEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := config.Load()
		require.ErrorIs(t, err, apperrors.ErrMissingConfiguration)
	})

	t.Run("missing provider credentials are fatal", func(t *testing.T) {
		setProviderEnv(t)
		t.Setenv("OIDC_CLIENT_SECRET", "")

		_, err := config.Load()
		require.ErrorIs(t, err, apperrors.ErrMissingConfiguration)
		require.Contains(t, err.Error(), "OIDC_CLIENT_SECRET")
	})

	t.Run("demo mode runs without provider credentials", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("DEMO_MODE", "true")

		cfg, err := config.Load()
		require.NoError(t, err)
		require.True(t, cfg.DemoMode)
	})
}

func TestListenAddr(t *testing.T) {
	cfg := &config.Config{Port: "8080"}
	require.Equal(t, ":8080", cfg.ListenAddr())

	cfg.Port = ":9090"
	require.Equal(t, ":9090", cfg.ListenAddr())
}

func TestIsProduction(t *testing.T) {
	require.True(t, (&config.Config{Env: "production"}).IsProduction())
	require.True(t, (&config.Config{Env: "PROD"}).IsProduction())
	require.False(t, (&config.Config{Env: "development"}).IsProduction())
}
