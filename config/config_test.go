package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, "admin", cfg.Auth.AdminPassword)
	assert.Equal(t, "development-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.Equal(t, "json", cfg.Observability.LogFormat)
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := New(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "console", cfg.Observability.LogFormat)
}

func TestNew_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("TOKEN_TTL", "soon")

	cfg, err := New(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestNew_ProductionRequiresSecrets(t *testing.T) {
	t.Run("missing admin password", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SECRET", "secret")

		_, err := New(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("ADMIN_PASSWORD", "hunter2")

		_, err := New(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("fully configured", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("ADMIN_PASSWORD", "hunter2")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := New(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, "hunter2", cfg.Auth.AdminPassword)
	})
}
