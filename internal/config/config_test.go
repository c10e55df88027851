package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost user=app dbname=app_test")
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 7080, cfg.HTTP.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTTL)
	assert.Contains(t, cfg.Finance.Categories, "materials")
	assert.Contains(t, cfg.Finance.Categories, "other")
}

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost user=app dbname=app_test")
	t.Setenv("JWT_ACCESS_SECRET", "test-secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("FINANCE_CATEGORIES", "steel, concrete ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, []string{"steel", "concrete"}, cfg.Finance.Categories)
}
