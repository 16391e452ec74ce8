// nolint: funlen
package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bechdel/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":            "test",
			"PORT":               "9090",
			"SENTRY_DSN":         "https://test@sentry.io/123",
			"ALLOW_ORIGINS":      "https://a.example, https://b.example",
			"DATASET_SOURCE":     "postgres",
			"DATASET_PATH":       "/srv/movies.json",
			"DATASET_WATCH":      "true",
			"HTTP_CACHE_MAX_AGE": "60",
			"HTTP_RATE_LIMIT":    "2.5",
			"DB_NAME":            "films",
			"DB_HOST":            "localhost",
			"DB_PORT":            "5432",
			"DB_USER":            "reader",
			"DB_PASS":            "secret",
			"ENABLE_SSL":         "true",
			"AUTH_JWT_SECRET":    "jwt-secret",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
		assert.Equal(t, config.DatasetSourcePostgres, cfg.Dataset.Source)
		assert.Equal(t, "/srv/movies.json", cfg.Dataset.Path)
		assert.True(t, cfg.Dataset.Watch)
		assert.Equal(t, 60, cfg.HTTP.CacheMaxAge)
		assert.Equal(t, 2.5, cfg.HTTP.RateLimit)
		assert.Equal(t, "films", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.Equal(t, "reader", cfg.DB.User)
		assert.Equal(t, "secret", cfg.DB.Pass)
		assert.True(t, cfg.DB.EnableSSL)
		assert.Equal(t, "jwt-secret", cfg.Auth.JWTSecret)
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, config.DatasetSourceFile, cfg.Dataset.Source)
		assert.Equal(t, "data/movies.csv", cfg.Dataset.Path)
		assert.False(t, cfg.Dataset.Watch)
		assert.Equal(t, 5000, cfg.HTTP.CacheMaxAge)
		assert.Equal(t, float64(20), cfg.HTTP.RateLimit)
		assert.Empty(t, cfg.Origins())
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("DATASET_WATCH", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("rejects unknown dataset source", func(t *testing.T) {
		t.Setenv("DATASET_SOURCE", "mongodb")

		cfg, err := config.LoadConfig()

		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, `unknown DATASET_SOURCE "mongodb"`)
	})
}
