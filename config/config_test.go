package config_test

import (
	"testing"
	"time"

	"go-gin-event-hub/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")

		cfg := config.LoadConfig()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.True(t, cfg.Server.IsProduction())
		assert.Equal(t, "DevEvent", cfg.Upload.Folder)
		assert.Equal(t, "noop", cfg.Mailer.Provider)
		assert.Equal(t, 5*time.Minute, cfg.Cache.EventTTL)
		assert.Empty(t, cfg.RabbitMQ.URL)
		assert.Equal(t, "http://localhost:3000", cfg.Server.BaseURL)
	})

	t.Run("FromEnvironment", func(t *testing.T) {
		t.Setenv("GO_ENV", "production")
		t.Setenv("PORT", "9090")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("EVENT_CACHE_TTL", "30s")
		t.Setenv("MAIL_PROVIDER", "ses")
		t.Setenv("BASE_URL", "https://events.example.com")

		cfg := config.LoadConfig()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 3, cfg.Redis.DB)
		assert.Equal(t, 30*time.Second, cfg.Cache.EventTTL)
		assert.Equal(t, "ses", cfg.Mailer.Provider)
		assert.Equal(t, "https://events.example.com", cfg.Server.BaseURL)
	})
}

func TestLoadTestConfig(t *testing.T) {
	cfg := config.LoadTestConfig()

	assert.Equal(t, "5433", cfg.Database.Port)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.False(t, cfg.Server.IsProduction())
}
