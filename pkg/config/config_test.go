package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "gemini-pro", cfg.GeminiModel)
	assert.InDelta(t, 0.3, cfg.LLMTemperature, 1e-9)
	assert.Equal(t, 500, cfg.LLMMaxTokens)
	assert.InDelta(t, 0.9, cfg.LLMTopP, 1e-9)
	assert.Equal(t, 10*time.Second, cfg.ExternalAPITimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.LeaderboardTopN)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CorsOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CHAT_RATE_LIMIT", "12")
	t.Setenv("CORS_ORIGINS", "https://stats.example.com")
	t.Setenv("EXTERNAL_API_TIMEOUT", "3s")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 12, cfg.ChatRateLimit)
	assert.Equal(t, []string{"https://stats.example.com"}, cfg.CorsOrigins)
	assert.Equal(t, 3*time.Second, cfg.ExternalAPITimeout)
}
