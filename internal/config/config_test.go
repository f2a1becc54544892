package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frame-art-backend/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.GeminiBaseURL)
	assert.Equal(t, "v1beta", cfg.GeminiAPIVersion)
	assert.Equal(t, "artworks", cfg.SupabaseStorageBucket)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.InDelta(t, 1.0, cfg.GeminiRequestsPerSecond, 1e-9)
}

func TestLoadReadsOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "120")
	t.Setenv("GEMINI_REQUESTS_PER_SECOND", "0.5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
	assert.InDelta(t, 0.5, cfg.GeminiRequestsPerSecond, 1e-9)
}

func TestLoadMissingSupabaseURL(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")
}

func TestLoadMissingServiceKey(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_SERVICE_KEY")
}

func TestLoadAllowsMissingGeminiKey(t *testing.T) {
	setRequired(t)
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestLoadIgnoresUnparseableNumbers(t *testing.T) {
	setRequired(t)
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "soon")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}
