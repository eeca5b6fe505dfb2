package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.CatalogPath)
	assert.Equal(t, 10*time.Minute, cfg.CatalogTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 4, cfg.Parallel)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.False(t, cfg.GuideEnabled())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GHOSTBOOK_CATALOG", "/tmp/ghosts.yaml")
	t.Setenv("GHOSTBOOK_CATALOG_TTL", "30s")
	t.Setenv("GHOSTBOOK_LOG_FORMAT", "json")
	t.Setenv("GHOSTBOOK_PARALLEL", "8")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ghosts.yaml", cfg.CatalogPath)
	assert.Equal(t, 30*time.Second, cfg.CatalogTTL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 8, cfg.Parallel)
	assert.True(t, cfg.GuideEnabled())
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := map[string][2]string{
		"parallel zero": {"GHOSTBOOK_PARALLEL", "0"},
		"parallel text": {"GHOSTBOOK_PARALLEL", "many"},
		"bad ttl":       {"GHOSTBOOK_CATALOG_TTL", "soon"},
		"bad format":    {"GHOSTBOOK_LOG_FORMAT", "xml"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
