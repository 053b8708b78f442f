package transport

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 1337, cfg.Port)
	assert.False(t, cfg.TLS)
	assert.Equal(t, defaultMaxPayload, cfg.MaxPayload)
	assert.Equal(t, OneTime, cfg.InteractionType)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("nonsense"))
}

func TestConfigURLs(t *testing.T) {
	cfg := Config{Host: "example.com", Port: 443, TLS: true}
	assert.Equal(t, "https://example.com:443", cfg.HTTPBaseURL())
	assert.Equal(t, "wss://example.com:443", cfg.WebSocketURL())

	cfg.TLS = false
	assert.Equal(t, "http://example.com:443", cfg.HTTPBaseURL())
	assert.Equal(t, "ws://example.com:443", cfg.WebSocketURL())
}

func TestWithDefaultsFillsOnlyZeroFields(t *testing.T) {
	cfg := Config{Host: "bridge.internal"}.withDefaults()
	assert.Equal(t, "bridge.internal", cfg.Host)
	assert.Equal(t, 1337, cfg.Port)
	assert.Equal(t, defaultMaxPayload, cfg.MaxPayload)
}

func TestLoadConfigYAML(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	require.NoError(t, err)
	_, err = f.WriteString("host: bridge.example.com\nport: 1338\ntls: true\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cfg, err := LoadConfigYAML(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "bridge.example.com", cfg.Host)
	assert.Equal(t, 1338, cfg.Port)
	assert.True(t, cfg.TLS)
}

func TestLoadConfigYAMLMissingFile(t *testing.T) {
	_, err := LoadConfigYAML("/nonexistent/path.yaml")
	require.Error(t, err)
}
