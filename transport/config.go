// Package transport manages the WebSocket connection to the bridge:
// dialing, per-interaction close policy, and frame I/O.
package transport

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"
)

// InteractionType controls what happens to the socket once a caller's
// callback returns.
type InteractionType string

const (
	// OneTime closes the socket with a normal closure after the
	// callback completes. Intended for single queries.
	OneTime InteractionType = "OneTime"
	// LongRunning leaves the socket open after the callback completes.
	LongRunning InteractionType = "LongRunning"
)

const defaultMaxPayload = 128 * 1024 * 1024

// Config holds the recognized connection options. Zero values are
// replaced by DefaultConfig's defaults wherever a field is left unset.
type Config struct {
	Host            string          `yaml:"host"`
	Port            int             `yaml:"port"`
	TLS             bool            `yaml:"tls"`
	MaxPayload      int             `yaml:"max_payload"`
	InteractionType InteractionType `yaml:"interaction_type"`
	// LogLevel is one of DEBUG, INFO, WARN, ERROR. See ParseLogLevel.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the recognized defaults: host=localhost,
// port=1337, tls=false, maxPayload=128 MiB, interactionType=OneTime,
// logLevel=DEBUG.
func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            1337,
		TLS:             false,
		MaxPayload:      defaultMaxPayload,
		InteractionType: OneTime,
		LogLevel:        "DEBUG",
	}
}

// withDefaults fills any zero-valued field from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Host == "" {
		c.Host = d.Host
	}
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.MaxPayload == 0 {
		c.MaxPayload = d.MaxPayload
	}
	if c.InteractionType == "" {
		c.InteractionType = d.InteractionType
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}

// ParseLogLevel maps the recognized DEBUG|INFO|WARN|ERROR strings onto
// slog.Level, defaulting to slog.LevelDebug for anything else.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// HTTPBaseURL returns the {http,https}://host:port base used by the
// health gate.
func (c Config) HTTPBaseURL() string {
	scheme := "http"
	if c.TLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// WebSocketURL returns the {ws,wss}://host:port endpoint the
// connection dials.
func (c Config) WebSocketURL() string {
	scheme := "ws"
	if c.TLS {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// LoadConfigYAML reads a Config from a YAML file at path. Unset fields
// keep their YAML zero value; apply withDefaults (done automatically
// by Dial) to fill in the recognized defaults.
func LoadConfigYAML(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening transport config %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding transport config %s: %w", path, err)
	}
	return cfg, nil
}
