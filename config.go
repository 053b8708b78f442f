package ogmios

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ocx/ogmios-go/transport"
)

// Config configures a bridge connection and the engines built on top
// of it.
type Config struct {
	// Host and Port address the bridge (defaults: localhost:1337).
	Host string
	Port int
	// TLS dials wss:// / https:// instead of ws:// / http://.
	TLS bool
	// MaxPayload caps the largest WebSocket frame accepted (default
	// 128 MiB).
	MaxPayload int
	// InteractionType controls what happens to the socket once the
	// caller is done with it (default transport.OneTime).
	InteractionType transport.InteractionType
	// LogLevel is one of DEBUG, INFO, WARN, ERROR (default DEBUG). It
	// only affects the logger Dial constructs when Logger is nil.
	LogLevel string

	// Logger receives structured logs from every layer. Defaults to a
	// slog.Logger at LogLevel when nil.
	Logger *slog.Logger

	// MetricsRegisterer, when non-nil, registers the Prometheus
	// collectors shared by the correlator and engines. It is only used
	// when MetricsEnabled is true.
	MetricsRegisterer prometheus.Registerer
	// MetricsEnabled turns on metrics collection against
	// MetricsRegisterer (or the default global registry when
	// MetricsRegisterer is nil).
	MetricsEnabled bool
}

func (c Config) transportConfig() transport.Config {
	return transport.Config{
		Host:            c.Host,
		Port:            c.Port,
		TLS:             c.TLS,
		MaxPayload:      c.MaxPayload,
		InteractionType: c.InteractionType,
		LogLevel:        c.LogLevel,
	}
}
