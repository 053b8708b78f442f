package transport

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ocx/ogmios-go/health"
	"github.com/ocx/ogmios-go/wire"
)

// Conn is an open WebSocket to the bridge, gating establishment on the
// health probe and applying the interaction-type close policy around
// each callback.
type Conn struct {
	cfg    Config
	ws     *websocket.Conn
	logger *slog.Logger

	writeMu sync.Mutex
	closed  bool
	closeMu sync.Mutex
}

// Dial performs the health probe, then opens the WebSocket. It returns
// *health.ServerNotReady if the bridge reports itself unready, passing
// the probe's error through unchanged rather than attempting the socket
// at all.
func Dial(ctx context.Context, cfg Config, logger *slog.Logger) (*Conn, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := health.Check(ctx, nil, cfg.HTTPBaseURL(), logger); err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	wsURL := cfg.WebSocketURL()
	logger.Debug("dialing bridge websocket", "url", wsURL)

	ws, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ogmios: dialing %s: %w", wsURL, err)
	}
	ws.SetReadLimit(int64(cfg.MaxPayload))

	logger.Info("bridge websocket connected", "url", wsURL, "interactionType", cfg.InteractionType)
	return &Conn{cfg: cfg, ws: ws, logger: logger}, nil
}

// WriteMessage sends a complete text frame. Safe for concurrent use.
func (c *Conn) WriteMessage(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.isClosed() {
		return wire.ErrSocketClosed
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// ReadMessage blocks for the next complete text frame.
func (c *Conn) ReadMessage() ([]byte, error) {
	if c.isClosed() {
		return nil, wire.ErrSocketClosed
	}
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		if c.isClosed() {
			return nil, wire.ErrSocketClosed
		}
		return nil, fmt.Errorf("ogmios: reading frame: %w", err)
	}
	return data, nil
}

// AfterEach applies the interaction-type close policy: OneTime closes
// the socket with a normal closure after fn returns; LongRunning leaves
// it open.
func (c *Conn) AfterEach(fn func()) {
	fn()
	if c.cfg.InteractionType == OneTime {
		_ = c.Close()
	}
}

// Close initiates a normal-closure handshake and releases the
// underlying socket. Safe to call more than once.
func (c *Conn) Close() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	c.writeMu.Lock()
	_ = c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()

	c.logger.Debug("bridge websocket closing")
	return c.ws.Close()
}

func (c *Conn) isClosed() bool {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	return c.closed
}
