// Package correlator demultiplexes responses arriving on a single
// WebSocket back to the request that caused them, and routes frames
// that carry no matching waiter to a per-method streaming sink.
package correlator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ocx/ogmios-go/internal/metrics"
	"github.com/ocx/ogmios-go/transport"
	"github.com/ocx/ogmios-go/wire"
)

type waiterResult struct {
	resp *wire.Response
	err  error
}

// Correlator owns the read loop for one connection and the registry of
// in-flight request waiters.
type Correlator struct {
	conn   *transport.Conn
	logger *slog.Logger

	mu      sync.Mutex
	waiters map[string]chan waiterResult
	closed  bool

	sinkMu     sync.RWMutex
	sinkMethod wire.MethodName
	sink       func(*wire.Response)

	metricsMu sync.RWMutex
	metrics   *metrics.Metrics
}

// SetMetrics attaches a collector set; every Send/Fire from this point
// on is counted and, for Send, timed. Safe to call at any time, nil is
// a valid "stop instrumenting" value.
func (c *Correlator) SetMetrics(m *metrics.Metrics) {
	c.metricsMu.Lock()
	defer c.metricsMu.Unlock()
	c.metrics = m
}

func (c *Correlator) currentMetrics() *metrics.Metrics {
	c.metricsMu.RLock()
	defer c.metricsMu.RUnlock()
	return c.metrics
}

// New wraps conn with a correlator. Callers must invoke Run in a
// goroutine before issuing any Send/Fire calls.
func New(conn *transport.Conn, logger *slog.Logger) *Correlator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Correlator{
		conn:    conn,
		logger:  logger,
		waiters: make(map[string]chan waiterResult),
	}
}

// SetSink registers the handler for frames whose methodname is method
// and that match no registered waiter — used for ChainSync's pipelined
// RequestNext stream. Only one method may have a sink at a time.
func (c *Correlator) SetSink(method wire.MethodName, fn func(*wire.Response)) {
	c.sinkMu.Lock()
	defer c.sinkMu.Unlock()
	c.sinkMethod = method
	c.sink = fn
}

// Run reads frames until the connection closes or ctx is done,
// dispatching each to its waiter or sink. It returns the error that
// ended the loop; a clean shutdown returns wire.ErrSocketClosed.
func (c *Correlator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			c.shutdown(ctx.Err())
			return ctx.Err()
		default:
		}

		data, err := c.conn.ReadMessage()
		if err != nil {
			c.shutdown(err)
			return err
		}
		c.handleFrame(data)
	}
}

func (c *Correlator) handleFrame(data []byte) {
	resp, fault, err := wire.ParseInbound(data)
	if err != nil {
		c.logger.Warn("discarding malformed inbound frame", "error", err)
		return
	}

	if fault != nil {
		if m := c.currentMetrics(); m != nil {
			m.FaultsReceived.WithLabelValues(fault.FaultDetail.Code).Inc()
		}
		rid := fault.Reflection.RequestID()
		if ch, ok := c.takeWaiter(rid); ok {
			ch <- waiterResult{err: &wire.JsonwspFaultError{Code: fault.FaultDetail.Code, String: fault.FaultDetail.String}}
			return
		}
		c.logger.Warn("fault for unknown or deregistered request", "requestId", rid, "code", fault.FaultDetail.Code)
		return
	}

	rid := resp.Reflection.RequestID()
	if ch, ok := c.takeWaiter(rid); ok {
		ch <- waiterResult{resp: resp}
		return
	}

	c.sinkMu.RLock()
	sink, method := c.sink, c.sinkMethod
	c.sinkMu.RUnlock()
	if sink != nil && resp.MethodName == method {
		sink(resp)
		return
	}

	c.logger.Warn("discarding unroutable response", "methodname", resp.MethodName, "requestId", rid)
}

func (c *Correlator) takeWaiter(rid string) (chan waiterResult, bool) {
	if rid == "" {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.waiters[rid]
	if ok {
		delete(c.waiters, rid)
	}
	return ch, ok
}

func (c *Correlator) shutdown(cause error) {
	c.mu.Lock()
	c.closed = true
	waiters := c.waiters
	c.waiters = make(map[string]chan waiterResult)
	c.mu.Unlock()

	for rid, ch := range waiters {
		c.logger.Debug("failing in-flight request on shutdown", "requestId", rid)
		ch <- waiterResult{err: fmt.Errorf("ogmios: connection closed while awaiting response: %w", wire.ErrSocketClosed)}
	}
	_ = cause
}

// newRequestID returns an opaque request identifier: a UUID's raw
// bytes, base64url-encoded without padding — a 64-symbol alphabet of
// letters, digits, '-' and '_', well above the 5-character minimum.
func newRequestID() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}

func mergeMirror(mirror wire.Mirror, rid string) wire.Mirror {
	merged := make(wire.Mirror, len(mirror)+1)
	for k, v := range mirror {
		merged[k] = v
	}
	merged["requestId"] = rid
	return merged
}

// Send writes a request, registers a single-shot waiter for it, and
// blocks until the matching response, fault, or ctx cancellation.
// Cancellation deregisters the waiter so late arrivals are discarded.
func (c *Correlator) Send(ctx context.Context, method wire.MethodName, args any, mirror wire.Mirror) (*wire.Response, error) {
	rid := newRequestID()
	merged := mergeMirror(mirror, rid)
	start := time.Now()
	m := c.currentMetrics()
	if m != nil {
		m.RequestsSent.WithLabelValues(string(method)).Inc()
	}

	ch := make(chan waiterResult, 1)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, wire.ErrSocketClosed
	}
	c.waiters[rid] = ch
	c.mu.Unlock()

	req := wire.NewRequest(method, args, merged)
	data, err := json.Marshal(req)
	if err != nil {
		c.mu.Lock()
		delete(c.waiters, rid)
		c.mu.Unlock()
		return nil, fmt.Errorf("ogmios: encoding request: %w", err)
	}

	if err := c.conn.WriteMessage(data); err != nil {
		c.mu.Lock()
		delete(c.waiters, rid)
		c.mu.Unlock()
		return nil, err
	}

	select {
	case result := <-ch:
		if m != nil {
			m.RequestDuration.WithLabelValues(string(method)).Observe(time.Since(start).Seconds())
		}
		c.conn.AfterEach(func() {
			c.logger.Debug("request completed", "method", method, "requestId", rid, "ok", result.err == nil)
		})
		return result.resp, result.err
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.waiters, rid)
		c.mu.Unlock()
		return nil, ctx.Err()
	}
}

// Fire writes a request without registering a waiter: the response is
// expected to arrive unmatched and be routed to the sink registered via
// SetSink. Used for ChainSync's pipelined RequestNext.
func (c *Correlator) Fire(method wire.MethodName, args any, mirror wire.Mirror) error {
	rid := newRequestID()
	merged := mergeMirror(mirror, rid)
	if m := c.currentMetrics(); m != nil {
		m.RequestsSent.WithLabelValues(string(method)).Inc()
	}

	req := wire.NewRequest(method, args, merged)
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("ogmios: encoding request: %w", err)
	}
	return c.conn.WriteMessage(data)
}
