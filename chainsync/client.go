// Package chainsync implements the intersection handshake and the
// pipelined RequestNext block-streaming loop.
package chainsync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ocx/ogmios-go/internal/correlator"
	"github.com/ocx/ogmios-go/internal/metrics"
	"github.com/ocx/ogmios-go/wire"
)

// Handlers are the caller's roll-forward/roll-backward callbacks. Each
// is invoked with a next function that refills the RequestNext window
// by one; callers MUST call next exactly once per dispatch (a second
// call is a harmless no-op, a missed call starves the window).
type Handlers struct {
	RollForward  func(block wire.Block, tip wire.TipOrOrigin, next func())
	RollBackward func(point wire.PointOrOrigin, tip wire.TipOrOrigin, next func())
}

const defaultInFlight = 100

// Client drives the ChainSync mini-protocol: FindIntersect followed by
// a pipelined, flow-controlled RequestNext stream.
type Client struct {
	corr   *correlator.Correlator
	closer func() error
	logger *slog.Logger

	mu         sync.Mutex
	handlers   Handlers
	sequential bool

	seqCh chan func()
	done  chan struct{}

	metricsMu sync.RWMutex
	metrics   *metrics.Metrics
}

// SetMetrics attaches a collector set; the in-flight RequestNext
// window depth is reported on ChainSyncWindow from this point on.
func (c *Client) SetMetrics(m *metrics.Metrics) {
	c.metricsMu.Lock()
	defer c.metricsMu.Unlock()
	c.metrics = m
}

func (c *Client) currentMetrics() *metrics.Metrics {
	c.metricsMu.RLock()
	defer c.metricsMu.RUnlock()
	return c.metrics
}

// New wraps corr with a ChainSync client. closer is invoked by
// Shutdown to close the underlying socket.
func New(corr *correlator.Correlator, closer func() error, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		corr:   corr,
		closer: closer,
		logger: logger,
		seqCh:  make(chan func(), 1024),
		done:   make(chan struct{}),
	}
	go c.runSequentialWorker()
	return c
}

// FindIntersect asks the bridge to locate the best intersection among
// points on its selected chain.
func (c *Client) FindIntersect(ctx context.Context, points []wire.PointOrOrigin) (wire.IntersectionFound, error) {
	var zero wire.IntersectionFound

	resp, err := c.corr.Send(ctx, wire.MethodFindIntersect, map[string]any{"points": points}, nil)
	if err != nil {
		return zero, err
	}

	var result wire.FindIntersectResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return zero, fmt.Errorf("chainsync: decoding FindIntersect result: %w", err)
	}

	switch {
	case result.Found != nil:
		return *result.Found, nil
	case result.NotFound != nil:
		return zero, &IntersectionNotFoundError{Points: len(points)}
	default:
		return zero, &UnknownResultError{}
	}
}

// resolveTipPoint intersects with [origin] to discover the bridge's
// current tip and returns it as a sync starting point.
func (c *Client) resolveTipPoint(ctx context.Context) (wire.PointOrOrigin, error) {
	found, err := c.FindIntersect(ctx, []wire.PointOrOrigin{wire.OriginPoint})
	if err != nil {
		return wire.PointOrOrigin{}, err
	}
	if found.Tip.IsOrigin {
		return wire.PointOrOrigin{}, &TipIsOriginError{}
	}
	return wire.PointOf(wire.Point{Slot: found.Tip.Tip.Slot, Hash: found.Tip.Tip.Hash}), nil
}

// StartSync locates the intersection among points (resolving the
// current tip as the sole point when points is empty) and then
// pipelines inFlight RequestNext messages (defaulting to 100). Server
// responses are dispatched to handlers as they arrive; when sequential
// is true, dispatch is serialized so the next response waits for the
// previous handler to return.
func (c *Client) StartSync(ctx context.Context, points []wire.PointOrOrigin, inFlight int, handlers Handlers, sequential bool) (wire.IntersectionFound, error) {
	var zero wire.IntersectionFound

	if len(points) == 0 {
		p, err := c.resolveTipPoint(ctx)
		if err != nil {
			return zero, err
		}
		points = []wire.PointOrOrigin{p}
	}

	found, err := c.FindIntersect(ctx, points)
	if err != nil {
		return zero, err
	}

	c.mu.Lock()
	c.handlers = handlers
	c.sequential = sequential
	c.mu.Unlock()
	c.corr.SetSink(wire.MethodRequestNext, c.onResponse)

	n := inFlight
	if n <= 0 {
		n = defaultInFlight
	}
	for i := 0; i < n; i++ {
		if err := c.corr.Fire(wire.MethodRequestNext, nil, nil); err != nil {
			return found, fmt.Errorf("chainsync: priming RequestNext window: %w", err)
		}
		if m := c.currentMetrics(); m != nil {
			m.ChainSyncWindow.WithLabelValues().Inc()
		}
	}
	return found, nil
}

// Shutdown closes the underlying socket; any RequestNext responses
// already in flight are discarded by the reader loop's shutdown path.
func (c *Client) Shutdown() error {
	close(c.done)
	if c.closer == nil {
		return nil
	}
	return c.closer()
}
