// Package statequery implements the acquire/release state machine and
// the typed ledger queries dispatched through it.
package statequery

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ocx/ogmios-go/internal/correlator"
	"github.com/ocx/ogmios-go/wire"
)

// State is the client's position in the Idle/Acquiring/Acquired state
// machine.
type State int

const (
	Idle State = iota
	Acquiring
	Acquired
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Acquiring:
		return "Acquiring"
	case Acquired:
		return "Acquired"
	default:
		return "Unknown"
	}
}

// Client drives the StateQuery mini-protocol over a shared correlator.
// A Client is safe for concurrent use: its state is guarded by a mutex,
// but requests themselves are not serialized and may be in flight
// concurrently over the correlator.
type Client struct {
	corr *correlator.Correlator

	mu    sync.Mutex
	state State
	point wire.PointOrOrigin
}

// New wraps corr with a StateQuery client in the Idle state.
func New(corr *correlator.Correlator) *Client {
	return &Client{corr: corr}
}

// State reports the client's current position in the state machine.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

type acquireArgs struct {
	Point wire.PointOrOrigin `json:"point"`
}

// Acquire pins a ledger snapshot at point. On success the client
// transitions to Acquired; on failure it returns to Idle and the
// error is one of *AcquirePointTooOldError, *AcquirePointNotOnChainError,
// or *AcquirePointFailureError.
func (c *Client) Acquire(ctx context.Context, point wire.PointOrOrigin) error {
	return c.acquire(ctx, wire.MethodAcquire, point)
}

// AwaitAcquire blocks until point becomes available (a future slot
// the bridge has not yet reached) and then acquires it. Semantics are
// otherwise identical to Acquire.
func (c *Client) AwaitAcquire(ctx context.Context, point wire.PointOrOrigin) error {
	return c.acquire(ctx, wire.MethodAwaitAcquire, point)
}

func (c *Client) acquire(ctx context.Context, method wire.MethodName, point wire.PointOrOrigin) error {
	c.mu.Lock()
	c.state = Acquiring
	c.mu.Unlock()

	resp, err := c.corr.Send(ctx, method, acquireArgs{Point: point}, nil)
	if err != nil {
		c.mu.Lock()
		c.state = Idle
		c.mu.Unlock()
		return err
	}

	var result wire.AcquireResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		c.mu.Lock()
		c.state = Idle
		c.mu.Unlock()
		return fmt.Errorf("statequery: decoding acquire result: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if result.Success {
		c.state = Acquired
		c.point = result.Point
		return nil
	}
	c.state = Idle
	switch result.Reason {
	case wire.AcquireFailurePointTooOld:
		return &AcquirePointTooOldError{}
	case wire.AcquireFailurePointNotOnChain:
		return &AcquirePointNotOnChainError{}
	default:
		return &AcquirePointFailureError{Raw: result.RawReason}
	}
}

// Release unpins the acquired snapshot and returns the client to
// Idle. It is a no-op error if no point is currently acquired.
func (c *Client) Release(ctx context.Context) error {
	c.mu.Lock()
	if c.state != Acquired {
		c.mu.Unlock()
		return ErrNotAcquired
	}
	c.mu.Unlock()

	_, err := c.corr.Send(ctx, wire.MethodRelease, nil, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.state = Idle
	c.point = wire.PointOrOrigin{}
	c.mu.Unlock()
	return nil
}

// AcquiredPoint returns the currently acquired point and true, or the
// zero point and false if the client is not in the Acquired state.
func (c *Client) AcquiredPoint() (wire.PointOrOrigin, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.point, c.state == Acquired
}
