// Package txmonitor implements the local mempool snapshot protocol:
// acquire a consistent view of the node's mempool, then walk it with
// HasTx/NextTx/SizeAndCapacity before releasing it.
package txmonitor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ocx/ogmios-go/internal/correlator"
	"github.com/ocx/ogmios-go/wire"
)

// State is the mempool-acquisition state machine: Idle until
// AwaitAcquire succeeds, Acquired until Release.
type State int

const (
	Idle State = iota
	Acquired
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Acquired:
		return "Acquired"
	default:
		return "Unknown"
	}
}

// Client drives the mempool-snapshot protocol over one correlator.
type Client struct {
	corr *correlator.Correlator

	mu    sync.Mutex
	state State
	slot  uint64
}

// New wraps corr with a mempool-monitoring client.
func New(corr *correlator.Correlator) *Client {
	return &Client{corr: corr}
}

// State returns the client's current acquisition state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

type awaitAcquireArgs struct {
	LastKnownTip *uint64 `json:"lastKnownTip,omitempty"`
}

// AwaitAcquire blocks until the node can offer a mempool snapshot at
// least as recent as lastKnownTip (pass nil for "any snapshot"), then
// acquires it and returns the slot it is consistent as of. A later
// call re-acquires a fresh snapshot, releasing any held one first only
// implicitly on the node's side — callers that want the previous
// snapshot's contents read before calling AwaitAcquire again.
func (c *Client) AwaitAcquire(ctx context.Context, lastKnownTip *uint64) (uint64, error) {
	resp, err := c.corr.Send(ctx, wire.MethodAwaitAcquire, awaitAcquireArgs{LastKnownTip: lastKnownTip}, nil)
	if err != nil {
		return 0, err
	}

	var result wire.AwaitAcquireResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return 0, fmt.Errorf("txmonitor: decoding AwaitAcquire result: %w", err)
	}

	c.mu.Lock()
	c.state = Acquired
	c.slot = result.Slot
	c.mu.Unlock()

	return result.Slot, nil
}

// AcquiredSlot returns the slot the held snapshot is consistent as
// of, if one is currently acquired.
func (c *Client) AcquiredSlot() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot, c.state == Acquired
}

// Release lets go of the acquired mempool snapshot.
func (c *Client) Release(ctx context.Context) error {
	c.mu.Lock()
	acquired := c.state == Acquired
	c.mu.Unlock()
	if !acquired {
		return &UnacquiredError{}
	}

	resp, err := c.corr.Send(ctx, wire.MethodReleaseMempool, struct{}{}, nil)
	if err != nil {
		return err
	}
	var status string
	if err := json.Unmarshal(resp.Result, &status); err != nil || status != "Released" {
		return fmt.Errorf("txmonitor: unrecognized ReleaseMempool result: %s", string(resp.Result))
	}

	c.mu.Lock()
	c.state = Idle
	c.slot = 0
	c.mu.Unlock()
	return nil
}
