package txmonitor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ocx/ogmios-go/wire"
)

func (c *Client) requireAcquired() error {
	c.mu.Lock()
	acquired := c.state == Acquired
	c.mu.Unlock()
	if !acquired {
		return &UnacquiredError{}
	}
	return nil
}

type hasTxArgs struct {
	ID string `json:"id"`
}

// HasTx reports whether txID is present in the acquired snapshot.
func (c *Client) HasTx(ctx context.Context, txID string) (bool, error) {
	if err := c.requireAcquired(); err != nil {
		return false, err
	}

	resp, err := c.corr.Send(ctx, wire.MethodHasTx, hasTxArgs{ID: txID}, nil)
	if err != nil {
		return false, err
	}

	var present bool
	if err := json.Unmarshal(resp.Result, &present); err != nil {
		return false, fmt.Errorf("txmonitor: decoding HasTx result: %w", err)
	}
	return present, nil
}

type nextTxArgs struct {
	Fields string `json:"fields,omitempty"`
}

// NextTx advances through the acquired snapshot one transaction at a
// time. withFields requests the full transaction body instead of just
// its id. The result's IsNull field is set once the snapshot is
// exhausted.
func (c *Client) NextTx(ctx context.Context, withFields bool) (wire.NextTxResult, error) {
	var zero wire.NextTxResult
	if err := c.requireAcquired(); err != nil {
		return zero, err
	}

	args := nextTxArgs{}
	if withFields {
		args.Fields = "all"
	}

	resp, err := c.corr.Send(ctx, wire.MethodNextTx, args, nil)
	if err != nil {
		return zero, err
	}

	var result wire.NextTxResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return zero, fmt.Errorf("txmonitor: decoding NextTx result: %w", err)
	}
	return result, nil
}

// SizeAndCapacity reports the acquired snapshot's occupancy.
func (c *Client) SizeAndCapacity(ctx context.Context) (wire.MempoolSizeAndCapacity, error) {
	var zero wire.MempoolSizeAndCapacity
	if err := c.requireAcquired(); err != nil {
		return zero, err
	}

	resp, err := c.corr.Send(ctx, wire.MethodSizeAndCapacity, struct{}{}, nil)
	if err != nil {
		return zero, err
	}

	var result wire.MempoolSizeAndCapacity
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return zero, fmt.Errorf("txmonitor: decoding SizeAndCapacity result: %w", err)
	}
	return result, nil
}
