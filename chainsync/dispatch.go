package chainsync

import (
	"encoding/json"
	"sync"

	"github.com/ocx/ogmios-go/wire"
)

// continuation builds the next function passed to a handler,
// guaranteeing the RequestNext refill fires at most once regardless of
// how many times the handler calls it.
func (c *Client) continuation() func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			if err := c.corr.Fire(wire.MethodRequestNext, nil, nil); err != nil {
				c.logger.Warn("chainsync: requestNext refill failed", "error", err)
				return
			}
			if m := c.currentMetrics(); m != nil {
				m.ChainSyncWindow.WithLabelValues().Inc()
			}
		})
	}
}

// onResponse is the correlator sink for RequestNext: every response
// the correlator cannot match to a waiter and whose methodname is
// RequestNext arrives here.
func (c *Client) onResponse(resp *wire.Response) {
	var result wire.RequestNextResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		c.logger.Warn("chainsync: discarding malformed RequestNext result", "error", err)
		return
	}
	if m := c.currentMetrics(); m != nil {
		m.ChainSyncWindow.WithLabelValues().Dec()
	}

	dispatch := func() { c.dispatchSafely(result) }

	c.mu.Lock()
	sequential := c.sequential
	c.mu.Unlock()

	if sequential {
		select {
		case c.seqCh <- dispatch:
		case <-c.done:
		}
		return
	}
	go dispatch()
}

// dispatchSafely invokes the matching handler, recovering a panic so
// one caller bug cannot take down the read loop. A panicking handler
// never reaches its next() call, so the window is not refilled for
// that dispatch.
func (c *Client) dispatchSafely(result wire.RequestNextResult) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("chainsync: handler panicked; window not refilled", "panic", r)
		}
	}()

	c.mu.Lock()
	handlers := c.handlers
	c.mu.Unlock()

	next := c.continuation()
	switch {
	case result.RollForward != nil:
		handlers.RollForward(result.RollForward.Block, result.RollForward.Tip, next)
	case result.RollBackward != nil:
		handlers.RollBackward(result.RollBackward.Point, result.RollBackward.Tip, next)
	default:
		c.logger.Warn("chainsync: RequestNext result had neither RollForward nor RollBackward")
	}
}

func (c *Client) runSequentialWorker() {
	for {
		select {
		case <-c.done:
			return
		case dispatch := <-c.seqCh:
			dispatch()
		}
	}
}
