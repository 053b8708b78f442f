// Package txsubmission implements the one-shot SubmitTx and
// EvaluateTx requests: each call is independent, unlike ChainSync and
// StateQuery there is no session state to hold between calls.
package txsubmission

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ocx/ogmios-go/internal/correlator"
	"github.com/ocx/ogmios-go/internal/metrics"
	"github.com/ocx/ogmios-go/wire"
)

// Client submits signed transactions and evaluates Plutus script
// execution costs against the bridge's current ledger view.
type Client struct {
	corr *correlator.Correlator

	metricsMu sync.RWMutex
	metrics   *metrics.Metrics
}

// New wraps corr with a transaction-submission client.
func New(corr *correlator.Correlator) *Client {
	return &Client{corr: corr}
}

// SetMetrics attaches a collector set; every SubmitTx rejection and
// EvaluateTx failure entry is counted by kind from this point on.
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

type submitArgs struct {
	Submit string `json:"submit"`
}

// SubmitTx submits a CBOR-encoded, signed transaction (hex-encoded)
// and returns its id. A rejected transaction yields a *RejectedError
// carrying the bridge's ordered list of rejection reasons.
func (c *Client) SubmitTx(ctx context.Context, cborHex string) (string, error) {
	resp, err := c.corr.Send(ctx, wire.MethodSubmitTx, submitArgs{Submit: cborHex}, nil)
	if err != nil {
		return "", err
	}

	var result wire.SubmitTxResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return "", fmt.Errorf("txsubmission: decoding SubmitTx result: %w", err)
	}
	if len(result.Errors) > 0 {
		if m := c.currentMetrics(); m != nil {
			for _, e := range result.Errors {
				m.SubmitTxErrors.WithLabelValues(string(e.Kind)).Inc()
			}
		}
		return "", &RejectedError{Errors: result.Errors}
	}
	return result.TxID, nil
}

type evaluateArgs struct {
	Evaluate         string     `json:"evaluate"`
	AdditionalUtxoSet wire.Utxo `json:"additionalUtxoSet,omitempty"`
}

// EvaluateTx computes the execution budget of every Plutus script
// invoked by a CBOR-encoded transaction (hex-encoded), without
// submitting it. additionalUtxoSet supplies outputs referenced by the
// transaction that the bridge's own ledger view does not yet contain
// (e.g. outputs of a transaction not yet seen on chain); pass nil when
// not needed. A failed evaluation yields an *EvaluationError carrying
// the bridge's ordered list of failure reasons.
func (c *Client) EvaluateTx(ctx context.Context, cborHex string, additionalUtxoSet wire.Utxo) (wire.RedeemerBudgets, error) {
	args := evaluateArgs{Evaluate: cborHex, AdditionalUtxoSet: additionalUtxoSet}

	resp, err := c.corr.Send(ctx, wire.MethodEvaluateTx, args, nil)
	if err != nil {
		return nil, err
	}

	var result wire.EvaluateTxResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("txsubmission: decoding EvaluateTx result: %w", err)
	}
	if len(result.Errors) > 0 {
		if m := c.currentMetrics(); m != nil {
			for _, e := range result.Errors {
				m.EvalTxErrors.WithLabelValues(string(e.Kind)).Inc()
			}
		}
		return nil, &EvaluationError{Errors: result.Errors}
	}
	if result.Success == nil {
		return wire.RedeemerBudgets{}, nil
	}
	return *result.Success, nil
}
