// Package ogmios is a Go client for a Cardano bridge service exposing
// ChainSync, StateQuery, TxSubmission, and TxMonitor as JSON-over-
// WebSocket mini-protocols.
//
// Quick Start:
//
//	ctx := context.Background()
//	client, err := ogmios.Dial(ctx, ogmios.Config{Host: "localhost", Port: 1337})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Shutdown()
//
//	tip, err := client.StateQuery().ChainTip(ctx)
package ogmios

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ocx/ogmios-go/chainsync"
	"github.com/ocx/ogmios-go/internal/correlator"
	"github.com/ocx/ogmios-go/internal/metrics"
	"github.com/ocx/ogmios-go/statequery"
	"github.com/ocx/ogmios-go/transport"
	"github.com/ocx/ogmios-go/txmonitor"
	"github.com/ocx/ogmios-go/txsubmission"
)

// InteractionContext owns one bridge connection and the four
// mini-protocol engines built on top of it.
type InteractionContext struct {
	conn   *transport.Conn
	corr   *correlator.Correlator
	logger *slog.Logger

	chainSync    *chainsync.Client
	stateQuery   *statequery.Client
	txSubmission *txsubmission.Client
	txMonitor    *txmonitor.Client
}

// Dial establishes the bridge connection (gated on its health probe)
// and wires up all four engines against it. Callers must call
// Shutdown when finished.
func Dial(ctx context.Context, cfg Config) (*InteractionContext, error) {
	logger := cfg.Logger
	if logger == nil {
		level := transport.ParseLogLevel(cfg.LogLevel)
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	conn, err := transport.Dial(ctx, cfg.transportConfig(), logger)
	if err != nil {
		return nil, err
	}

	corr := correlator.New(conn, logger)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(cfg.MetricsRegisterer)
		corr.SetMetrics(m)
	}

	ic := &InteractionContext{
		conn:         conn,
		corr:         corr,
		logger:       logger,
		stateQuery:   statequery.New(corr),
		txSubmission: txsubmission.New(corr),
		txMonitor:    txmonitor.New(corr),
	}
	ic.chainSync = chainsync.New(corr, conn.Close, logger)
	if m != nil {
		ic.chainSync.SetMetrics(m)
		ic.txSubmission.SetMetrics(m)
	}

	go func() {
		if err := corr.Run(ctx); err != nil {
			logger.Debug("ogmios: correlator read loop ended", "error", err)
		}
	}()

	return ic, nil
}

// ChainSync returns the intersection/block-streaming engine.
func (ic *InteractionContext) ChainSync() *chainsync.Client { return ic.chainSync }

// StateQuery returns the ledger-state query engine.
func (ic *InteractionContext) StateQuery() *statequery.Client { return ic.stateQuery }

// TxSubmission returns the transaction submission/evaluation engine.
func (ic *InteractionContext) TxSubmission() *txsubmission.Client { return ic.txSubmission }

// TxMonitor returns the mempool-snapshot engine.
func (ic *InteractionContext) TxMonitor() *txmonitor.Client { return ic.txMonitor }

// Shutdown closes the underlying WebSocket. Safe to call more than
// once.
func (ic *InteractionContext) Shutdown() error {
	if err := ic.conn.Close(); err != nil {
		return fmt.Errorf("ogmios: shutting down: %w", err)
	}
	return nil
}
