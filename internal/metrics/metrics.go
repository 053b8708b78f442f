// Package metrics instruments the engines with Prometheus counters and
// histograms shared across all four mini-protocols.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors wired into the correlator
// and engines.
type Metrics struct {
	RequestsSent     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	FaultsReceived   *prometheus.CounterVec
	ChainSyncWindow  *prometheus.GaugeVec
	SubmitTxErrors   *prometheus.CounterVec
	EvalTxErrors     *prometheus.CounterVec
}

// New creates and registers the full collector set against reg. Pass
// prometheus.NewRegistry() for test isolation, or nil to register
// against the default global registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		RequestsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ogmios_requests_sent_total",
				Help: "Total number of jsonwsp requests sent to the bridge, by method.",
			},
			[]string{"method"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ogmios_request_duration_seconds",
				Help:    "Round-trip latency of correlated requests, by method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		FaultsReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ogmios_faults_received_total",
				Help: "Total number of jsonwsp/fault envelopes received, by fault code.",
			},
			[]string{"code"},
		),
		ChainSyncWindow: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ogmios_chainsync_window_depth",
				Help: "Current number of in-flight RequestNext calls awaiting a response.",
			},
			[]string{},
		),
		SubmitTxErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ogmios_submit_tx_errors_total",
				Help: "Total SubmitTx error list entries, by error variant.",
			},
			[]string{"kind"},
		),
		EvalTxErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ogmios_evaluate_tx_errors_total",
				Help: "Total EvaluateTx error list entries, by error variant.",
			},
			[]string{"kind"},
		),
	}
}
