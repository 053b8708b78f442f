package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	require.NotNil(t, m)

	m.RequestsSent.WithLabelValues("FindIntersect").Inc()
	count := testutil.ToFloat64(m.RequestsSent.WithLabelValues("FindIntersect"))
	assert.Equal(t, float64(1), count)

	m.FaultsReceived.WithLabelValues("client").Inc()
	m.SubmitTxErrors.WithLabelValues("feeTooSmall").Inc()
	m.ChainSyncWindow.WithLabelValues().Set(42)

	assert.Equal(t, float64(42), testutil.ToFloat64(m.ChainSyncWindow.WithLabelValues()))
}
