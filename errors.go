package ogmios

import (
	"github.com/ocx/ogmios-go/chainsync"
	"github.com/ocx/ogmios-go/health"
	"github.com/ocx/ogmios-go/statequery"
	"github.com/ocx/ogmios-go/txmonitor"
	"github.com/ocx/ogmios-go/txsubmission"
	"github.com/ocx/ogmios-go/wire"
)

// Re-exported so callers depending only on the top-level package can
// still type-switch or errors.As against the engine-specific failures
// without importing each engine package directly.
type (
	ServerNotReady       = health.ServerNotReady
	TipIsOrigin          = chainsync.TipIsOriginError
	IntersectionNotFound = chainsync.IntersectionNotFoundError

	QueryUnavailable       = statequery.QueryUnavailableError
	EraMismatch            = statequery.EraMismatchError
	AcquirePointTooOld     = statequery.AcquirePointTooOldError
	AcquirePointNotOnChain = statequery.AcquirePointNotOnChainError

	TxRejected         = txsubmission.RejectedError
	TxEvaluationFailed = txsubmission.EvaluationError

	MempoolUnacquired = txmonitor.UnacquiredError
)

// ErrSocketClosed is returned by any in-flight call when the bridge
// connection closes.
var ErrSocketClosed = wire.ErrSocketClosed
