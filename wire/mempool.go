package wire

import (
	"bytes"
	"encoding/json"
)

// MempoolSizeAndCapacity reports the acquired mempool snapshot's
// occupancy: bytes used, bytes available, and transaction count.
type MempoolSizeAndCapacity struct {
	Capacity    uint32 `json:"capacity"`
	CurrentSize uint32 `json:"currentSize"`
	NumberOfTxs uint32 `json:"numberOfTxs"`
}

// awaitAcquiredBody is the payload under the "AwaitAcquired" key.
type awaitAcquiredBody struct {
	Slot uint64 `json:"slot"`
}

// AwaitAcquireResult is AwaitAcquire's result: the slot the acquired
// mempool snapshot is consistent as of. Decoded via SingleKey like
// every other wire result.
type AwaitAcquireResult struct {
	Slot uint64
}

func (r *AwaitAcquireResult) UnmarshalJSON(data []byte) error {
	key, value, err := SingleKey(data)
	if err != nil {
		return err
	}
	if key != "AwaitAcquired" {
		return &MalformedError{Raw: data, Reason: "unrecognized AwaitAcquire result key: " + key}
	}
	var body awaitAcquiredBody
	if err := json.Unmarshal(value, &body); err != nil {
		return err
	}
	r.Slot = body.Slot
	return nil
}

var jsonNull = []byte("null")

// NextTxResult is NextTx's result: the next transaction's id (the
// default), its full body (when the caller asked for fields), or Null
// once the acquired snapshot is exhausted. Only one of TxID/Tx/IsNull
// is populated.
type NextTxResult struct {
	TxID   string
	Tx     *Tx
	IsNull bool
}

func (r *NextTxResult) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, jsonNull) {
		*r = NextTxResult{IsNull: true}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return err
		}
		*r = NextTxResult{TxID: id}
		return nil
	}
	// A full transaction arrives single-key wrapped by era, the same
	// idiom as Block; the era tag itself isn't needed by callers since
	// Tx already unifies the post-Byron shape.
	_, value, err := SingleKey(trimmed)
	if err != nil {
		return err
	}
	var tx Tx
	if err := json.Unmarshal(value, &tx); err != nil {
		return &MalformedError{Raw: data, Reason: "invalid NextTx transaction body: " + err.Error()}
	}
	*r = NextTxResult{Tx: &tx}
	return nil
}
