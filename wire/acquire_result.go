package wire

import "encoding/json"

// AcquireFailureReason is the bridge's tag for why an Acquire/
// AwaitAcquire failed.
type AcquireFailureReason string

const (
	AcquireFailurePointTooOld     AcquireFailureReason = "pointTooOld"
	AcquireFailurePointNotOnChain AcquireFailureReason = "pointNotOnChain"
)

type acquireSuccessBody struct {
	Point PointOrOrigin `json:"point"`
}

type acquireFailureBody struct {
	Failure json.RawMessage `json:"failure"`
}

// AcquireResult is the single-key tagged sum returned by Acquire and
// AwaitAcquire: either AcquireSuccess{point} or
// AcquireFailure{failure}.
type AcquireResult struct {
	Success bool
	Point   PointOrOrigin

	Reason    AcquireFailureReason // set when Success is false and Reason is recognized
	RawReason json.RawMessage      // the raw failure payload, always set when Success is false
}

func (a *AcquireResult) UnmarshalJSON(data []byte) error {
	key, value, err := SingleKey(data)
	if err != nil {
		return err
	}
	switch key {
	case "AcquireSuccess":
		var body acquireSuccessBody
		if err := json.Unmarshal(value, &body); err != nil {
			return &MalformedError{Raw: data, Reason: "invalid AcquireSuccess body"}
		}
		*a = AcquireResult{Success: true, Point: body.Point}
		return nil
	case "AcquireFailure":
		var body acquireFailureBody
		if err := json.Unmarshal(value, &body); err != nil {
			return &MalformedError{Raw: data, Reason: "invalid AcquireFailure body"}
		}
		var reason string
		_ = json.Unmarshal(body.Failure, &reason)
		*a = AcquireResult{Success: false, Reason: AcquireFailureReason(reason), RawReason: body.Failure}
		return nil
	default:
		return &MalformedError{Raw: data, Reason: "unrecognized Acquire result key: " + key}
	}
}
