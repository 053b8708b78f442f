package wire

import (
	"encoding/json"
	"fmt"
)

// RollForwardResult is the payload of a RequestNext response whose
// result is {"RollForward": {...}}.
type RollForwardResult struct {
	Block Block       `json:"block"`
	Tip   TipOrOrigin `json:"tip"`
}

// RollBackwardResult is the payload of a RequestNext response whose
// result is {"RollBackward": {...}}.
type RollBackwardResult struct {
	Point PointOrOrigin `json:"point"`
	Tip   TipOrOrigin   `json:"tip"`
}

// RequestNextResult is the tagged sum RollForward | RollBackward.
type RequestNextResult struct {
	RollForward  *RollForwardResult
	RollBackward *RollBackwardResult
}

func (r *RequestNextResult) UnmarshalJSON(data []byte) error {
	key, value, err := SingleKey(data)
	if err != nil {
		return err
	}
	switch key {
	case "RollForward":
		var v RollForwardResult
		if err := json.Unmarshal(value, &v); err != nil {
			return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid RollForward: %v", err)}
		}
		*r = RequestNextResult{RollForward: &v}
	case "RollBackward":
		var v RollBackwardResult
		if err := json.Unmarshal(value, &v); err != nil {
			return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid RollBackward: %v", err)}
		}
		*r = RequestNextResult{RollBackward: &v}
	default:
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("unrecognized RequestNext result key %q", key)}
	}
	return nil
}

// IntersectionFound is the payload of a FindIntersect response whose
// result is {"IntersectionFound": {...}}.
type IntersectionFound struct {
	Point PointOrOrigin `json:"point"`
	Tip   TipOrOrigin   `json:"tip"`
}

// IntersectionNotFound is the payload of a FindIntersect response whose
// result is {"IntersectionNotFound": {...}}.
type IntersectionNotFound struct {
	Tip TipOrOrigin `json:"tip"`
}

// FindIntersectResult is the tagged sum IntersectionFound |
// IntersectionNotFound.
type FindIntersectResult struct {
	Found    *IntersectionFound
	NotFound *IntersectionNotFound
}

func (r *FindIntersectResult) UnmarshalJSON(data []byte) error {
	key, value, err := SingleKey(data)
	if err != nil {
		return err
	}
	switch key {
	case "IntersectionFound":
		var v IntersectionFound
		if err := json.Unmarshal(value, &v); err != nil {
			return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid IntersectionFound: %v", err)}
		}
		*r = FindIntersectResult{Found: &v}
	case "IntersectionNotFound":
		var v IntersectionNotFound
		if err := json.Unmarshal(value, &v); err != nil {
			return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid IntersectionNotFound: %v", err)}
		}
		*r = FindIntersectResult{NotFound: &v}
	default:
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("unrecognized FindIntersect result key %q", key)}
	}
	return nil
}
