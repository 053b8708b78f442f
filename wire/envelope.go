// Package wire implements the bridge's JSON-over-WebSocket envelope and
// the domain schema referenced by it: points, tips, blocks, transactions,
// and the result/error unions returned by the four mini-protocols.
//
// The wire's dominant idiom is the single-key tagged object, a sum
// type carried as an object with exactly one discriminator key:
// {"byron": {...}} or {"RollForward": {...}}. Decoding inspects the set
// of keys present in a JSON object and selects the variant; zero or more
// than one recognized key is malformed.
package wire

import (
	"encoding/json"
	"fmt"
)

// MessageType is the envelope's "type" discriminator.
type MessageType string

const (
	TypeRequest  MessageType = "jsonwsp/request"
	TypeResponse MessageType = "jsonwsp/response"
	TypeFault    MessageType = "jsonwsp/fault"
)

// MethodName is the closed set of method names the bridge recognizes.
type MethodName string

const (
	MethodRequestNext      MethodName = "RequestNext"
	MethodFindIntersect    MethodName = "FindIntersect"
	MethodSubmitTx         MethodName = "SubmitTx"
	MethodEvaluateTx       MethodName = "EvaluateTx"
	MethodAcquire          MethodName = "Acquire"
	MethodRelease          MethodName = "Release"
	MethodAwaitAcquire     MethodName = "AwaitAcquire"
	MethodNextTx           MethodName = "NextTx"
	MethodHasTx            MethodName = "HasTx"
	MethodSizeAndCapacity  MethodName = "SizeAndCapacity"
	MethodReleaseMempool   MethodName = "ReleaseMempool"
	MethodQuery            MethodName = "Query"
)

const (
	ServiceName = "ogmios"
	Version     = "1.0"
)

// Mirror is the caller-supplied correlation payload on a request. The
// correlator always sets Mirror["requestId"], overwriting any value the
// caller supplied there.
type Mirror map[string]any

// Reflection is the verbatim echo of Mirror on a response or fault.
type Reflection map[string]any

// RequestID returns the reflection's "requestId" field, or "" if absent
// or not a string.
func (r Reflection) RequestID() string {
	if r == nil {
		return ""
	}
	v, ok := r["requestId"]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Request is an outgoing jsonwsp/request envelope.
type Request struct {
	Type        MessageType `json:"type"`
	Version     string      `json:"version"`
	ServiceName string      `json:"servicename"`
	MethodName  MethodName  `json:"methodname"`
	Args        any         `json:"args,omitempty"`
	Mirror      Mirror      `json:"mirror,omitempty"`
}

// NewRequest builds a well-formed request envelope for methodName with
// the given args and mirror.
func NewRequest(methodName MethodName, args any, mirror Mirror) Request {
	return Request{
		Type:        TypeRequest,
		Version:     Version,
		ServiceName: ServiceName,
		MethodName:  methodName,
		Args:        args,
		Mirror:      mirror,
	}
}

// Response is an incoming jsonwsp/response envelope. Result is kept raw
// so callers can apply the per-method/per-query result discrimination
// before decoding into a concrete type.
type Response struct {
	Type        MessageType     `json:"type"`
	Version     string          `json:"version"`
	ServiceName string          `json:"servicename"`
	MethodName  MethodName      `json:"methodname"`
	Result      json.RawMessage `json:"result,omitempty"`
	Reflection  Reflection      `json:"reflection,omitempty"`
}

// FaultDetail carries the jsonwsp/fault payload.
type FaultDetail struct {
	Code   string `json:"code"`
	String string `json:"string"`
}

// Fault is an incoming jsonwsp/fault envelope.
type Fault struct {
	Type        MessageType `json:"type"`
	Version     string      `json:"version"`
	ServiceName string      `json:"servicename"`
	MethodName  MethodName  `json:"methodname"`
	FaultDetail FaultDetail `json:"fault"`
	Reflection  Reflection  `json:"reflection,omitempty"`
}

// envelopeHeader is used to peek at the "type" discriminator of an
// inbound frame before deciding whether to unmarshal it as a Response
// or a Fault.
type envelopeHeader struct {
	Type MessageType `json:"type"`
}

// ParseInbound classifies a raw inbound frame and unmarshals it into
// either a Response or a Fault. Exactly one of the two return values is
// non-nil on success.
func ParseInbound(data []byte) (resp *Response, fault *Fault, err error) {
	var hdr envelopeHeader
	if err := json.Unmarshal(data, &hdr); err != nil {
		return nil, nil, &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid envelope: %v", err)}
	}
	switch hdr.Type {
	case TypeResponse:
		var r Response
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, nil, &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid response envelope: %v", err)}
		}
		return &r, nil, nil
	case TypeFault:
		var f Fault
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, nil, &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid fault envelope: %v", err)}
		}
		return nil, &f, nil
	default:
		return nil, nil, &MalformedError{Raw: data, Reason: fmt.Sprintf("unrecognized envelope type %q", hdr.Type)}
	}
}
