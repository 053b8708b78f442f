package wire

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSocketClosed is returned (via errors.Is) whenever an operation is
// attempted on a connection that has already been closed.
var ErrSocketClosed = errors.New("ogmios: socket closed")

// JsonwspFaultError wraps a jsonwsp/fault envelope received in response
// to a request. The correlator never swallows these, it surfaces them
// verbatim to the caller awaiting that request.
type JsonwspFaultError struct {
	Code   string
	String string
}

func (e *JsonwspFaultError) Error() string {
	return fmt.Sprintf("ogmios: jsonwsp fault %s: %s", e.Code, e.String)
}

// MalformedError is surfaced when an inbound frame cannot be parsed as
// a well-formed envelope, or a tagged union has zero or more than one
// discriminant key present.
type MalformedError struct {
	Raw    []byte
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("ogmios: malformed envelope: %s", e.Reason)
}

// UnknownResultError is surfaced when a response's result shape matches
// none of the discriminants a caller expected.
type UnknownResultError struct {
	Raw json.RawMessage
}

func (e *UnknownResultError) Error() string {
	return fmt.Sprintf("ogmios: unknown result shape: %s", string(e.Raw))
}
