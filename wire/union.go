package wire

import (
	"encoding/json"
	"fmt"
)

// SingleKey inspects a JSON object and returns its sole key and the raw
// value under it. Zero keys or more than one key is malformed — this is
// the decoding rule for every single-key tagged union on the wire
// (era-discriminated blocks, RollForward/RollBackward, AcquireSuccess/
// AcquireFailure, SubmitTx error-list entries, and so on).
func SingleKey(data []byte) (key string, value json.RawMessage, err error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", nil, &MalformedError{Raw: data, Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}
	if len(obj) != 1 {
		return "", nil, &MalformedError{Raw: data, Reason: fmt.Sprintf("expected exactly one discriminant key, found %d", len(obj))}
	}
	for k, v := range obj {
		return k, v, nil
	}
	panic("unreachable")
}

// decodeRootWrapper canonicalizes the inconsistent "root"/"__root__"
// single-field wrapper seen across bridge codec revisions onto the
// inner value. Re-encoding never re-emits the wrapper.
func decodeRootWrapper(data []byte) (json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, false
	}
	if len(obj) != 1 {
		return nil, false
	}
	if v, ok := obj["root"]; ok {
		return v, true
	}
	if v, ok := obj["__root__"]; ok {
		return v, true
	}
	return nil, false
}
