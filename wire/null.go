package wire

import (
	"encoding/json"
	"fmt"
)

// Null encodes the JSON null literal in positions where a variant is
// structurally required (e.g. TxMonitor's NextTx result, which is
// TxId | FullTx | Null, ending the mempool iteration on Null).
type Null struct{}

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (*Null) UnmarshalJSON(data []byte) error {
	if string(data) != "null" {
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("expected JSON null, got %s", string(data))}
	}
	return nil
}

// IsJSONNull reports whether the raw JSON value is the literal null.
func IsJSONNull(data []byte) bool {
	return string(data) == "null"
}

const queryUnavailableLiteral = "QueryUnavailableInCurrentEra"

// IsQueryUnavailable reports whether raw encodes the
// QueryUnavailableInCurrentEra marker, in either of the two shapes seen
// across bridge codec revisions: the bare string, or
// {"root"|"__root__": "QueryUnavailableInCurrentEra"}. Re-encoding
// (EncodeQueryUnavailable) always emits the bare string.
func IsQueryUnavailable(raw []byte) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s == queryUnavailableLiteral
	}
	if inner, ok := decodeRootWrapper(raw); ok {
		var s string
		if err := json.Unmarshal(inner, &s); err == nil {
			return s == queryUnavailableLiteral
		}
	}
	return false
}

// EncodeQueryUnavailable returns the canonical (bare-string) wire
// encoding of the QueryUnavailableInCurrentEra marker.
func EncodeQueryUnavailable() []byte {
	return []byte(`"` + queryUnavailableLiteral + `"`)
}
