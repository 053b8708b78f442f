package wire

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Lovelace is an arbitrary-precision non-negative amount. The bridge
// never emits a value above roughly 2^64, but decoding never truncates
// or assumes that bound.
type Lovelace struct {
	big.Int
}

func NewLovelace(v uint64) Lovelace {
	var l Lovelace
	l.SetUint64(v)
	return l
}

func (l Lovelace) MarshalJSON() ([]byte, error) {
	return l.Int.MarshalJSON()
}

func (l *Lovelace) UnmarshalJSON(data []byte) error {
	if err := l.Int.UnmarshalJSON(data); err != nil {
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid lovelace amount: %v", err)}
	}
	if l.Sign() < 0 {
		return &MalformedError{Raw: data, Reason: "lovelace amount must be non-negative"}
	}
	return nil
}

// LovelaceDelta is a signed 64-bit amount, e.g. a reward or withdrawal
// delta.
type LovelaceDelta int64

// Ratio is an exact fraction p/q, encoded on the wire as the string
// "p/q". Parsing rejects q = 0.
type Ratio struct {
	Num   int64
	Denom int64
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", fmt.Sprintf("%d/%d", r.Num, r.Denom))), nil
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	s := string(data)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("ratio %q is not of the form p/q", s)}
	}
	num, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid ratio numerator: %v", err)}
	}
	denom, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid ratio denominator: %v", err)}
	}
	if denom == 0 {
		return &MalformedError{Raw: data, Reason: "ratio denominator must not be zero"}
	}
	r.Num, r.Denom = num, denom
	return nil
}
