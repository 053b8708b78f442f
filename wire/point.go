package wire

import (
	"encoding/json"
	"fmt"
)

// Origin is the distinguished sentinel preceding all points/tips. It
// encodes as the bare JSON string "origin".
type Origin struct{}

func (Origin) MarshalJSON() ([]byte, error) {
	return json.Marshal("origin")
}

// Point is a (slot, header-hash) pair identifying a block.
type Point struct {
	Slot uint64 `json:"slot"`
	Hash string `json:"hash"`
}

// Tip is a (slot, header-hash, block-number) triple: the chain's latest
// block from the bridge's point of view.
type Tip struct {
	Slot    uint64 `json:"slot"`
	Hash    string `json:"hash"`
	BlockNo uint64 `json:"blockNo"`
}

// PointOrOrigin is the tagged sum of Point and Origin. Equality between
// two PointOrOrigin values is structural: compare with ==.
type PointOrOrigin struct {
	IsOrigin bool
	Point    Point
}

func PointOf(p Point) PointOrOrigin { return PointOrOrigin{Point: p} }

var OriginPoint = PointOrOrigin{IsOrigin: true}

func (p PointOrOrigin) MarshalJSON() ([]byte, error) {
	if p.IsOrigin {
		return json.Marshal("origin")
	}
	return json.Marshal(p.Point)
}

func (p *PointOrOrigin) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "origin" {
			return &MalformedError{Raw: data, Reason: fmt.Sprintf("unexpected point string %q", s)}
		}
		*p = PointOrOrigin{IsOrigin: true}
		return nil
	}
	var pt Point
	if err := json.Unmarshal(data, &pt); err != nil {
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid point: %v", err)}
	}
	*p = PointOrOrigin{Point: pt}
	return nil
}

// TipOrOrigin is the tagged sum of Tip and Origin.
type TipOrOrigin struct {
	IsOrigin bool
	Tip      Tip
}

func TipOf(t Tip) TipOrOrigin { return TipOrOrigin{Tip: t} }

var OriginTip = TipOrOrigin{IsOrigin: true}

func (t TipOrOrigin) MarshalJSON() ([]byte, error) {
	if t.IsOrigin {
		return json.Marshal("origin")
	}
	return json.Marshal(t.Tip)
}

func (t *TipOrOrigin) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "origin" {
			return &MalformedError{Raw: data, Reason: fmt.Sprintf("unexpected tip string %q", s)}
		}
		*t = TipOrOrigin{IsOrigin: true}
		return nil
	}
	var tp Tip
	if err := json.Unmarshal(data, &tp); err != nil {
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid tip: %v", err)}
	}
	*t = TipOrOrigin{Tip: tp}
	return nil
}
