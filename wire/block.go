package wire

import (
	"encoding/json"
	"fmt"
)

// Era identifies a protocol epoch with its own rules/parameters.
type Era string

const (
	EraByron   Era = "byron"
	EraShelley Era = "shelley"
	EraAllegra Era = "allegra"
	EraMary    Era = "mary"
	EraAlonzo  Era = "alonzo"
	EraBabbage Era = "babbage"
)

// BlockHeader carries the header fields used for every era's block,
// Byron included (ByronBlock reuses this type); full ledger header
// schemas are kept minimal, covering only what's needed to define the
// message contract.
type BlockHeader struct {
	BlockHeight uint64 `json:"blockHeight"`
	Slot        uint64 `json:"slot"`
	PrevHash    string `json:"prevHash,omitempty"`
	IssuerVK    string `json:"issuerVk,omitempty"`
}

// TxIn is a transaction input reference.
type TxIn struct {
	TxID  string `json:"txId"`
	Index uint32 `json:"index"`
}

// TxOut is a transaction output.
type TxOut struct {
	Address string              `json:"address"`
	Value   Lovelace            `json:"value"`
	Assets  map[string]Lovelace `json:"assets,omitempty"`
}

// ValidityInterval bounds the slots in which a transaction is valid.
type ValidityInterval struct {
	InvalidBefore    *uint64 `json:"invalidBefore,omitempty"`
	InvalidHereafter *uint64 `json:"invalidHereafter,omitempty"`
}

// WitnessSet holds a transaction's witnesses. Script/datum/redeemer
// payloads are kept raw: their full schema isn't needed beyond what
// defines the submit/evaluate contracts.
type WitnessSet struct {
	Signatures map[string]string `json:"signatures,omitempty"`
	Scripts    []json.RawMessage `json:"scripts,omitempty"`
	Datums     []json.RawMessage `json:"datums,omitempty"`
	Redeemers  []json.RawMessage `json:"redeemers,omitempty"`
}

// Tx is a per-era transaction record: inputs, outputs, certificates,
// withdrawals, fee, validity interval, witness set, auxiliary data.
// Metadata holds the raw JSON literal null (see IsJSONNull) when the
// transaction carries no auxiliary data, and is nil only when the key
// is absent.
type Tx struct {
	ID               string              `json:"id,omitempty"`
	Inputs           []TxIn              `json:"inputs,omitempty"`
	Outputs          []TxOut             `json:"outputs,omitempty"`
	Certificates     []json.RawMessage   `json:"certificates,omitempty"`
	Withdrawals      map[string]Lovelace `json:"withdrawals,omitempty"`
	Fee              *Lovelace           `json:"fee,omitempty"`
	ValidityInterval *ValidityInterval   `json:"validityInterval,omitempty"`
	Witness          *WitnessSet         `json:"witness,omitempty"`
	Metadata         json.RawMessage     `json:"metadata"`
}

// ByronTx is Byron's structurally simpler transaction: UTxO inputs and
// outputs only, no certificates/withdrawals/scripts.
type ByronTx struct {
	ID      string  `json:"id,omitempty"`
	Inputs  []TxIn  `json:"inputs,omitempty"`
	Outputs []TxOut `json:"outputs,omitempty"`
}

// EraBlock is the common shape for Shelley through Babbage blocks.
type EraBlock struct {
	Body       []Tx        `json:"body"`
	Header     BlockHeader `json:"header"`
	HeaderHash string      `json:"headerHash"`
}

// ByronBlock is Byron's block shape.
type ByronBlock struct {
	Body       []ByronTx   `json:"body"`
	Header     BlockHeader `json:"header"`
	HeaderHash string      `json:"headerHash"`
}

// Block is the sum over eras: Byron | Shelley | Allegra | Mary | Alonzo
// | Babbage. The wire encodes the era as the sole key of a one-key
// object, so Block discriminates on that key rather than on a
// separate block_type literal.
type Block struct {
	Era    Era
	Byron  *ByronBlock
	Other  *EraBlock // populated for Shelley/Allegra/Mary/Alonzo/Babbage
}

func (b Block) MarshalJSON() ([]byte, error) {
	switch b.Era {
	case EraByron:
		return json.Marshal(map[string]*ByronBlock{"byron": b.Byron})
	case EraShelley, EraAllegra, EraMary, EraAlonzo, EraBabbage:
		return json.Marshal(map[string]*EraBlock{string(b.Era): b.Other})
	default:
		return nil, fmt.Errorf("ogmios: block has no recognized era set")
	}
}

func (b *Block) UnmarshalJSON(data []byte) error {
	key, value, err := SingleKey(data)
	if err != nil {
		return err
	}
	era := Era(key)
	switch era {
	case EraByron:
		var bb ByronBlock
		if err := json.Unmarshal(value, &bb); err != nil {
			return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid byron block: %v", err)}
		}
		*b = Block{Era: era, Byron: &bb}
	case EraShelley, EraAllegra, EraMary, EraAlonzo, EraBabbage:
		var eb EraBlock
		if err := json.Unmarshal(value, &eb); err != nil {
			return &MalformedError{Raw: data, Reason: fmt.Sprintf("invalid %s block: %v", key, err)}
		}
		*b = Block{Era: era, Other: &eb}
	default:
		return &MalformedError{Raw: data, Reason: fmt.Sprintf("unrecognized block era %q", key)}
	}
	return nil
}
