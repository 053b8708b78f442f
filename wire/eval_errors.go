package wire

import "encoding/json"

// RedeemerPointer identifies the purpose/index pair a redeemer and its
// execution budget are attached to, e.g. "spend:0" or "mint:2".
type RedeemerPointer string

// ExUnits is a Plutus execution budget.
type ExUnits struct {
	Memory uint64 `json:"memory"`
	Steps  uint64 `json:"steps"`
}

// ValidatorFailed is the script-failure variant carrying the
// interpreter's own error message and execution trace.
type ValidatorFailed struct {
	Error  string   `json:"error"`
	Traces []string `json:"traces,omitempty"`
}

// ExtraRedeemers lists redeemer pointers present in the witness set but
// not required by any script.
type ExtraRedeemers struct {
	Pointers []RedeemerPointer `json:"-"`
}

func (e ExtraRedeemers) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Pointers)
}

func (e *ExtraRedeemers) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &e.Pointers)
}

// MissingRequiredDatums lists datum hashes the ledger needed to validate
// the transaction but did not find in the witness set, alongside the
// hashes that were actually supplied.
type MissingRequiredDatums struct {
	Missing  []string `json:"missing"`
	Provided []string `json:"provided,omitempty"`
}

// MissingRequiredScripts lists script hashes required by redeemer
// pointers but absent from the witness set.
type MissingRequiredScripts struct {
	Missing map[RedeemerPointer]string `json:"missing"`
}

// UnknownInputReferencedByRedeemer names a redeemer pointer whose input
// does not exist in the supplied UTxO set.
type UnknownInputReferencedByRedeemer struct {
	Pointer RedeemerPointer `json:"redeemerPointer"`
	Input   TxIn            `json:"input"`
}

// NonScriptInputReferencedByRedeemer names a redeemer pointer attached
// to an input that carries no script.
type NonScriptInputReferencedByRedeemer struct {
	Pointer RedeemerPointer `json:"redeemerPointer"`
	Input   TxIn            `json:"input"`
}

// IllFormedExecutionBudget reports a redeemer whose declared execution
// budget could not be parsed.
type IllFormedExecutionBudget struct {
	Pointer RedeemerPointer `json:"redeemerPointer"`
}

// NoCostModelForLanguage names a Plutus language version the node has
// no cost model for.
type NoCostModelForLanguage struct {
	Language string `json:"language"`
}

// ScriptFailureKind discriminates the ScriptFailures sub-union.
type ScriptFailureKind string

const (
	ScriptFailureValidatorFailed                    ScriptFailureKind = "validatorFailed"
	ScriptFailureExtraRedeemers                      ScriptFailureKind = "extraRedeemers"
	ScriptFailureMissingRequiredDatums               ScriptFailureKind = "missingRequiredDatums"
	ScriptFailureMissingRequiredScripts              ScriptFailureKind = "missingRequiredScripts"
	ScriptFailureUnknownInputReferencedByRedeemer    ScriptFailureKind = "unknownInputReferencedByRedeemer"
	ScriptFailureNonScriptInputReferencedByRedeemer  ScriptFailureKind = "nonScriptInputReferencedByRedeemer"
	ScriptFailureIllFormedExecutionBudget            ScriptFailureKind = "illFormedExecutionBudget"
	ScriptFailureNoCostModelForLanguage              ScriptFailureKind = "noCostModelForLanguage"
)

// ScriptFailure is one entry of a ScriptFailures list: a tagged union
// keyed the same way as every other wire result, decoded via SingleKey.
type ScriptFailure struct {
	Kind  ScriptFailureKind
	Raw   json.RawMessage
}

func (s *ScriptFailure) UnmarshalJSON(data []byte) error {
	key, value, err := SingleKey(data)
	if err != nil {
		return err
	}
	s.Kind = ScriptFailureKind(key)
	s.Raw = value
	return nil
}

func (s ScriptFailure) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]json.RawMessage{string(s.Kind): s.Raw})
}

// EvalErrorKind enumerates EvaluateTx's top-level failure variants.
type EvalErrorKind string

const (
	EvalErrScriptFailures                 EvalErrorKind = "scriptFailures"
	EvalErrIncompatibleEra                EvalErrorKind = "incompatibleEra"
	EvalErrAdditionalUtxoOverlap          EvalErrorKind = "additionalUtxoOverlap"
	EvalErrNotEnoughSynced                EvalErrorKind = "notEnoughSynced"
	EvalErrCannotCreateEvaluationContext  EvalErrorKind = "cannotCreateEvaluationContext"

	// EvalErrUnknown never appears on the wire; it marks a discriminant
	// key this catalog does not recognize.
	EvalErrUnknown EvalErrorKind = ""
)

var knownEvalErrorKinds = map[string]EvalErrorKind{
	string(EvalErrScriptFailures):                EvalErrScriptFailures,
	string(EvalErrIncompatibleEra):                EvalErrIncompatibleEra,
	string(EvalErrAdditionalUtxoOverlap):          EvalErrAdditionalUtxoOverlap,
	string(EvalErrNotEnoughSynced):                EvalErrNotEnoughSynced,
	string(EvalErrCannotCreateEvaluationContext):  EvalErrCannotCreateEvaluationContext,
}

// EvalError is one entry of EvaluateTx's ordered failure list.
type EvalError struct {
	Kind EvalErrorKind
	Raw  json.RawMessage
}

func (e *EvalError) UnmarshalJSON(data []byte) error {
	key, value, err := SingleKey(data)
	if err != nil {
		return err
	}
	kind, ok := knownEvalErrorKinds[key]
	if !ok {
		*e = EvalError{Kind: EvalErrUnknown, Raw: data}
		return nil
	}
	*e = EvalError{Kind: kind, Raw: value}
	return nil
}

func (e EvalError) MarshalJSON() ([]byte, error) {
	if e.Kind == EvalErrUnknown {
		return e.Raw, nil
	}
	return json.Marshal(map[string]json.RawMessage{string(e.Kind): e.Raw})
}

// EvalErrorList is the ordered list of EvaluateTx failures.
type EvalErrorList []EvalError

// RedeemerBudgets is EvaluateTx's success payload: per-redeemer
// execution budgets computed by the evaluator.
type RedeemerBudgets map[RedeemerPointer]ExUnits
