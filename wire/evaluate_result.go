package wire

import "encoding/json"

// ScriptFailures is the raw payload of an EvalError whose Kind is
// EvalErrScriptFailures: each failing redeemer pointer mapped to its
// ordered list of script-level failures.
type ScriptFailures map[RedeemerPointer][]ScriptFailure

// EvaluateTxResult is EvaluateTx's top-level result: either the
// computed per-redeemer execution budgets, or the bridge's ordered
// list of evaluation failures. Decoded via SingleKey like every other
// wire result.
type EvaluateTxResult struct {
	Success *RedeemerBudgets
	Errors  EvalErrorList
}

func (r *EvaluateTxResult) UnmarshalJSON(data []byte) error {
	key, value, err := SingleKey(data)
	if err != nil {
		return err
	}
	switch key {
	case "EvaluationResult":
		var budgets RedeemerBudgets
		if err := json.Unmarshal(value, &budgets); err != nil {
			return err
		}
		r.Success = &budgets
		return nil
	case "EvaluationFailure":
		return json.Unmarshal(value, &r.Errors)
	default:
		return &MalformedError{Raw: data, Reason: "unrecognized EvaluateTx result key: " + key}
	}
}
