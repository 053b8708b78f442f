package wire

import "encoding/json"

// submitSuccessBody is the payload under the "SubmitSuccess" key.
type submitSuccessBody struct {
	TxID string `json:"txId"`
}

// SubmitTxResult is SubmitTx's top-level result: either the submitted
// transaction's id, or the bridge's ordered list of rejection reasons.
// Decoded via SingleKey like every other wire result.
type SubmitTxResult struct {
	TxID   string
	Errors SubmitErrorList
}

func (r *SubmitTxResult) UnmarshalJSON(data []byte) error {
	key, value, err := SingleKey(data)
	if err != nil {
		return err
	}
	switch key {
	case "SubmitSuccess":
		var body submitSuccessBody
		if err := json.Unmarshal(value, &body); err != nil {
			return err
		}
		r.TxID = body.TxID
		return nil
	case "SubmitFail":
		return json.Unmarshal(value, &r.Errors)
	default:
		return &MalformedError{Raw: data, Reason: "unrecognized SubmitTx result key: " + key}
	}
}
