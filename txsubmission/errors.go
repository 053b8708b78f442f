package txsubmission

import (
	"fmt"

	"github.com/ocx/ogmios-go/wire"
)

// RejectedError is returned when SubmitTx succeeds in reaching the
// bridge but the transaction itself is rejected; Errors preserves the
// bridge's reported order.
type RejectedError struct {
	Errors wire.SubmitErrorList
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("txsubmission: transaction rejected with %d error(s)", len(e.Errors))
}

// EvaluationError is returned when EvaluateTx could not produce
// execution budgets; Errors preserves the bridge's reported order.
type EvaluationError struct {
	Errors wire.EvalErrorList
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("txsubmission: evaluation failed with %d error(s)", len(e.Errors))
}
