// Package results provides the success/failure envelope returned by service
// operations. A business-rule rejection travels in Failure; the error return
// of the operation is reserved for infrastructure faults.
package results

// OperationResult carries either a success payload or a failure payload.
// Exactly one of Success/Failure is set for a completed operation; both nil
// means the operation never produced a result (e.g. panic recovery).
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a success payload.
func SuccessResult[S any, F any](success S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &success}
}

// FailureResult wraps a failure payload.
func FailureResult[S any, F any](failure F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &failure}
}

func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }
