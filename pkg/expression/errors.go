package expression

import "errors"

// Sentinel errors wrapped into the causes returned by Evaluate and
// EvaluateExpression, so a caller can distinguish a bad expression from
// one that ran but produced the wrong shape of result.
var (
	ErrCompileFailed    = errors.New("expression: compile failed")
	ErrEvaluationFailed = errors.New("expression: evaluation failed")
)
