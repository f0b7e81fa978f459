package engine

import "errors"

var (
	// ErrNonConvergence is returned when the partitioner exceeds its step budget.
	ErrNonConvergence = errors.New("partitioner did not converge")
	// ErrNotImplemented is returned for solving methods that exist only as a slot.
	ErrNotImplemented = errors.New("solving method not implemented")
	// ErrUnknownMethod is returned for method names the solver does not know.
	ErrUnknownMethod = errors.New("unknown solving method")
)
