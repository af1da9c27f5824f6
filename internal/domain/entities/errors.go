package entities

import (
	"fmt"
)

// PreconditionError indicates an arrangement stage ran before the field it
// depends on was populated. It is a contract violation, never a data error.
type PreconditionError struct {
	Stage   string
	Missing string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("stage %s: precondition not met: %s is not set", e.Stage, e.Missing)
}

// NewPreconditionError creates a new precondition error.
func NewPreconditionError(stage, missing string) *PreconditionError {
	return &PreconditionError{Stage: stage, Missing: missing}
}

// TraversalError indicates a palace cannot be stepped from in a traversal order.
type TraversalError struct {
	Palace int
	Order  string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("palace %d is not part of the %s order", e.Palace, e.Order)
}
