package session

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when an operation is attempted on a closed session.
var ErrClosed = errors.New("session is closed")

// ErrNestedTransaction is returned when a transaction is started from
// inside another transaction's callback.
var ErrNestedTransaction = errors.New("transaction already in progress")

// OperationError wraps a failure with the operation and target that
// produced it.
type OperationError struct {
	Op     string
	Target string
	Err    error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// opError builds an OperationError.
func opError(op, target string, err error) error {
	return &OperationError{Op: op, Target: target, Err: err}
}
