package client

import (
	"errors"
	"fmt"

	"github.com/NilFoundation/suiflow/core/types"
)

var (
	ErrExecutionRejected = errors.New("transaction rejected")
	ErrTransport         = errors.New("transport error")
)

// ExecutionError is returned when the ledger refuses or fails a transaction.
// Digest is set when the remote reported one.
type ExecutionError struct {
	Digest types.Digest
	Reason string
}

func (e *ExecutionError) Error() string {
	if e.Digest.IsEmpty() {
		return fmt.Sprintf("%s: %s", ErrExecutionRejected, e.Reason)
	}
	return fmt.Sprintf("%s: %s (digest %s)", ErrExecutionRejected, e.Reason, e.Digest)
}

func (e *ExecutionError) Unwrap() error {
	return ErrExecutionRejected
}
