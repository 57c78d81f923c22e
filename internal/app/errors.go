package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoFiles indicates no input files were given.
	ErrNoFiles = errors.New("no input files")

	// ErrNoTargets indicates neither offsets nor a pattern were given.
	ErrNoTargets = errors.New("nothing to locate (use -offset or -match)")

	// ErrInvalidPattern indicates the match pattern does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "read", "locate", "render")
	Target string // Target of the operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
