package app

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrUnsavedChanges is reported when quitting a modified buffer
	// without force.
	ErrUnsavedChanges = errors.New("no write since last change (add ! to override)")

	// ErrStateLocked indicates another session holds the state file lock.
	ErrStateLocked = errors.New("state file is locked")

	// ErrStateVersion indicates a state file written by a newer version.
	ErrStateVersion = errors.New("unsupported state file version")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "open", "save state")
	Target string // Target of the operation, usually a path
	Err    error  // Underlying error
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
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
	if e == nil {
		return nil
	}
	return e.Err
}
