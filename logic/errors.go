package logic

import "fmt"

// StorageError wraps a failed read or write against the history or snapshot store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// ToolArgumentError reports malformed or missing tool arguments. It never
// escapes the dispatcher; it is rendered as a ❌-prefixed result string.
type ToolArgumentError struct {
	Tool   string
	Reason string
}

func (e *ToolArgumentError) Error() string {
	return fmt.Sprintf("tool %s: invalid arguments: %s", e.Tool, e.Reason)
}

// ToolExecutionError reports an infrastructure failure while running a tool
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %s execution failed: %v", e.Tool, e.Err)
}
func (e *ToolExecutionError) Unwrap() error { return e.Err }

// Conflict kinds for snapshot saves.
const (
	ConflictName    = "name"
	ConflictSession = "session"
)

// ConflictError reports a snapshot uniqueness violation, distinguishing a
// reused name from an already-saved session
type ConflictError struct {
	Kind    string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError reports a missing snapshot or campaign
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string { return e.Message }
