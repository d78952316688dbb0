package history

import (
	"errors"
	"fmt"
)

// Common errors for command and history operations.
var (
	// ErrAlreadyApplied indicates Execute on a command that is applied.
	ErrAlreadyApplied = errors.New("command already applied")

	// ErrNotApplied indicates Undo on a command that is not applied.
	ErrNotApplied = errors.New("command not applied")

	// ErrNothingToUndo indicates an empty undo stack.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates an empty redo stack.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrStateDiverged indicates the subject no longer matches what a
	// command recorded when it executed, so its inverse cannot apply.
	ErrStateDiverged = errors.New("subject state diverged from recorded operation")
)

// InverseError wraps a subject-level failure that occurred while undoing
// or redoing a command. The command's applied state is unchanged when this
// is returned.
type InverseError struct {
	Op  string // description of the failing command
	Err error
}

func (e *InverseError) Error() string {
	return fmt.Sprintf("inverse of %s failed: %v", e.Op, e.Err)
}

func (e *InverseError) Unwrap() error {
	return e.Err
}
