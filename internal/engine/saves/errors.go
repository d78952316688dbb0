package saves

import "errors"

// Common errors for save and checkpoint operations.
var (
	// ErrInvalidSlot indicates a slot index outside the current slot list.
	ErrInvalidSlot = errors.New("invalid save slot")

	// ErrNoSaves indicates no save slots exist yet.
	ErrNoSaves = errors.New("no saves available")

	// ErrNoCheckpoint indicates no checkpoint has been created.
	ErrNoCheckpoint = errors.New("no checkpoint available")

	// ErrForeignSnapshot indicates a snapshot produced by a different
	// subject type was passed to Restore.
	ErrForeignSnapshot = errors.New("snapshot belongs to a different subject type")
)
