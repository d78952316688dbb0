package saves

import "time"

// Snapshot is an immutable capture of a subject's state at a point in time.
// The payload is opaque: only the Originator type that produced a Snapshot
// may interpret it. Callers and the SaveManager treat Snapshots as values
// they merely store and replay.
type Snapshot interface {
	// Version returns the subject's monotonic state version at capture time.
	Version() uint64

	// CreatedAt returns when the snapshot was taken.
	CreatedAt() time.Time

	// Description returns a human-readable summary for display.
	Description() string
}

// Originator is a subject whose state can be captured and restored.
//
// Capture must deep-copy every mutable field so the snapshot never aliases
// live state. Restore must deep-copy again so repeated restores from the
// same snapshot stay independent, and must reject snapshots produced by a
// different Originator type.
type Originator interface {
	Capture() Snapshot
	Restore(Snapshot) error
}
