// Package saves provides named save slots and checkpoints for subjects
// that can capture and restore their own state.
//
// The package is the caretaker side of the memento contract: subjects
// implement Originator, producing opaque Snapshot values that only the
// originating type knows how to interpret. SaveManager stores and replays
// them without ever looking inside.
//
// # Save slots
//
// Save slots form a bounded, ordered list with FIFO eviction and a current
// index:
//
//	mgr := saves.NewSaveManager(10)
//	idx := mgr.Save(character)
//	mgr.Load(character, idx)
//
// # Checkpoints
//
// Checkpoints are a separate stack independent of the slot list. Restoring
// always uses the most recent checkpoint:
//
//	mgr.Checkpoint(character)
//	// ... risky changes ...
//	mgr.RestoreCheckpoint(character)
package saves
