// Package history provides linear, branch-discarding undo/redo for
// reversible commands.
//
// # Commands
//
// Commands implement the Command interface with Execute, Undo, and
// Description methods. A command is bound to its subject at construction
// and tracks whether it is currently applied: executing an applied command
// fails with ErrAlreadyApplied, undoing an unapplied one with
// ErrNotApplied. Built-in commands edit a document subject:
//   - InsertCommand: insert text at a position
//   - DeleteCommand: delete a range of text
//   - ReplaceCommand: replace all occurrences of a string
//   - MacroCommand: group commands with all-or-nothing execution
//   - StateCommand: snapshot-pair entry for memento-style subjects
//
// # History stack
//
// The History type manages the undo/redo stack pair and a bounded audit
// log:
//
//	h := history.NewHistory(1000)
//
//	h.Execute(cmd)
//	h.Undo()
//	h.Redo()
//
// Recording a new command unconditionally clears the redo stack: the
// history is linear, never a tree. A failed undo or redo pushes the entry
// back where it was, so the stacks always describe reachable states.
//
// # Grouping
//
// Multiple commands can be combined into a single undo unit:
//
//	h.BeginGroup("Find and Replace")
//	// ... multiple edits ...
//	h.EndGroup()
//
// Now all edits undo together.
package history
