package history

import (
	"sync"
	"time"
)

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

// OperationInfo provides read-only info about a recorded command.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// AuditKind classifies an audit log entry.
type AuditKind int

const (
	// AuditRecord is a newly recorded command.
	AuditRecord AuditKind = iota
	// AuditUndo is a successful undo.
	AuditUndo
	// AuditRedo is a successful redo.
	AuditRedo
)

// String returns the audit kind name.
func (k AuditKind) String() string {
	switch k {
	case AuditRecord:
		return "record"
	case AuditUndo:
		return "undo"
	case AuditRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// AuditEntry is a human-readable record of a history operation.
type AuditEntry struct {
	Description string
	Timestamp   time.Time
	Kind        AuditKind
}

// History manages undo/redo state for one editing session.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// Bounded audit trail, oldest first
	audit []AuditEntry

	// Grouping state
	grouping  bool
	groupName string
	groupCmds []Command

	// Configuration
	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000 // Default
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Execute runs a command and records it on the undo stack.
func (h *History) Execute(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}

	h.Record(cmd)
	return nil
}

// Record adds an already-applied command to the undo stack and
// unconditionally clears the redo stack. During grouping the command is
// collected for the eventual macro instead.
func (h *History) Record(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}

	h.recordLocked(cmd)
}

// recordLocked records a command without acquiring the lock.
func (h *History) recordLocked(cmd Command) {
	h.undoStack = append(h.undoStack, &undoEntry{
		command:   cmd,
		timestamp: time.Now(),
	})

	// A new command invalidates all previously undone states.
	h.redoStack = nil

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}

	h.auditLocked(cmd.Description(), AuditRecord)
}

// auditLocked appends an audit entry, evicting the oldest past the cap.
func (h *History) auditLocked(desc string, kind AuditKind) {
	h.audit = append(h.audit, AuditEntry{
		Description: desc,
		Timestamp:   time.Now(),
		Kind:        kind,
	})
	if len(h.audit) > h.maxEntries {
		excess := len(h.audit) - h.maxEntries
		h.audit = h.audit[excess:]
	}
}

// Undo undoes the most recent command and returns its description.
// On failure the entry is pushed back onto the undo stack and the error is
// surfaced; the stacks are unchanged. The lock is released during command
// execution to avoid holding it during subject operations.
func (h *History) Undo() (string, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return "", ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Undo(); err != nil {
		// Restore entry on failure
		h.mu.Lock()
		h.undoStack = append(h.undoStack, entry)
		h.mu.Unlock()
		return "", err
	}

	desc := entry.command.Description()

	h.mu.Lock()
	h.redoStack = append(h.redoStack, entry)
	h.auditLocked(desc, AuditUndo)
	h.mu.Unlock()
	return desc, nil
}

// Redo reapplies the most recently undone command and returns its
// description. Same failure-preserves-stack policy as Undo.
func (h *History) Redo() (string, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return "", ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Execute(); err != nil {
		// Restore entry on failure
		h.mu.Lock()
		h.redoStack = append(h.redoStack, entry)
		h.mu.Unlock()
		return "", err
	}

	desc := entry.command.Description()

	h.mu.Lock()
	h.undoStack = append(h.undoStack, entry)
	h.auditLocked(desc, AuditRedo)
	h.mu.Unlock()
	return desc, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo state and the audit trail.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.audit = nil
	h.grouping = false
	h.groupCmds = nil
}

// UndoInfo returns info about available undo operations, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]OperationInfo, len(h.undoStack))
	for i, entry := range h.undoStack {
		result[i] = OperationInfo{
			Description: entry.command.Description(),
			Timestamp:   entry.timestamp,
		}
	}
	return result
}

// RedoInfo returns info about available redo operations, oldest first.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]OperationInfo, len(h.redoStack))
	for i, entry := range h.redoStack {
		result[i] = OperationInfo{
			Description: entry.command.Description(),
			Timestamp:   entry.timestamp,
		}
	}
	return result
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}

	entry := h.undoStack[len(h.undoStack)-1]
	return OperationInfo{
		Description: entry.command.Description(),
		Timestamp:   entry.timestamp,
	}, true
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}

	entry := h.redoStack[len(h.redoStack)-1]
	return OperationInfo{
		Description: entry.command.Description(),
		Timestamp:   entry.timestamp,
	}, true
}

// Audit returns a copy of the audit trail, oldest first.
func (h *History) Audit() []AuditEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]AuditEntry(nil), h.audit...)
}

// SetMaxEntries changes the maximum number of undo and audit entries.
// If the current stacks are larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = 1000
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
	if len(h.audit) > max {
		excess := len(h.audit) - max
		h.audit = h.audit[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
