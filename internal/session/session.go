package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/rewind/internal/engine/document"
	"github.com/dshills/rewind/internal/engine/history"
	"github.com/dshills/rewind/internal/engine/saves"
)

// Options configures a new session.
type Options struct {
	// MaxHistory bounds the undo stack. Zero means the default.
	MaxHistory int
	// MaxSaves bounds the save slots. Zero means the default.
	MaxSaves int
	// MaxCheckpoints bounds the checkpoint stack. Zero means unbounded.
	MaxCheckpoints int
	// Logger receives structured events. Nil means a nop logger.
	Logger *Logger
}

// Session owns one document together with its undo/redo history and its
// save slots. Every operation is an atomic unit under the session mutex,
// so a save can never observe a half-applied edit.
type Session struct {
	mu     sync.Mutex
	id     uuid.UUID
	doc    *document.Document
	hist   *history.History
	saves  *saves.SaveManager
	logger *Logger
	closed bool
}

// New creates a session around an empty document with the given name.
func New(name string, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = NopLogger()
	}

	mgr := saves.NewSaveManager(opts.MaxSaves)
	mgr.SetMaxCheckpoints(opts.MaxCheckpoints)

	id := uuid.New()
	s := &Session{
		id:     id,
		doc:    document.New(name),
		hist:   history.NewHistory(opts.MaxHistory),
		saves:  mgr,
		logger: logger.WithField("session", shortID(id)),
	}

	s.logger.Debug("session created: document=%q", name)
	return s
}

// shortID returns the first uuid group, enough to tell sessions apart
// in a log line.
func shortID(id uuid.UUID) string {
	str := id.String()
	if len(str) > 8 {
		return str[:8]
	}
	return str
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Close marks the session closed. Further mutating operations fail with
// ErrClosed. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.logger.Debug("session closed")
}

// InsertText inserts text at the given position and records the edit.
func (s *Session) InsertText(text string, pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	cmd := history.NewInsertCommand(s.doc, text, pos)
	if err := s.hist.Execute(cmd); err != nil {
		s.logger.Warn("insert failed at %d: %v", pos, err)
		return opError("insert", s.doc.Name(), err)
	}

	s.logger.Debug("%s", cmd.Description())
	return nil
}

// DeleteText removes length characters starting at pos and records the
// edit.
func (s *Session) DeleteText(pos, length int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	cmd := history.NewDeleteCommand(s.doc, pos, length)
	if err := s.hist.Execute(cmd); err != nil {
		s.logger.Warn("delete failed at %d: %v", pos, err)
		return opError("delete", s.doc.Name(), err)
	}

	s.logger.Debug("%s", cmd.Description())
	return nil
}

// ReplaceText replaces every occurrence of old with new and records the
// edit.
func (s *Session) ReplaceText(old, new string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	cmd := history.NewReplaceCommand(s.doc, old, new)
	if err := s.hist.Execute(cmd); err != nil {
		s.logger.Warn("replace failed: %v", err)
		return opError("replace", s.doc.Name(), err)
	}

	s.logger.Debug("%s", cmd.Description())
	return nil
}

// Undo reverses the most recent edit and returns its description.
func (s *Session) Undo() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}

	desc, err := s.hist.Undo()
	if err != nil {
		s.logger.Debug("undo: %v", err)
		return "", err
	}

	s.logger.Debug("undo: %s", desc)
	return desc, nil
}

// Redo re-applies the most recently undone edit and returns its
// description.
func (s *Session) Redo() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}

	desc, err := s.hist.Redo()
	if err != nil {
		s.logger.Debug("redo: %v", err)
		return "", err
	}

	s.logger.Debug("redo: %s", desc)
	return desc, nil
}

// RunMacro executes the given commands as a single all-or-nothing undo
// unit. A failing command rolls back its predecessors and nothing is
// recorded.
func (s *Session) RunMacro(name string, cmds ...history.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	macro := history.NewMacroCommand(name, cmds...)
	if err := s.hist.Execute(macro); err != nil {
		s.logger.Warn("macro %q failed: %v", name, err)
		return err
	}

	s.logger.Debug("macro %q applied (%d commands)", name, len(cmds))
	return nil
}

// SaveSlot captures the document into a new save slot and returns the
// slot index.
func (s *Session) SaveSlot() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}

	idx := s.saves.Save(s.doc)
	s.logger.Info("saved slot %d (version %d)", idx, s.doc.Version())
	return idx, nil
}

// LoadSlot restores the document from the save slot at index. Index -1
// loads the current slot. Loading clears the undo/redo history so stale
// commands cannot corrupt the restored state.
func (s *Session) LoadSlot(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if err := s.saves.Load(s.doc, index); err != nil {
		s.logger.Warn("load slot %d: %v", index, err)
		return opError("load slot", s.doc.Name(), err)
	}

	s.hist.Clear()
	s.logger.Info("loaded slot %d (version %d)", index, s.doc.Version())
	return nil
}

// DeleteSlot removes the save slot at index.
func (s *Session) DeleteSlot(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if err := s.saves.Delete(index); err != nil {
		return opError("delete slot", s.doc.Name(), err)
	}

	s.logger.Info("deleted slot %d", index)
	return nil
}

// Slots lists the occupied save slots, oldest first.
func (s *Session) Slots() []saves.SlotInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves.List()
}

// Checkpoint captures the document onto the checkpoint stack.
func (s *Session) Checkpoint() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.saves.Checkpoint(s.doc)
	s.logger.Debug("checkpoint (version %d)", s.doc.Version())
	return nil
}

// RestoreCheckpoint restores the most recent checkpoint. The checkpoint
// is not consumed, so restoring twice yields the same state. The
// undo/redo history is cleared.
func (s *Session) RestoreCheckpoint() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if err := s.saves.RestoreCheckpoint(s.doc); err != nil {
		s.logger.Warn("restore checkpoint: %v", err)
		return opError("restore checkpoint", s.doc.Name(), err)
	}

	s.hist.Clear()
	s.logger.Info("restored checkpoint (version %d)", s.doc.Version())
	return nil
}

// Content returns the current document text.
func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Content()
}

// Cursor returns the current cursor position.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Cursor()
}

// SetCursor moves the cursor. Cursor motion is not an edit and is not
// recorded.
func (s *Session) SetCursor(pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.SetCursor(pos)
}

// Len returns the document length in bytes.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Len()
}

// Version returns the document version counter.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Version()
}

// CanUndo reports whether an undo is possible.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanUndo()
}

// CanRedo reports whether a redo is possible.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.CanRedo()
}

// UndoHistory returns descriptions of undoable operations, most recent
// first.
func (s *Session) UndoHistory() []history.OperationInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.UndoInfo()
}

// RedoHistory returns descriptions of redoable operations, most recent
// first.
func (s *Session) RedoHistory() []history.OperationInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.RedoInfo()
}

// SetMaxHistory adjusts the undo history bound at runtime. Excess
// entries are evicted oldest first.
func (s *Session) SetMaxHistory(max int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hist.SetMaxEntries(max)
	s.logger.Debug("history bound set to %d", max)
}

// Audit returns the bounded audit trail of history operations.
func (s *Session) Audit() []history.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Audit()
}
