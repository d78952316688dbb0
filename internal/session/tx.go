package session

import (
	"github.com/dshills/rewind/internal/engine/history"
)

// Tx is the handle a Transaction callback edits through. Every edit made
// on the handle becomes part of one undo unit. A Tx must not be used
// after its callback returns.
type Tx struct {
	s        *Session
	executed []history.Command
}

// Insert inserts text at pos.
func (t *Tx) Insert(text string, pos int) error {
	cmd := history.NewInsertCommand(t.s.doc, text, pos)
	return t.run(cmd)
}

// Delete removes length characters starting at pos.
func (t *Tx) Delete(pos, length int) error {
	cmd := history.NewDeleteCommand(t.s.doc, pos, length)
	return t.run(cmd)
}

// Replace replaces every occurrence of old with new.
func (t *Tx) Replace(old, new string) error {
	cmd := history.NewReplaceCommand(t.s.doc, old, new)
	return t.run(cmd)
}

// Content returns the document text as of the edits made so far.
func (t *Tx) Content() string {
	return t.s.doc.Content()
}

// Len returns the document length in bytes.
func (t *Tx) Len() int {
	return t.s.doc.Len()
}

// Cursor returns the cursor position.
func (t *Tx) Cursor() int {
	return t.s.doc.Cursor()
}

// SetCursor moves the cursor. Not recorded as an edit.
func (t *Tx) SetCursor(pos int) error {
	return t.s.doc.SetCursor(pos)
}

// run executes a command inside the open group, remembering it for
// rollback.
func (t *Tx) run(cmd history.Command) error {
	if err := t.s.hist.Execute(cmd); err != nil {
		return err
	}
	t.executed = append(t.executed, cmd)
	return nil
}

// rollback undoes the executed commands in reverse order.
func (t *Tx) rollback() error {
	for i := len(t.executed) - 1; i >= 0; i-- {
		if err := t.executed[i].Undo(); err != nil {
			return &history.InverseError{
				Op:  "transaction rollback",
				Err: err,
			}
		}
	}
	return nil
}

// Transaction runs fn with a Tx handle. All edits made through the
// handle are recorded as a single undo unit. If fn returns an error the
// edits already made are undone, nothing is recorded, and the error is
// returned. Transactions do not nest.
func (s *Session) Transaction(name string, fn func(*Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.hist.IsGrouping() {
		return ErrNestedTransaction
	}

	s.hist.BeginGroup(name)
	tx := &Tx{s: s}

	if err := fn(tx); err != nil {
		s.hist.CancelGroup()
		if rbErr := tx.rollback(); rbErr != nil {
			s.logger.Error("transaction %q rollback failed: %v", name, rbErr)
			return rbErr
		}
		s.logger.Warn("transaction %q cancelled: %v", name, err)
		return err
	}

	s.hist.EndGroup()
	s.logger.Debug("transaction %q committed (%d edits)", name, len(tx.executed))
	return nil
}
