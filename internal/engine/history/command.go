package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/rewind/internal/engine/document"
	"github.com/dshills/rewind/internal/engine/saves"
)

// Command represents a reversible unit of change that can be executed and
// undone. Description is pure: it never touches the subject.
type Command interface {
	// Execute applies the forward operation exactly once.
	Execute() error

	// Undo applies the exact inverse of a previously executed command.
	Undo() error

	// Description returns a human-readable description of the command.
	Description() string
}

// InsertCommand inserts text into a document at a fixed position.
type InsertCommand struct {
	doc     *document.Document
	text    string
	pos     int
	applied bool
}

// NewInsertCommand creates an insert command bound to doc.
func NewInsertCommand(doc *document.Document, text string, pos int) *InsertCommand {
	return &InsertCommand{doc: doc, text: text, pos: pos}
}

// Execute inserts the text. Fails with ErrAlreadyApplied when the command
// is currently applied.
func (c *InsertCommand) Execute() error {
	if c.applied {
		return ErrAlreadyApplied
	}
	if err := c.doc.Insert(c.text, c.pos); err != nil {
		return fmt.Errorf("insert at %d: %w", c.pos, err)
	}
	c.applied = true
	return nil
}

// Undo removes the inserted text. The inserted range is verified before
// anything is deleted, so a diverged document is left untouched.
func (c *InsertCommand) Undo() error {
	if !c.applied {
		return ErrNotApplied
	}
	if len(c.text) == 0 {
		c.applied = false
		return nil
	}

	if c.doc.TextRange(c.pos, c.pos+len(c.text)) != c.text {
		return &InverseError{Op: c.Description(), Err: ErrStateDiverged}
	}
	if _, err := c.doc.Delete(c.pos, len(c.text)); err != nil {
		return &InverseError{Op: c.Description(), Err: err}
	}
	c.applied = false
	return nil
}

// Description returns a human-readable description.
func (c *InsertCommand) Description() string {
	if utf8.RuneCountInString(c.text) <= 20 {
		return fmt.Sprintf("Insert %q at %d", c.text, c.pos)
	}
	return fmt.Sprintf("Insert %d characters at %d", utf8.RuneCountInString(c.text), c.pos)
}

// DeleteCommand deletes a range of text from a document.
type DeleteCommand struct {
	doc     *document.Document
	pos     int
	length  int
	deleted string
	applied bool
}

// NewDeleteCommand creates a delete command bound to doc.
func NewDeleteCommand(doc *document.Document, pos, length int) *DeleteCommand {
	return &DeleteCommand{doc: doc, pos: pos, length: length}
}

// Execute deletes the range and records the removed text for undo.
func (c *DeleteCommand) Execute() error {
	if c.applied {
		return ErrAlreadyApplied
	}
	deleted, err := c.doc.Delete(c.pos, c.length)
	if err != nil {
		return fmt.Errorf("delete %d at %d: %w", c.length, c.pos, err)
	}
	c.deleted = deleted
	c.applied = true
	return nil
}

// Undo re-inserts the deleted text at its original position.
func (c *DeleteCommand) Undo() error {
	if !c.applied {
		return ErrNotApplied
	}
	if err := c.doc.Insert(c.deleted, c.pos); err != nil {
		return &InverseError{Op: c.Description(), Err: err}
	}
	c.applied = false
	return nil
}

// Description returns a human-readable description.
func (c *DeleteCommand) Description() string {
	return fmt.Sprintf("Delete %d characters at %d", c.length, c.pos)
}

// ReplaceCommand replaces all occurrences of one string with another.
//
// The inverse replaces new with old, which is exact unless the replacement
// text already occurred in the document before Execute. Callers that need
// a guaranteed-exact inverse should use a StateCommand instead. An empty
// replacement has no text the inverse could search for, so that case is
// undone by restoring a snapshot captured before Execute.
type ReplaceCommand struct {
	doc     *document.Document
	oldText string
	newText string
	before  saves.Snapshot
	applied bool
}

// NewReplaceCommand creates a replace command bound to doc.
func NewReplaceCommand(doc *document.Document, oldText, newText string) *ReplaceCommand {
	return &ReplaceCommand{doc: doc, oldText: oldText, newText: newText}
}

// Execute replaces every occurrence of the old text.
func (c *ReplaceCommand) Execute() error {
	if c.applied {
		return ErrAlreadyApplied
	}
	if c.newText == "" {
		c.before = c.doc.Capture()
	}
	if err := c.doc.Replace(c.oldText, c.newText); err != nil {
		return fmt.Errorf("replace %q: %w", c.oldText, err)
	}
	c.applied = true
	return nil
}

// Undo replaces every occurrence of the new text with the old, or
// restores the pre-execute snapshot when the replacement was empty.
func (c *ReplaceCommand) Undo() error {
	if !c.applied {
		return ErrNotApplied
	}
	if c.newText == "" {
		if err := c.doc.Restore(c.before); err != nil {
			return &InverseError{Op: c.Description(), Err: err}
		}
		c.applied = false
		return nil
	}
	if err := c.doc.Replace(c.newText, c.oldText); err != nil {
		return &InverseError{Op: c.Description(), Err: err}
	}
	c.applied = false
	return nil
}

// Description returns a human-readable description.
func (c *ReplaceCommand) Description() string {
	return fmt.Sprintf("Replace %q with %q", c.oldText, c.newText)
}
