package history

import "github.com/dshills/rewind/internal/engine/saves"

// StateCommand is a memento-style history entry: a pair of snapshots taken
// around a mutation of an Originator. Undo restores the before snapshot,
// redo the after snapshot. The snapshots stay opaque; the subject alone
// interprets them.
type StateCommand struct {
	subject saves.Originator
	before  saves.Snapshot
	after   saves.Snapshot
	desc    string
	applied bool
}

// Track captures the subject, runs mutate, and captures again. The
// returned command is already applied and ready for History.Record. When
// mutate fails its error is returned and no command is created; mutate is
// responsible for leaving the subject unchanged on failure.
func Track(subject saves.Originator, desc string, mutate func() error) (*StateCommand, error) {
	before := subject.Capture()
	if err := mutate(); err != nil {
		return nil, err
	}
	return &StateCommand{
		subject: subject,
		before:  before,
		after:   subject.Capture(),
		desc:    desc,
		applied: true,
	}, nil
}

// NewStateCommand creates an unapplied state command from an explicit
// snapshot pair.
func NewStateCommand(subject saves.Originator, before, after saves.Snapshot, desc string) *StateCommand {
	return &StateCommand{subject: subject, before: before, after: after, desc: desc}
}

// Execute restores the after snapshot.
func (c *StateCommand) Execute() error {
	if c.applied {
		return ErrAlreadyApplied
	}
	if err := c.subject.Restore(c.after); err != nil {
		return err
	}
	c.applied = true
	return nil
}

// Undo restores the before snapshot.
func (c *StateCommand) Undo() error {
	if !c.applied {
		return ErrNotApplied
	}
	if err := c.subject.Restore(c.before); err != nil {
		return &InverseError{Op: c.desc, Err: err}
	}
	c.applied = false
	return nil
}

// Description returns the description given at creation.
func (c *StateCommand) Description() string {
	return c.desc
}
