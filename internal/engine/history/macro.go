package history

import "fmt"

// MacroCommand groups multiple commands into one atomic undo unit.
//
// Execution is all-or-nothing: if any sub-command fails, the sub-commands
// that already succeeded are undone in reverse order before the failure is
// surfaced, and the macro stays unapplied. Undo is compensated the same
// way, so a macro never leaves the subject between states.
type MacroCommand struct {
	name     string
	commands []Command
	applied  bool
}

// NewMacroCommand creates a macro from the given commands.
func NewMacroCommand(name string, commands ...Command) *MacroCommand {
	return &MacroCommand{name: name, commands: commands}
}

// Add appends a command to the macro.
func (c *MacroCommand) Add(cmd Command) {
	c.commands = append(c.commands, cmd)
}

// Len returns the number of sub-commands.
func (c *MacroCommand) Len() int {
	return len(c.commands)
}

// IsEmpty returns true if the macro has no commands.
func (c *MacroCommand) IsEmpty() bool {
	return len(c.commands) == 0
}

// Execute runs all sub-commands in order. On failure, previously succeeded
// sub-commands are undone in reverse order and the error is returned; the
// macro is not applied.
func (c *MacroCommand) Execute() error {
	if c.applied {
		return ErrAlreadyApplied
	}

	for i, cmd := range c.commands {
		if err := cmd.Execute(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.commands[j].Undo()
			}
			return fmt.Errorf("macro %q step %d: %w", c.name, i+1, err)
		}
	}

	c.applied = true
	return nil
}

// Undo reverses all sub-commands in reverse order. If an inverse fails,
// the sub-commands already undone are re-executed so the macro remains
// fully applied, and the cause is wrapped in an InverseError.
func (c *MacroCommand) Undo() error {
	if !c.applied {
		return ErrNotApplied
	}

	for i := len(c.commands) - 1; i >= 0; i-- {
		if err := c.commands[i].Undo(); err != nil {
			for j := i + 1; j < len(c.commands); j++ {
				_ = c.commands[j].Execute()
			}
			return &InverseError{
				Op:  fmt.Sprintf("macro %q step %d", c.name, i+1),
				Err: err,
			}
		}
	}

	c.applied = false
	return nil
}

// Description returns the macro's name, or a summary when unnamed.
func (c *MacroCommand) Description() string {
	if c.name != "" {
		return fmt.Sprintf("%s (%d commands)", c.name, len(c.commands))
	}
	if len(c.commands) == 1 {
		return c.commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.commands))
}
