package calc

import (
	"fmt"

	"github.com/dshills/rewind/internal/engine/history"
)

// command holds the state shared by all calculator commands: the bound
// calculator, the operand, and the value to restore on undo.
type command struct {
	calc     *Calculator
	number   float64
	previous float64
	applied  bool
}

func (c *command) begin() error {
	if c.applied {
		return history.ErrAlreadyApplied
	}
	c.previous = c.calc.Value()
	return nil
}

func (c *command) undo() error {
	if !c.applied {
		return history.ErrNotApplied
	}
	c.calc.SetValue(c.previous)
	c.applied = false
	return nil
}

// AddCommand adds a number to the calculator value.
type AddCommand struct{ command }

// NewAddCommand creates an add command bound to c.
func NewAddCommand(c *Calculator, n float64) *AddCommand {
	return &AddCommand{command{calc: c, number: n}}
}

// Execute adds the number.
func (c *AddCommand) Execute() error {
	if err := c.begin(); err != nil {
		return err
	}
	c.calc.Add(c.number)
	c.applied = true
	return nil
}

// Undo restores the previous value.
func (c *AddCommand) Undo() error { return c.undo() }

// Description returns a human-readable description.
func (c *AddCommand) Description() string {
	return fmt.Sprintf("Add %g", c.number)
}

// SubtractCommand subtracts a number from the calculator value.
type SubtractCommand struct{ command }

// NewSubtractCommand creates a subtract command bound to c.
func NewSubtractCommand(c *Calculator, n float64) *SubtractCommand {
	return &SubtractCommand{command{calc: c, number: n}}
}

// Execute subtracts the number.
func (c *SubtractCommand) Execute() error {
	if err := c.begin(); err != nil {
		return err
	}
	c.calc.Subtract(c.number)
	c.applied = true
	return nil
}

// Undo restores the previous value.
func (c *SubtractCommand) Undo() error { return c.undo() }

// Description returns a human-readable description.
func (c *SubtractCommand) Description() string {
	return fmt.Sprintf("Subtract %g", c.number)
}

// MultiplyCommand multiplies the calculator value by a number.
type MultiplyCommand struct{ command }

// NewMultiplyCommand creates a multiply command bound to c.
func NewMultiplyCommand(c *Calculator, n float64) *MultiplyCommand {
	return &MultiplyCommand{command{calc: c, number: n}}
}

// Execute multiplies by the number.
func (c *MultiplyCommand) Execute() error {
	if err := c.begin(); err != nil {
		return err
	}
	c.calc.Multiply(c.number)
	c.applied = true
	return nil
}

// Undo restores the previous value.
func (c *MultiplyCommand) Undo() error { return c.undo() }

// Description returns a human-readable description.
func (c *MultiplyCommand) Description() string {
	return fmt.Sprintf("Multiply by %g", c.number)
}

// DivideCommand divides the calculator value by a number.
type DivideCommand struct{ command }

// NewDivideCommand creates a divide command bound to c.
func NewDivideCommand(c *Calculator, n float64) *DivideCommand {
	return &DivideCommand{command{calc: c, number: n}}
}

// Execute divides by the number. Fails with ErrDivideByZero for zero; the
// calculator is unchanged on failure.
func (c *DivideCommand) Execute() error {
	if err := c.begin(); err != nil {
		return err
	}
	if _, err := c.calc.Divide(c.number); err != nil {
		return err
	}
	c.applied = true
	return nil
}

// Undo restores the previous value. Division can lose precision, so the
// undo restores the recorded value rather than multiplying back.
func (c *DivideCommand) Undo() error { return c.undo() }

// Description returns a human-readable description.
func (c *DivideCommand) Description() string {
	return fmt.Sprintf("Divide by %g", c.number)
}
