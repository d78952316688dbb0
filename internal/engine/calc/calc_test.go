package calc

import (
	"errors"
	"testing"

	"github.com/dshills/rewind/internal/engine/history"
)

func TestCalculatorOperations(t *testing.T) {
	c := New()

	if got := c.Add(10); got != 10 {
		t.Errorf("Add = %g, want 10", got)
	}
	if got := c.Multiply(2); got != 20 {
		t.Errorf("Multiply = %g, want 20", got)
	}
	if got := c.Subtract(5); got != 15 {
		t.Errorf("Subtract = %g, want 15", got)
	}

	got, err := c.Divide(3)
	if err != nil {
		t.Fatalf("Divide failed: %v", err)
	}
	if got != 5 {
		t.Errorf("Divide = %g, want 5", got)
	}
}

func TestDivideByZero(t *testing.T) {
	c := New()
	c.SetValue(10)

	if _, err := c.Divide(0); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero, got %v", err)
	}
	if c.Value() != 10 {
		t.Errorf("value changed on failed divide: %g", c.Value())
	}
}

func TestCommandsWithHistory(t *testing.T) {
	c := New()
	h := history.NewHistory(100)

	h.Execute(NewAddCommand(c, 10))
	h.Execute(NewMultiplyCommand(c, 2))
	h.Execute(NewSubtractCommand(c, 5))

	if c.Value() != 15 {
		t.Fatalf("value = %g, want 15", c.Value())
	}

	h.Undo()
	if c.Value() != 20 {
		t.Errorf("after undo: %g, want 20", c.Value())
	}

	h.Undo()
	if c.Value() != 10 {
		t.Errorf("after undo: %g, want 10", c.Value())
	}

	h.Redo()
	if c.Value() != 20 {
		t.Errorf("after redo: %g, want 20", c.Value())
	}
}

func TestDivideCommandFailureNotRecorded(t *testing.T) {
	c := New()
	c.SetValue(8)
	h := history.NewHistory(100)

	if err := h.Execute(NewDivideCommand(c, 0)); !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("expected ErrDivideByZero, got %v", err)
	}
	if h.CanUndo() {
		t.Error("failed command must not be recorded")
	}
	if c.Value() != 8 {
		t.Errorf("value = %g, want 8", c.Value())
	}
}

func TestCommandAppliedFlag(t *testing.T) {
	c := New()
	cmd := NewAddCommand(c, 5)

	if err := cmd.Undo(); !errors.Is(err, history.ErrNotApplied) {
		t.Errorf("expected ErrNotApplied, got %v", err)
	}

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if err := cmd.Execute(); !errors.Is(err, history.ErrAlreadyApplied) {
		t.Errorf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestDivideUndoExact(t *testing.T) {
	// Round-trip: undo restores the recorded previous value exactly even
	// when the division result is inexact.
	c := New()
	c.SetValue(1)
	cmd := NewDivideCommand(c, 3)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if err := cmd.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if c.Value() != 1 {
		t.Errorf("value = %g, want exactly 1", c.Value())
	}
}

func TestDescriptions(t *testing.T) {
	c := New()

	tests := []struct {
		cmd  history.Command
		want string
	}{
		{NewAddCommand(c, 10), "Add 10"},
		{NewSubtractCommand(c, 2.5), "Subtract 2.5"},
		{NewMultiplyCommand(c, 3), "Multiply by 3"},
		{NewDivideCommand(c, 4), "Divide by 4"},
	}

	for _, tt := range tests {
		if got := tt.cmd.Description(); got != tt.want {
			t.Errorf("Description() = %q, want %q", got, tt.want)
		}
	}
}
