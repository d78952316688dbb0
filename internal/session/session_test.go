package session

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/rewind/internal/engine/history"
	"github.com/dshills/rewind/internal/engine/saves"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return New("test.txt", Options{})
}

func TestInsertUndoRedo(t *testing.T) {
	s := newTestSession(t)

	if err := s.InsertText("Hello", 0); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}
	if err := s.InsertText(" World", 5); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}

	if got := s.Content(); got != "Hello World" {
		t.Errorf("Content = %q, want %q", got, "Hello World")
	}

	desc, err := s.Undo()
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !strings.Contains(desc, "Insert") {
		t.Errorf("undo description = %q, want insert description", desc)
	}
	if got := s.Content(); got != "Hello" {
		t.Errorf("after undo Content = %q, want %q", got, "Hello")
	}

	if _, err := s.Redo(); err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
	if got := s.Content(); got != "Hello World" {
		t.Errorf("after redo Content = %q, want %q", got, "Hello World")
	}
}

func TestDeleteAndReplace(t *testing.T) {
	s := newTestSession(t)

	if err := s.InsertText("Hello World", 0); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}
	if err := s.DeleteText(5, 6); err != nil {
		t.Fatalf("DeleteText failed: %v", err)
	}
	if got := s.Content(); got != "Hello" {
		t.Errorf("Content = %q, want %q", got, "Hello")
	}

	if err := s.ReplaceText("Hello", "Goodbye"); err != nil {
		t.Fatalf("ReplaceText failed: %v", err)
	}
	if got := s.Content(); got != "Goodbye" {
		t.Errorf("Content = %q, want %q", got, "Goodbye")
	}

	// Two undos bring back the original text.
	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := s.Content(); got != "Hello World" {
		t.Errorf("Content = %q, want %q", got, "Hello World")
	}
}

func TestFailedEditWrapsOperationError(t *testing.T) {
	s := newTestSession(t)

	err := s.InsertText("x", 99)
	if err == nil {
		t.Fatal("expected error for out-of-range insert")
	}

	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("error %v is not an OperationError", err)
	}
	if opErr.Op != "insert" {
		t.Errorf("Op = %q, want %q", opErr.Op, "insert")
	}

	// A failed edit leaves nothing to undo.
	if s.CanUndo() {
		t.Error("CanUndo = true after failed edit")
	}
}

func TestTransactionSingleUndoUnit(t *testing.T) {
	s := newTestSession(t)

	err := s.Transaction("compose greeting", func(tx *Tx) error {
		if err := tx.Insert("Hello", 0); err != nil {
			return err
		}
		return tx.Insert(" World", tx.Len())
	})
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}

	if got := s.Content(); got != "Hello World" {
		t.Errorf("Content = %q, want %q", got, "Hello World")
	}

	// Both edits undo as one unit.
	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := s.Content(); got != "" {
		t.Errorf("after undo Content = %q, want empty", got)
	}
	if s.CanUndo() {
		t.Error("CanUndo = true, transaction should be a single unit")
	}
}

func TestTransactionRollbackOnError(t *testing.T) {
	s := newTestSession(t)

	if err := s.InsertText("base", 0); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}

	boom := errors.New("boom")
	err := s.Transaction("failing edit", func(tx *Tx) error {
		if err := tx.Insert("!!!", 4); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction error = %v, want %v", err, boom)
	}

	if got := s.Content(); got != "base" {
		t.Errorf("Content = %q, want %q (rolled back)", got, "base")
	}

	// Nothing from the cancelled transaction is recorded.
	if got := len(s.UndoHistory()); got != 1 {
		t.Errorf("undo history length = %d, want 1", got)
	}
}

func TestRunMacroAtomic(t *testing.T) {
	s := newTestSession(t)

	if err := s.InsertText("Hello", 0); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}

	// Second command fails: position 99 is out of range. The first must
	// be compensated.
	err := s.RunMacro("bad macro",
		history.NewInsertCommand(s.doc, "AB", 0),
		history.NewInsertCommand(s.doc, "CD", 99),
	)
	if err == nil {
		t.Fatal("expected macro to fail")
	}

	if got := s.Content(); got != "Hello" {
		t.Errorf("Content = %q, want %q (macro compensated)", got, "Hello")
	}
	if got := len(s.UndoHistory()); got != 1 {
		t.Errorf("undo history length = %d, want 1", got)
	}
}

func TestRunMacroSuccess(t *testing.T) {
	s := newTestSession(t)

	err := s.RunMacro("greeting",
		history.NewInsertCommand(s.doc, "Hello", 0),
		history.NewInsertCommand(s.doc, " World", 5),
	)
	if err != nil {
		t.Fatalf("RunMacro failed: %v", err)
	}

	if got := s.Content(); got != "Hello World" {
		t.Errorf("Content = %q, want %q", got, "Hello World")
	}

	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := s.Content(); got != "" {
		t.Errorf("after undo Content = %q, want empty", got)
	}
}

func TestSaveLoadSlots(t *testing.T) {
	s := newTestSession(t)

	if err := s.InsertText("v1", 0); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}
	idx, err := s.SaveSlot()
	if err != nil {
		t.Fatalf("SaveSlot failed: %v", err)
	}
	if idx != 0 {
		t.Errorf("slot index = %d, want 0", idx)
	}

	if err := s.ReplaceText("v1", "v2"); err != nil {
		t.Fatalf("ReplaceText failed: %v", err)
	}
	if _, err := s.SaveSlot(); err != nil {
		t.Fatalf("SaveSlot failed: %v", err)
	}

	if err := s.LoadSlot(0); err != nil {
		t.Fatalf("LoadSlot failed: %v", err)
	}
	if got := s.Content(); got != "v1" {
		t.Errorf("Content = %q, want %q", got, "v1")
	}

	// Loading clears undo history.
	if s.CanUndo() {
		t.Error("CanUndo = true after load, history should be cleared")
	}

	slots := s.Slots()
	if len(slots) != 2 {
		t.Fatalf("Slots length = %d, want 2", len(slots))
	}
}

func TestLoadSlotInvalid(t *testing.T) {
	s := newTestSession(t)

	err := s.LoadSlot(0)
	if !errors.Is(err, saves.ErrNoSaves) {
		t.Errorf("LoadSlot on empty = %v, want ErrNoSaves", err)
	}
}

func TestCheckpointRestore(t *testing.T) {
	s := newTestSession(t)

	if err := s.InsertText("safe", 0); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}
	if err := s.Checkpoint(); err != nil {
		t.Fatalf("Checkpoint failed: %v", err)
	}

	if err := s.ReplaceText("safe", "risky"); err != nil {
		t.Fatalf("ReplaceText failed: %v", err)
	}

	if err := s.RestoreCheckpoint(); err != nil {
		t.Fatalf("RestoreCheckpoint failed: %v", err)
	}
	if got := s.Content(); got != "safe" {
		t.Errorf("Content = %q, want %q", got, "safe")
	}

	// Checkpoints are not consumed by restore.
	if err := s.RestoreCheckpoint(); err != nil {
		t.Errorf("second RestoreCheckpoint failed: %v", err)
	}
}

func TestRestoreCheckpointEmpty(t *testing.T) {
	s := newTestSession(t)

	err := s.RestoreCheckpoint()
	if !errors.Is(err, saves.ErrNoCheckpoint) {
		t.Errorf("RestoreCheckpoint = %v, want ErrNoCheckpoint", err)
	}
}

func TestClosedSession(t *testing.T) {
	s := newTestSession(t)
	s.Close()
	s.Close() // idempotent

	if err := s.InsertText("x", 0); !errors.Is(err, ErrClosed) {
		t.Errorf("InsertText on closed = %v, want ErrClosed", err)
	}
	if _, err := s.Undo(); !errors.Is(err, ErrClosed) {
		t.Errorf("Undo on closed = %v, want ErrClosed", err)
	}
	if _, err := s.SaveSlot(); !errors.Is(err, ErrClosed) {
		t.Errorf("SaveSlot on closed = %v, want ErrClosed", err)
	}
	if err := s.Transaction("t", func(*Tx) error { return nil }); !errors.Is(err, ErrClosed) {
		t.Errorf("Transaction on closed = %v, want ErrClosed", err)
	}
}

func TestAuditTrail(t *testing.T) {
	s := newTestSession(t)

	if err := s.InsertText("Hello", 0); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}
	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if _, err := s.Redo(); err != nil {
		t.Fatalf("Redo failed: %v", err)
	}

	audit := s.Audit()
	if len(audit) != 3 {
		t.Fatalf("audit length = %d, want 3", len(audit))
	}
	kinds := []history.AuditKind{history.AuditRecord, history.AuditUndo, history.AuditRedo}
	for i, want := range kinds {
		if audit[i].Kind != want {
			t.Errorf("audit[%d].Kind = %v, want %v", i, audit[i].Kind, want)
		}
	}
}
