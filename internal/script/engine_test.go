package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/rewind/internal/session"
)

func newTestEngine(t *testing.T) (*Engine, *session.Session) {
	t.Helper()
	s := session.New("macro.txt", session.Options{})
	return NewEngine(s), s
}

func TestRunMacroEdits(t *testing.T) {
	e, s := newTestEngine(t)

	err := e.RunMacro("greeting", `
editor.insert("Hello", 0)
editor.insert(" World", editor.len())
`)
	if err != nil {
		t.Fatalf("RunMacro failed: %v", err)
	}

	if got := s.Content(); got != "Hello World" {
		t.Errorf("Content = %q, want %q", got, "Hello World")
	}
}

func TestRunMacroSingleUndoUnit(t *testing.T) {
	e, s := newTestEngine(t)

	err := e.RunMacro("three edits", `
editor.insert("a", 0)
editor.insert("b", 1)
editor.insert("c", 2)
`)
	if err != nil {
		t.Fatalf("RunMacro failed: %v", err)
	}

	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := s.Content(); got != "" {
		t.Errorf("after undo Content = %q, want empty", got)
	}
	if s.CanUndo() {
		t.Error("CanUndo = true, macro should be one undo unit")
	}
}

func TestRunMacroErrorRollsBack(t *testing.T) {
	e, s := newTestEngine(t)

	if err := s.InsertText("base", 0); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}

	err := e.RunMacro("bad macro", `
editor.insert("X", 0)
error("deliberate failure")
`)
	if !errors.Is(err, ErrScriptFailed) {
		t.Fatalf("RunMacro error = %v, want ErrScriptFailed", err)
	}

	if got := s.Content(); got != "base" {
		t.Errorf("Content = %q, want %q (rolled back)", got, "base")
	}
}

func TestRunMacroEditFailureRollsBack(t *testing.T) {
	e, s := newTestEngine(t)

	// Second insert is out of range and raises inside Lua.
	err := e.RunMacro("oob", `
editor.insert("ok", 0)
editor.insert("nope", 99)
`)
	if err == nil {
		t.Fatal("expected macro to fail")
	}

	if got := s.Content(); got != "" {
		t.Errorf("Content = %q, want empty (rolled back)", got)
	}
	if s.CanUndo() {
		t.Error("CanUndo = true, failed macro must record nothing")
	}
}

func TestRunMacroReadsState(t *testing.T) {
	e, s := newTestEngine(t)

	if err := s.InsertText("Hello World", 0); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}

	err := e.RunMacro("upcase greeting", `
if editor.content() == "Hello World" then
    editor.replace("World", "Lua")
end
`)
	if err != nil {
		t.Fatalf("RunMacro failed: %v", err)
	}

	if got := s.Content(); got != "Hello Lua" {
		t.Errorf("Content = %q, want %q", got, "Hello Lua")
	}
}

func TestRunMacroSandbox(t *testing.T) {
	e, _ := newTestEngine(t)

	// io and os are not opened, and the base-library loaders are
	// removed.
	for _, src := range []string{
		`io.open("/etc/passwd")`,
		`os.execute("true")`,
		`dofile("/tmp/payload.lua")`,
		`loadfile("/tmp/payload.lua")()`,
		`load("return 1")()`,
		`loadstring("return 1")()`,
	} {
		if err := e.RunMacro("escape", src); err == nil {
			t.Errorf("macro %q succeeded, want sandbox error", src)
		}
	}
}

func TestRunMacroCannotLoadFromDisk(t *testing.T) {
	e, s := newTestEngine(t)

	payload := filepath.Join(t.TempDir(), "payload.lua")
	if err := os.WriteFile(payload, []byte(`editor.insert("ESCAPED", 0)`), 0o644); err != nil {
		t.Fatal(err)
	}

	err := e.RunMacro("load payload", fmt.Sprintf("dofile(%q)", payload))
	if err == nil {
		t.Fatal("expected dofile to be unavailable")
	}
	if got := s.Content(); got != "" {
		t.Errorf("Content = %q, want empty (payload must not run)", got)
	}
}

func TestRunMacroTimeout(t *testing.T) {
	s := session.New("macro.txt", session.Options{})
	e := NewEngine(s, WithTimeout(100*time.Millisecond))

	if err := s.InsertText("base", 0); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}

	err := e.RunMacro("runaway", `
editor.insert("X", 0)
while true do end
`)
	if !errors.Is(err, ErrScriptFailed) {
		t.Fatalf("RunMacro error = %v, want ErrScriptFailed", err)
	}

	if got := s.Content(); got != "base" {
		t.Errorf("Content = %q, want %q (rolled back)", got, "base")
	}

	// The session is still usable after the abort.
	if err := s.InsertText("!", 4); err != nil {
		t.Errorf("InsertText after timeout failed: %v", err)
	}
}

func TestRunMacroStringLibAvailable(t *testing.T) {
	e, s := newTestEngine(t)

	err := e.RunMacro("upper", `
editor.insert(string.upper("hello"), 0)
`)
	if err != nil {
		t.Fatalf("RunMacro failed: %v", err)
	}
	if got := s.Content(); got != "HELLO" {
		t.Errorf("Content = %q, want %q", got, "HELLO")
	}
}
