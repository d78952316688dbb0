// Package script runs user-supplied Lua macros against a session. Each
// macro executes inside one transaction, so a macro is a single undo
// unit and a failing macro leaves the document untouched.
package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rewind/internal/session"
)

// ErrScriptFailed wraps errors raised inside a macro.
var ErrScriptFailed = errors.New("script failed")

// Default limits per macro run.
const (
	DefaultCallStackSize = 120
	DefaultTimeout       = 5 * time.Second
)

// Engine executes Lua macros against a session. A fresh sandboxed Lua
// state is created per run, so macros cannot leak state into each
// other.
type Engine struct {
	session *session.Session
	timeout time.Duration
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTimeout sets the execution budget per macro run. A macro that
// exceeds it is aborted and its edits are rolled back.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates a macro engine bound to a session.
func NewEngine(s *session.Session, opts ...EngineOption) *Engine {
	e := &Engine{
		session: s,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunMacro executes the Lua source as a named macro. All edits the
// macro makes through the editor module become one undo unit. If the
// script errors or exceeds the execution budget, the edits are rolled
// back and nothing is recorded.
func (e *Engine) RunMacro(name, source string) error {
	return e.session.Transaction(name, func(tx *session.Tx) error {
		L := newSandboxedState()
		defer L.Close()

		// The VM checks the context between instructions, so a runaway
		// loop cannot wedge the session.
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		L.SetContext(ctx)

		registerEditor(L, tx)

		if err := L.DoString(source); err != nil {
			return fmt.Errorf("%w: %v", ErrScriptFailed, err)
		}
		return nil
	})
}

// newSandboxedState creates a Lua state with only safe libraries. io,
// os, debug and package stay closed, and the base-library loaders are
// removed so a macro cannot pull in code from outside the sandbox.
func newSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:  true,
		CallStackSize: DefaultCallStackSize,
	})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	return L
}

// registerEditor installs the editor module the macro edits through.
func registerEditor(L *lua.LState, tx *session.Tx) {
	funcs := map[string]lua.LGFunction{
		"insert": func(L *lua.LState) int {
			text := L.CheckString(1)
			pos := L.CheckInt(2)
			if err := tx.Insert(text, pos); err != nil {
				L.RaiseError("insert: %v", err)
			}
			return 0
		},
		"delete": func(L *lua.LState) int {
			pos := L.CheckInt(1)
			length := L.CheckInt(2)
			if err := tx.Delete(pos, length); err != nil {
				L.RaiseError("delete: %v", err)
			}
			return 0
		},
		"replace": func(L *lua.LState) int {
			old := L.CheckString(1)
			new := L.CheckString(2)
			if err := tx.Replace(old, new); err != nil {
				L.RaiseError("replace: %v", err)
			}
			return 0
		},
		"content": func(L *lua.LState) int {
			L.Push(lua.LString(tx.Content()))
			return 1
		},
		"len": func(L *lua.LState) int {
			L.Push(lua.LNumber(tx.Len()))
			return 1
		},
		"cursor": func(L *lua.LState) int {
			L.Push(lua.LNumber(tx.Cursor()))
			return 1
		},
		"set_cursor": func(L *lua.LState) int {
			pos := L.CheckInt(1)
			if err := tx.SetCursor(pos); err != nil {
				L.RaiseError("set_cursor: %v", err)
			}
			return 0
		},
	}

	mod := L.SetFuncs(L.NewTable(), funcs)
	L.SetGlobal("editor", mod)
}
