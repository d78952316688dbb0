package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rewind/internal/session"
)

// ui is the terminal front end. All editing goes through the session,
// so every keystroke is undoable.
type ui struct {
	screen tcell.Screen
	sess   *session.Session
	status string
	done   bool
}

func newUI(sess *session.Session) (*ui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	return &ui{
		screen: screen,
		sess:   sess,
		status: "Ctrl+Z undo  Ctrl+Y redo  Ctrl+S save  Ctrl+O load  Ctrl+Q quit",
	}, nil
}

// Close restores the terminal.
func (u *ui) Close() {
	u.screen.Fini()
}

// Quit asks the event loop to exit. Safe to call from any goroutine.
func (u *ui) Quit() {
	_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Run drives the event loop until quit.
func (u *ui) Run() error {
	for !u.done {
		u.draw()

		switch ev := u.screen.PollEvent().(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventInterrupt:
			u.done = true
		case *tcell.EventKey:
			u.handleKey(ev)
		case nil:
			return nil
		}
	}
	return nil
}

func (u *ui) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		u.done = true

	case tcell.KeyCtrlZ:
		desc, err := u.sess.Undo()
		u.report("undid "+desc, err)

	case tcell.KeyCtrlY:
		desc, err := u.sess.Redo()
		u.report("redid "+desc, err)

	case tcell.KeyCtrlS:
		idx, err := u.sess.SaveSlot()
		u.report(fmt.Sprintf("saved slot %d", idx), err)

	case tcell.KeyCtrlO:
		err := u.sess.LoadSlot(-1)
		u.report("loaded current slot", err)

	case tcell.KeyCtrlB:
		err := u.sess.Checkpoint()
		u.report("checkpoint created", err)

	case tcell.KeyCtrlR:
		err := u.sess.RestoreCheckpoint()
		u.report("checkpoint restored", err)

	case tcell.KeyLeft:
		if pos := u.sess.Cursor(); pos > 0 {
			_ = u.sess.SetCursor(pos - 1)
		}

	case tcell.KeyRight:
		if pos := u.sess.Cursor(); pos < u.sess.Len() {
			_ = u.sess.SetCursor(pos + 1)
		}

	case tcell.KeyHome:
		_ = u.sess.SetCursor(0)

	case tcell.KeyEnd:
		_ = u.sess.SetCursor(u.sess.Len())

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		pos := u.sess.Cursor()
		if pos == 0 {
			return
		}
		err := u.sess.DeleteText(pos-1, 1)
		if err == nil {
			_ = u.sess.SetCursor(pos - 1)
		}
		u.report("deleted 1 character", err)

	case tcell.KeyEnter:
		u.insert("\n")

	case tcell.KeyTab:
		u.insert("\t")

	case tcell.KeyRune:
		u.insert(string(ev.Rune()))
	}
}

// insert inserts text at the cursor and advances it.
func (u *ui) insert(text string) {
	pos := u.sess.Cursor()
	if err := u.sess.InsertText(text, pos); err != nil {
		u.report("", err)
		return
	}
	_ = u.sess.SetCursor(pos + len(text))
	u.status = ""
}

// report sets the status line from an operation result.
func (u *ui) report(ok string, err error) {
	if err != nil {
		u.status = err.Error()
		return
	}
	u.status = ok
}

func (u *ui) draw() {
	u.screen.Clear()
	width, height := u.screen.Size()
	if height < 2 {
		u.screen.Show()
		return
	}

	style := tcell.StyleDefault
	cursorPos := u.sess.Cursor()

	x, y := 0, 0
	cursorX, cursorY := 0, 0
	for i, r := range u.sess.Content() {
		if i == cursorPos {
			cursorX, cursorY = x, y
		}
		switch {
		case r == '\n':
			x = 0
			y++
		case r == '\t':
			x += 4
		default:
			if x < width && y < height-2 {
				u.screen.SetContent(x, y, r, nil, style)
			}
			x++
		}
		if y >= height-2 {
			break
		}
	}
	if cursorPos >= u.sess.Len() {
		cursorX, cursorY = x, y
	}
	u.screen.ShowCursor(cursorX, cursorY)

	u.drawStatus(width, height)
	u.screen.Show()
}

// drawStatus renders the two-line status bar at the bottom.
func (u *ui) drawStatus(width, height int) {
	barStyle := tcell.StyleDefault.Reverse(true)

	info := fmt.Sprintf(" %s  v%d  pos %d  undo %d  redo %d  slots %d ",
		"rewind", u.sess.Version(), u.sess.Cursor(),
		len(u.sess.UndoHistory()), len(u.sess.RedoHistory()),
		len(u.sess.Slots()))

	putLine(u.screen, 0, height-2, width, info, barStyle)
	putLine(u.screen, 0, height-1, width, " "+u.status, tcell.StyleDefault)
}

// putLine writes a string padded to width. Padding counts runes, not
// bytes, so multibyte text is not over-padded.
func putLine(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	padded := text
	if n := utf8.RuneCountInString(padded); n < width {
		padded += strings.Repeat(" ", width-n)
	}
	col := x
	for _, r := range padded {
		if col >= width {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
}
