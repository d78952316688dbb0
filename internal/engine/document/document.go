package document

import "strings"

// Document is a mutable text subject with a cursor and a monotonic state
// version. It is not safe for concurrent use; a single session owns it.
type Document struct {
	name        string
	content     string
	cursor      int
	version     uint64
	changeCount int
}

// New creates an empty document with the given display name.
func New(name string) *Document {
	if name == "" {
		name = "Untitled"
	}
	return &Document{
		name:    name,
		version: 1,
	}
}

// NewFromString creates a document with initial content.
func NewFromString(name, content string) *Document {
	d := New(name)
	d.content = content
	return d
}

// Name returns the display name.
func (d *Document) Name() string {
	return d.name
}

// Content returns the full document content.
func (d *Document) Content() string {
	return d.content
}

// Len returns the content length in bytes.
func (d *Document) Len() int {
	return len(d.content)
}

// TextRange returns the content in [start, end). Bounds are clamped to the
// content.
func (d *Document) TextRange(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(d.content) {
		end = len(d.content)
	}
	if start >= end {
		return ""
	}
	return d.content[start:end]
}

// Cursor returns the cursor position.
func (d *Document) Cursor() int {
	return d.cursor
}

// SetCursor moves the cursor. Fails with ErrInvalidPosition when pos is
// outside [0, Len()].
func (d *Document) SetCursor(pos int) error {
	if pos < 0 || pos > len(d.content) {
		return ErrInvalidPosition
	}
	d.cursor = pos
	return nil
}

// Version returns the monotonic state version. It starts at 1 and bumps on
// every successful mutation.
func (d *Document) Version() uint64 {
	return d.version
}

// ChangeCount returns the number of successful mutations.
func (d *Document) ChangeCount() int {
	return d.changeCount
}

// Insert inserts text at pos and moves the cursor to the end of the
// inserted text. Fails with ErrInvalidPosition when pos is outside
// [0, Len()]; the document is unchanged on failure.
func (d *Document) Insert(text string, pos int) error {
	if pos < 0 || pos > len(d.content) {
		return ErrInvalidPosition
	}
	if len(text) == 0 {
		return nil
	}

	d.content = d.content[:pos] + text + d.content[pos:]
	d.cursor = pos + len(text)
	d.bump()
	return nil
}

// Delete removes up to length bytes starting at pos and returns the
// removed text. The end clamps to the content length. Fails with
// ErrInvalidRange when pos is outside the content or length is not
// positive; the document is unchanged on failure.
func (d *Document) Delete(pos, length int) (string, error) {
	if pos < 0 || pos >= len(d.content) || length <= 0 {
		return "", ErrInvalidRange
	}

	end := pos + length
	if end > len(d.content) {
		end = len(d.content)
	}

	deleted := d.content[pos:end]
	d.content = d.content[:pos] + d.content[end:]
	d.cursor = pos
	d.bump()
	return deleted, nil
}

// Replace replaces every occurrence of old with new. Fails with
// ErrTextNotFound when old does not occur; the document is unchanged on
// failure.
func (d *Document) Replace(old, new string) error {
	if old == "" || !strings.Contains(d.content, old) {
		return ErrTextNotFound
	}

	d.content = strings.ReplaceAll(d.content, old, new)
	if d.cursor > len(d.content) {
		d.cursor = len(d.content)
	}
	d.bump()
	return nil
}

func (d *Document) bump() {
	d.version++
	d.changeCount++
}
