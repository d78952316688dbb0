package document

import (
	"fmt"
	"time"

	"github.com/dshills/rewind/internal/engine/saves"
)

// Snapshot is an immutable capture of a document's observable state. It
// never aliases the live document: content is an immutable string and the
// remaining fields are plain values, so the copy is complete at
// construction.
type Snapshot struct {
	name        string
	content     string
	cursor      int
	version     uint64
	changeCount int
	createdAt   time.Time
}

// Version returns the document version at capture time.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// CreatedAt returns when the snapshot was taken.
func (s *Snapshot) CreatedAt() time.Time {
	return s.createdAt
}

// Description returns a human-readable summary for history display.
func (s *Snapshot) Description() string {
	return fmt.Sprintf("%s: %d chars, cursor %d (v%d)",
		s.name, len(s.content), s.cursor, s.version)
}

// Capture returns a snapshot of the document's current state.
func (d *Document) Capture() saves.Snapshot {
	return &Snapshot{
		name:        d.name,
		content:     d.content,
		cursor:      d.cursor,
		version:     d.version,
		changeCount: d.changeCount,
		createdAt:   time.Now(),
	}
}

// Restore overwrites the document's observable state with the snapshot's
// values. Restoring the same snapshot repeatedly is idempotent. Fails with
// saves.ErrForeignSnapshot when the snapshot was not produced by a
// Document.
func (d *Document) Restore(snap saves.Snapshot) error {
	ds, ok := snap.(*Snapshot)
	if !ok {
		return saves.ErrForeignSnapshot
	}

	d.name = ds.name
	d.content = ds.content
	d.cursor = ds.cursor
	d.version = ds.version
	d.changeCount = ds.changeCount
	return nil
}
