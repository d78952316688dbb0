// Package document implements the text document subject that the history
// and saves engines operate on.
//
// A Document is a small mutable value: content, a cursor, and a monotonic
// state version. Every mutating operation validates its arguments before
// touching any field, so a failed operation leaves the document unchanged.
// That validate-then-mutate discipline is what lets command inverses be
// all-or-nothing.
//
// Snapshots are deep copies stamped with the version and creation time.
// Only this package can interpret a document Snapshot; everything else
// stores and replays it opaquely.
package document
