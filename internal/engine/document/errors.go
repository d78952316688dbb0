package document

import "errors"

// Common errors for document operations.
var (
	// ErrInvalidPosition indicates a position outside [0, Len()].
	ErrInvalidPosition = errors.New("position out of range")

	// ErrInvalidRange indicates a delete range that starts outside the
	// content or has a non-positive length.
	ErrInvalidRange = errors.New("invalid range")

	// ErrTextNotFound indicates replace target text absent from content.
	ErrTextNotFound = errors.New("text not found")
)
