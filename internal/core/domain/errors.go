package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous indicates an identifier matched more than one document.
	ErrAmbiguous = errors.New("ambiguous identifier")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLibraryUnavailable indicates the document library cannot be queried.
	ErrLibraryUnavailable = errors.New("library unavailable")
)
