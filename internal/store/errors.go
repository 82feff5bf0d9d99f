package store

import "errors"

// Domain-specific errors for installation storage.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNotFound is returned when no installation has the requested ID.
	ErrNotFound = errors.New("store: installation not found")

	// ErrInvalidID is returned when an ID is not a UUID.
	ErrInvalidID = errors.New("store: invalid installation id")
)
