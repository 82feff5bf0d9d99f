package cache

import "errors"

// Domain-specific errors for the result cache.
var (
	// ErrMiss is returned when no cached result exists for a key.
	ErrMiss = errors.New("cache: miss")
)
