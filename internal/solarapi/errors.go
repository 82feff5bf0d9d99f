package solarapi

import "errors"

// Domain-specific errors for the Solar API client.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNotFound is returned when the API has no building near the location.
	ErrNotFound = errors.New("solarapi: no building found")

	// ErrUnauthorized is returned when the API key is missing or rejected.
	ErrUnauthorized = errors.New("solarapi: unauthorized")

	// ErrBadRequest is returned when the API rejects the request parameters.
	ErrBadRequest = errors.New("solarapi: bad request")

	// ErrUpstream is returned for any other non-200 response.
	ErrUpstream = errors.New("solarapi: upstream error")
)
