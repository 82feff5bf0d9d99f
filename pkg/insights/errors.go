package insights

import "errors"

// Domain-specific errors for building insights.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNoSolarPotential is returned when a payload carries no solarPotential block.
	ErrNoSolarPotential = errors.New("insights: building has no solar potential")

	// ErrInvalidLocation is returned when a lookup is made with an out-of-range coordinate.
	ErrInvalidLocation = errors.New("insights: latitude/longitude out of range")
)
