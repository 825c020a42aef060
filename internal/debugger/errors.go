package debugger

import "errors"

var (
	// ErrBreakpointNotFound is returned when a command names a location
	// with no breakpoint.
	ErrBreakpointNotFound = errors.New("breakpoint not found")

	// ErrSourceNotFound is returned when a source id is not in the source table.
	ErrSourceNotFound = errors.New("source not found")

	// ErrInvalidLocation is returned for locations with an empty source id
	// or a non-positive line.
	ErrInvalidLocation = errors.New("invalid location")
)
