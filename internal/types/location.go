// internal/types/location.go
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Location identifies a position in a source known to the debugger.
// Line is 1-based. Column is 1-based; 0 means the location has no column.
type Location struct {
	SourceID string
	Line     int
	Column   int
}

// LocationID returns the canonical identity string of a location:
// "sourceId:line" or "sourceId:line:column". Two locations name the same
// breakpoint slot exactly when their identity strings are equal.
func LocationID(loc Location) string {
	if loc.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", loc.SourceID, loc.Line, loc.Column)
	}
	return fmt.Sprintf("%s:%d", loc.SourceID, loc.Line)
}

// ID is shorthand for LocationID(loc).
func (loc Location) ID() string {
	return LocationID(loc)
}

// String implements fmt.Stringer.
func (loc Location) String() string {
	return LocationID(loc)
}

// ParseLocation parses "source:line" or "source:line:column".
// The source part may itself contain colons (e.g. "http://host/a.js:10");
// the trailing numeric fields are taken from the right.
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return Location{}, fmt.Errorf("location %q: expected source:line[:column]", s)
	}

	last, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || last <= 0 {
		return Location{}, fmt.Errorf("location %q: invalid line", s)
	}

	// source:line:column form, only if the field before is numeric too
	// and something remains for the source id.
	if len(parts) >= 3 {
		if line, lerr := strconv.Atoi(parts[len(parts)-2]); lerr == nil && line > 0 {
			source := strings.Join(parts[:len(parts)-2], ":")
			if source != "" {
				return Location{SourceID: source, Line: line, Column: last}, nil
			}
		}
	}

	source := strings.Join(parts[:len(parts)-1], ":")
	if source == "" {
		return Location{}, fmt.Errorf("location %q: empty source id", s)
	}
	return Location{SourceID: source, Line: last}, nil
}
