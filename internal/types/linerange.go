// internal/types/linerange.go
package types

import "fmt"

// LineRange is a span of source lines, 1-based with both ends inclusive.
// The zero value is the empty range.
type LineRange struct {
	Start int
	End   int
}

// IsEmpty reports whether the range selects no lines.
func (r LineRange) IsEmpty() bool {
	return r.Start <= 0 || r.End < r.Start
}

// String implements fmt.Stringer.
func (r LineRange) String() string {
	if r.IsEmpty() {
		return "[]"
	}
	return fmt.Sprintf("[%d-%d]", r.Start, r.End)
}
