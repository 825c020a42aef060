// Package linehighlight keeps a source view's line highlight in step with the
// line range the debugger asks to emphasize.
package linehighlight

import (
	"github.com/bethropolis/tidebug/internal/types"
)

const (
	// ClassName is the line class painted on highlighted lines.
	ClassName = "highlight-lines"
	// Scope is the part of the line the class is attached to.
	Scope = "line"
)

// Editor is the part of a text widget the highlighter drives. Line indices
// are 0-based except for AlignLine, which takes a 1-based line number.
type Editor interface {
	AddLineClass(line int, where, class string)
	RemoveLineClass(line int, where, class string)
	// Operation runs fn with all line-class changes coalesced into one redraw.
	Operation(fn func())
	// AlignLine scrolls the 1-based line into view.
	AlignLine(line int)
}

// span returns the 0-based half-open line span painted for r. End is
// exclusive once converted, so {n,n} yields an empty span.
func span(r types.LineRange) (from, to int) {
	return r.Start - 1, r.End - 1
}

// Clear removes the highlight class for r from ed in one batched operation.
// It reports whether anything was sent to the editor.
func Clear(r types.LineRange, ed Editor) bool {
	if r.IsEmpty() || ed == nil {
		return false
	}
	from, to := span(r)
	ed.Operation(func() {
		for line := from; line < to; line++ {
			ed.RemoveLineClass(line, Scope, ClassName)
		}
	})
	return true
}

// Apply scrolls r.Start into view and adds the highlight class for r, both in
// one batched operation. It reports whether anything was sent to the editor.
// A range with Start == End only scrolls: it paints no line.
func Apply(r types.LineRange, ed Editor) bool {
	if r.IsEmpty() || ed == nil {
		return false
	}
	from, to := span(r)
	ed.Operation(func() {
		ed.AlignLine(r.Start)
		for line := from; line < to; line++ {
			ed.AddLineClass(line, Scope, ClassName)
		}
	})
	return true
}
