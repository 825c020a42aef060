package debugger

import (
	"fmt"

	"github.com/bethropolis/tidebug/internal/types"
)

// Source is a script or file known to the debuggee.
type Source struct {
	ID string
	// URL is the source URL; empty when the source has none.
	URL string
	// Path is a local file holding the source text, if any.
	Path string
}

// Breakpoint is the engine's record of a user breakpoint.
type Breakpoint struct {
	Location  types.Location
	Disabled  bool
	Loading   bool
	Condition *string // nil when unconditional
	Text      *string // source text at the location, nil when unknown
}

// IsConditional reports whether the breakpoint carries a condition.
func (b Breakpoint) IsConditional() bool {
	return b.Condition != nil
}

// Frame is a stack frame the debuggee is paused in.
type Frame struct {
	Location types.Location
}

// Pause describes why and where the debuggee is suspended.
type Pause struct {
	// IsInterrupted is set when execution stopped for a reason other than
	// a breakpoint or debugger statement.
	IsInterrupted bool
	Frame         *Frame
}

// State is an immutable snapshot of the debugger. The With* methods return
// modified copies and never touch the receiver's maps.
type State struct {
	Revision uint64

	order       []string
	breakpoints map[string]Breakpoint
	sources     map[string]Source
	sourceOrder []string

	Pause                        *Pause
	ShouldPauseOnExceptions      bool
	ShouldIgnoreCaughtExceptions bool

	// SelectedLocation is the source and line last navigated to, nil if none.
	SelectedLocation *types.Location
	// HighlightedRange is the line span the source view should emphasize.
	HighlightedRange types.LineRange
}

// NewState builds a snapshot from a source table and breakpoints in
// insertion order. A later breakpoint at an already used location replaces
// the earlier record but keeps its position.
func NewState(sources []Source, breakpoints []Breakpoint) State {
	s := State{
		breakpoints: make(map[string]Breakpoint, len(breakpoints)),
		sources:     make(map[string]Source, len(sources)),
	}
	for _, src := range sources {
		if _, ok := s.sources[src.ID]; !ok {
			s.sourceOrder = append(s.sourceOrder, src.ID)
		}
		s.sources[src.ID] = src
	}
	for _, bp := range breakpoints {
		id := bp.Location.ID()
		if _, ok := s.breakpoints[id]; !ok {
			s.order = append(s.order, id)
		}
		s.breakpoints[id] = bp
	}
	return s
}

// clone copies the maps and slices so the result can be modified freely.
func (s State) clone() State {
	c := s
	c.order = append([]string(nil), s.order...)
	c.sourceOrder = append([]string(nil), s.sourceOrder...)
	c.breakpoints = make(map[string]Breakpoint, len(s.breakpoints))
	for k, v := range s.breakpoints {
		c.breakpoints[k] = v
	}
	c.sources = make(map[string]Source, len(s.sources))
	for k, v := range s.sources {
		c.sources[k] = v
	}
	return c
}

// Breakpoints returns the breakpoint records in insertion order.
func (s State) Breakpoints() []Breakpoint {
	out := make([]Breakpoint, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.breakpoints[id])
	}
	return out
}

// Breakpoint looks up a breakpoint by location identity.
func (s State) Breakpoint(loc types.Location) (Breakpoint, bool) {
	bp, ok := s.breakpoints[loc.ID()]
	return bp, ok
}

// BreakpointCount returns the number of breakpoints in the collection.
func (s State) BreakpointCount() int {
	return len(s.order)
}

// Source looks up a source by id.
func (s State) Source(id string) (Source, bool) {
	src, ok := s.sources[id]
	return src, ok
}

// Sources returns the source table in insertion order.
func (s State) Sources() []Source {
	out := make([]Source, 0, len(s.sourceOrder))
	for _, id := range s.sourceOrder {
		out = append(out, s.sources[id])
	}
	return out
}

// IsPaused reports whether a pause is active.
func (s State) IsPaused() bool {
	return s.Pause != nil
}

// WithSource adds or replaces a source.
func (s State) WithSource(src Source) State {
	c := s.clone()
	if _, ok := c.sources[src.ID]; !ok {
		c.sourceOrder = append(c.sourceOrder, src.ID)
	}
	c.sources[src.ID] = src
	return c
}

// WithBreakpoint adds a breakpoint, or replaces the one at the same
// location in place.
func (s State) WithBreakpoint(bp Breakpoint) State {
	c := s.clone()
	id := bp.Location.ID()
	if _, ok := c.breakpoints[id]; !ok {
		c.order = append(c.order, id)
	}
	c.breakpoints[id] = bp
	return c
}

// WithoutBreakpoint removes the breakpoint at loc. The second result is
// false when there was none.
func (s State) WithoutBreakpoint(loc types.Location) (State, bool) {
	id := loc.ID()
	if _, ok := s.breakpoints[id]; !ok {
		return s, false
	}
	c := s.clone()
	delete(c.breakpoints, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return c, true
}

// WithPause sets the pause state; nil means running.
func (s State) WithPause(p *Pause) State {
	c := s
	c.Pause = p
	return c
}

// WithExceptionFlags sets both exception flags.
func (s State) WithExceptionFlags(shouldPause, shouldIgnoreCaught bool) State {
	c := s
	c.ShouldPauseOnExceptions = shouldPause
	c.ShouldIgnoreCaughtExceptions = shouldIgnoreCaught
	return c
}

// WithSelection sets the selected location.
func (s State) WithSelection(loc *types.Location) State {
	c := s
	c.SelectedLocation = loc
	return c
}

// WithHighlight sets the highlighted line range.
func (s State) WithHighlight(r types.LineRange) State {
	c := s
	c.HighlightedRange = r
	return c
}

func validateLocation(loc types.Location) error {
	if loc.SourceID == "" || loc.Line <= 0 || loc.Column < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidLocation, loc.ID())
	}
	return nil
}
