package breakpoints

import (
	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/types"
)

// Breakpoint is a display-ready breakpoint: the engine record plus its
// location identity, its resolved source and whether execution is paused on it.
type Breakpoint struct {
	debugger.Breakpoint

	LocationID        string
	Source            *debugger.Source
	IsCurrentlyPaused bool
}

// View is the breakpoint pane's display model.
type View struct {
	Breakpoints []Breakpoint
	CurrentMode PauseMode
	AllModes    []PauseMode
}

// Project derives the pane's display model from a state snapshot. It is a
// pure function of st: breakpoints whose source is not in the source table
// are left out, order follows the engine collection, and the current mode is
// resolved from the two exception flags.
func Project(st debugger.State) View {
	raw := st.Breakpoints()
	list := make([]Breakpoint, 0, len(raw))
	for _, bp := range raw {
		src, ok := st.Source(bp.Location.SourceID)
		if !ok {
			continue
		}
		list = append(list, Breakpoint{
			Breakpoint:        bp,
			LocationID:        types.LocationID(bp.Location),
			Source:            &src,
			IsCurrentlyPaused: IsPausedAt(st, bp),
		})
	}

	return View{
		Breakpoints: list,
		CurrentMode: Resolve(st.ShouldPauseOnExceptions, st.ShouldIgnoreCaughtExceptions),
		AllModes:    Modes(),
	}
}

// IsPausedAt reports whether the debuggee is stopped on bp: a pause is
// active, it was not an interruption, and the paused frame has the same
// location identity. A frame in a source missing from the source table
// matches nothing.
func IsPausedAt(st debugger.State, bp debugger.Breakpoint) bool {
	p := st.Pause
	if p == nil || p.IsInterrupted || p.Frame == nil {
		return false
	}
	if _, ok := st.Source(p.Frame.Location.SourceID); !ok {
		return false
	}
	return types.LocationID(p.Frame.Location) == types.LocationID(bp.Location)
}

// Paused returns the breakpoint execution is stopped on, if any.
func (v View) Paused() (Breakpoint, bool) {
	for _, bp := range v.Breakpoints {
		if bp.IsCurrentlyPaused {
			return bp, true
		}
	}
	return Breakpoint{}, false
}

// Index returns the position of the breakpoint with the given identity, or -1.
func (v View) Index(locationID string) int {
	for i, bp := range v.Breakpoints {
		if bp.LocationID == locationID {
			return i
		}
	}
	return -1
}

// Changed reports whether a pane showing prev needs to redraw for next:
// the breakpoint list or the current mode differ.
func Changed(prev, next View) bool {
	if prev.CurrentMode != next.CurrentMode {
		return true
	}
	if len(prev.Breakpoints) != len(next.Breakpoints) {
		return true
	}
	for i := range prev.Breakpoints {
		if !sameDisplay(prev.Breakpoints[i], next.Breakpoints[i]) {
			return true
		}
	}
	return false
}

func sameDisplay(a, b Breakpoint) bool {
	if a.LocationID != b.LocationID ||
		a.Disabled != b.Disabled ||
		a.Loading != b.Loading ||
		a.IsCurrentlyPaused != b.IsCurrentlyPaused {
		return false
	}
	if !equalOptional(a.Condition, b.Condition) || !equalOptional(a.Text, b.Text) {
		return false
	}
	return a.Source.URL == b.Source.URL
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
