package breakpoints

import (
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/types"
)

// Commands is the part of the debugger engine the pane drives. The pane
// never changes breakpoints itself; it issues a command and renders the
// next snapshot.
type Commands interface {
	EnableBreakpoint(loc types.Location) error
	DisableBreakpoint(loc types.Location) error
	RemoveBreakpoint(loc types.Location) error
	SelectSource(sourceID string, line int) error
	PauseOnExceptions(shouldPause, shouldIgnoreCaught bool) error
}

// Toggle flips a breakpoint's enabled state. Breakpoints still loading are
// left alone.
func Toggle(cmds Commands, bp Breakpoint) error {
	if bp.Loading {
		logger.DebugTagf("breakpoints", "Toggle: %s is loading, ignored", bp.LocationID)
		return nil
	}
	if bp.Disabled {
		return cmds.EnableBreakpoint(bp.Location)
	}
	return cmds.DisableBreakpoint(bp.Location)
}

// Select navigates the source view to the breakpoint's line.
func Select(cmds Commands, bp Breakpoint) error {
	return cmds.SelectSource(bp.Location.SourceID, bp.Location.Line)
}

// Remove deletes the breakpoint.
func Remove(cmds Commands, bp Breakpoint) error {
	return cmds.RemoveBreakpoint(bp.Location)
}

// SetPauseMode asks the engine to switch to mode.
func SetPauseMode(cmds Commands, mode PauseMode) error {
	shouldPause, shouldIgnoreCaught := Transition(mode)
	logger.DebugTagf("breakpoints", "SetPauseMode: %s (%v, %v)", mode.Mode, shouldPause, shouldIgnoreCaught)
	return cmds.PauseOnExceptions(shouldPause, shouldIgnoreCaught)
}
