package breakpoints

import (
	"fmt"
	"strings"
)

// ModeName tags one of the three exception pause modes.
type ModeName string

const (
	ModeNoPause    ModeName = "no-pause"
	ModeNoCaught   ModeName = "no-caught"
	ModeWithCaught ModeName = "with-caught"
)

// PauseMode is one variant of the pause-on-exceptions policy together with
// the engine flag pair that selects it.
type PauseMode struct {
	Mode               ModeName
	Label              string
	HeaderLabel        string
	ShouldPause        bool
	ShouldIgnoreCaught bool
}

// The table order is the display order and the cycling order:
//  1. don't pause on exceptions      (false, false)
//  2. pause on uncaught exceptions   (true, true)
//  3. pause on all exceptions        (true, false)
var modes = [...]PauseMode{
	{
		Mode:        ModeNoPause,
		Label:       "Do not pause on exceptions.",
		HeaderLabel: "None",
	},
	{
		Mode:               ModeNoCaught,
		Label:              "Pause on uncaught exceptions.",
		HeaderLabel:        "Uncaught",
		ShouldPause:        true,
		ShouldIgnoreCaught: true,
	},
	{
		Mode:        ModeWithCaught,
		Label:       "Pause on all exceptions",
		HeaderLabel: "All",
		ShouldPause: true,
	},
}

// Modes returns the three modes in display order. The slice is a fresh copy.
func Modes() []PauseMode {
	out := make([]PauseMode, len(modes))
	copy(out, modes[:])
	return out
}

// Resolve maps the engine's exception flags to the current mode.
//
// When shouldPause is false the ignore-caught flag has no meaning, so
// (false, true) collapses to no-pause exactly like (false, false).
func Resolve(shouldPause, shouldIgnoreCaught bool) PauseMode {
	switch {
	case !shouldPause:
		return modes[0]
	case shouldIgnoreCaught:
		return modes[1]
	default:
		return modes[2]
	}
}

// Transition returns the flag pair to send to the engine to select mode.
// The mode only becomes current once the engine reports those flags back.
func Transition(mode PauseMode) (shouldPause, shouldIgnoreCaught bool) {
	return mode.ShouldPause, mode.ShouldIgnoreCaught
}

// ModeByName looks a mode up by its tag.
func ModeByName(name ModeName) (PauseMode, bool) {
	for _, m := range modes {
		if m.Mode == name {
			return m, true
		}
	}
	return PauseMode{}, false
}

// ParseMode accepts a mode tag or a header label, case-sensitively for tags
// and case-insensitively for labels ("none", "uncaught", "all").
func ParseMode(s string) (PauseMode, error) {
	if m, ok := ModeByName(ModeName(s)); ok {
		return m, nil
	}
	for _, m := range modes {
		if strings.EqualFold(m.HeaderLabel, strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return PauseMode{}, fmt.Errorf("unknown exception pause mode %q", s)
}

// NextMode returns the mode after current in table order, wrapping around.
func NextMode(current PauseMode) PauseMode {
	for i, m := range modes {
		if m.Mode == current.Mode {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}
