// Package breakpoints builds the breakpoint pane's display model.
//
// Project turns a debugger snapshot into the list of breakpoints to show:
// each record gets its location identity, its resolved source and a paused
// flag; records whose source is not loaded are left out; engine order is
// kept. The pause-on-exceptions policy is a closed set of three modes with
// Resolve mapping engine flags to a mode and Transition mapping a mode back
// to the flags to send. The pane's controls (Toggle, Select, Remove,
// SetPauseMode) only issue engine commands.
package breakpoints
