// Package debugger holds the debugger engine state that the breakpoint pane
// and the source view render from.
//
// State is an immutable snapshot: ordered breakpoints keyed by location
// identity, the source table, the pause state, the two exception flags,
// the selected location and the highlighted line range. Store owns the
// current snapshot, applies engine commands by publishing a fresh snapshot,
// and announces each one with event.TypeStateChanged.
package debugger
