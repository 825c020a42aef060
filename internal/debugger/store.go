package debugger

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tidebug/internal/event"
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/types"
)

// Store is an in-memory debugger engine. Every command replaces the current
// snapshot and dispatches event.TypeStateChanged after the lock is released,
// so handlers may read the store or issue further commands.
type Store struct {
	mu     sync.RWMutex
	state  State
	events *event.Manager
}

// NewStore creates a store seeded with initial. events may be nil.
func NewStore(initial State, events *event.Manager) *Store {
	return &Store{state: initial, events: events}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// update applies fn to the current snapshot and publishes the result.
func (s *Store) update(op string, fn func(State) (State, error)) error {
	s.mu.Lock()
	next, err := fn(s.state)
	if err != nil {
		s.mu.Unlock()
		logger.DebugTagf("debugger", "Store: %s rejected: %v", op, err)
		return err
	}
	next.Revision = s.state.Revision + 1
	s.state = next
	rev := next.Revision
	s.mu.Unlock()

	logger.DebugTagf("debugger", "Store: %s -> revision %d", op, rev)
	if s.events != nil {
		s.events.Dispatch(event.TypeStateChanged, event.StateChangedData{Revision: rev})
	}
	return nil
}

// AddSource registers a source in the source table.
func (s *Store) AddSource(src Source) error {
	if src.ID == "" {
		return fmt.Errorf("add source: %w: empty id", ErrInvalidLocation)
	}
	return s.update("add source", func(st State) (State, error) {
		return st.WithSource(src), nil
	})
}

// AddBreakpoint sets a breakpoint at loc. The source does not have to be
// loaded yet. condition may be nil.
func (s *Store) AddBreakpoint(loc types.Location, condition *string) error {
	if err := validateLocation(loc); err != nil {
		return fmt.Errorf("add breakpoint: %w", err)
	}
	return s.update("add breakpoint", func(st State) (State, error) {
		bp := Breakpoint{Location: loc, Condition: condition}
		if prev, ok := st.Breakpoint(loc); ok {
			bp.Text = prev.Text
		}
		return st.WithBreakpoint(bp), nil
	})
}

func (s *Store) setDisabled(op string, loc types.Location, disabled bool) error {
	return s.update(op, func(st State) (State, error) {
		bp, ok := st.Breakpoint(loc)
		if !ok {
			return st, fmt.Errorf("%s %s: %w", op, loc.ID(), ErrBreakpointNotFound)
		}
		bp.Disabled = disabled
		return st.WithBreakpoint(bp), nil
	})
}

// EnableBreakpoint enables the breakpoint at loc.
func (s *Store) EnableBreakpoint(loc types.Location) error {
	return s.setDisabled("enable breakpoint", loc, false)
}

// DisableBreakpoint disables the breakpoint at loc.
func (s *Store) DisableBreakpoint(loc types.Location) error {
	return s.setDisabled("disable breakpoint", loc, true)
}

// RemoveBreakpoint deletes the breakpoint at loc.
func (s *Store) RemoveBreakpoint(loc types.Location) error {
	return s.update("remove breakpoint", func(st State) (State, error) {
		next, ok := st.WithoutBreakpoint(loc)
		if !ok {
			return st, fmt.Errorf("remove breakpoint %s: %w", loc.ID(), ErrBreakpointNotFound)
		}
		return next, nil
	})
}

// SelectSource navigates to a line of a loaded source.
func (s *Store) SelectSource(sourceID string, line int) error {
	return s.update("select source", func(st State) (State, error) {
		if _, ok := st.Source(sourceID); !ok {
			return st, fmt.Errorf("select source %q: %w", sourceID, ErrSourceNotFound)
		}
		loc := types.Location{SourceID: sourceID, Line: line}
		return st.WithSelection(&loc), nil
	})
}

// PauseOnExceptions sets the exception-pause flags.
func (s *Store) PauseOnExceptions(shouldPause, shouldIgnoreCaught bool) error {
	return s.update("pause on exceptions", func(st State) (State, error) {
		return st.WithExceptionFlags(shouldPause, shouldIgnoreCaught), nil
	})
}

// Pause suspends the debuggee at loc. interrupted marks a pause that was
// not caused by a breakpoint or debugger statement.
func (s *Store) Pause(loc types.Location, interrupted bool) error {
	if err := validateLocation(loc); err != nil {
		return fmt.Errorf("pause: %w", err)
	}
	return s.update("pause", func(st State) (State, error) {
		return st.WithPause(&Pause{IsInterrupted: interrupted, Frame: &Frame{Location: loc}}), nil
	})
}

// Resume clears the pause state.
func (s *Store) Resume() error {
	return s.update("resume", func(st State) (State, error) {
		return st.WithPause(nil), nil
	})
}

// HighlightLineRange sets the line range the source view emphasizes.
// An empty range clears it.
func (s *Store) HighlightLineRange(r types.LineRange) error {
	return s.update("highlight", func(st State) (State, error) {
		if r.IsEmpty() {
			r = types.LineRange{}
		}
		return st.WithHighlight(r), nil
	})
}

// ClearHighlight removes the highlighted line range.
func (s *Store) ClearHighlight() error {
	return s.HighlightLineRange(types.LineRange{})
}
