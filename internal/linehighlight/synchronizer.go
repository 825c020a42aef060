package linehighlight

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/types"
)

var (
	// ErrDoubleApply is reported when a highlight would be painted while the
	// previous one is still on screen.
	ErrDoubleApply = errors.New("linehighlight: apply without clearing previous highlight")
	// ErrUnpairedClear is reported when a clear has no matching apply.
	ErrUnpairedClear = errors.New("linehighlight: clear without matching apply")
)

// Synchronizer owns the highlight painted on the attached editor. Every change
// of range or editor clears the previous pair before painting the new one,
// and Detach clears whatever is still painted.
//
// Editors are compared by identity, so implementations should be pointers.
// A Synchronizer is not safe for concurrent use; it runs on the UI loop.
type Synchronizer struct {
	// OnViolation, if set, receives pairing violations.
	OnViolation func(error)
	// Strict panics on pairing violations after OnViolation has run.
	Strict bool

	attached bool
	rng      types.LineRange
	ed       Editor
	painted  bool

	applies int
	clears  int
}

// NewSynchronizer returns a detached synchronizer.
func NewSynchronizer() *Synchronizer {
	return &Synchronizer{}
}

// Attach records the first range/editor pair and paints it. Attaching an
// already attached synchronizer behaves like Update.
func (s *Synchronizer) Attach(r types.LineRange, ed Editor) {
	if s.attached {
		s.Update(r, ed)
		return
	}
	s.attached = true
	s.rng, s.ed = r, ed
	s.apply()
}

// Update moves the highlight to r on ed. Nothing happens when neither the
// range nor the editor changed.
func (s *Synchronizer) Update(r types.LineRange, ed Editor) {
	if !s.attached {
		s.Attach(r, ed)
		return
	}
	if r == s.rng && ed == s.ed {
		return
	}
	s.clear()
	s.rng, s.ed = r, ed
	s.apply()
}

// Detach clears the last painted highlight and forgets the pair.
func (s *Synchronizer) Detach() {
	if !s.attached {
		return
	}
	s.clear()
	s.attached = false
	s.rng, s.ed = types.LineRange{}, nil
}

// Range returns the last requested range.
func (s *Synchronizer) Range() types.LineRange { return s.rng }

// Painted reports whether a highlight is currently on the attached editor.
func (s *Synchronizer) Painted() bool { return s.painted }

// Counts returns how many applies and clears reached an editor.
func (s *Synchronizer) Counts() (applies, clears int) {
	return s.applies, s.clears
}

func (s *Synchronizer) apply() {
	if s.painted {
		s.violation(fmt.Errorf("%w: %s", ErrDoubleApply, s.rng))
		return
	}
	if Apply(s.rng, s.ed) {
		s.painted = true
		s.applies++
		logger.DebugTagf("highlight", "apply %s", s.rng)
	}
}

func (s *Synchronizer) clear() {
	if !s.painted {
		// Nothing was painted for the current pair, so there is nothing to
		// clear. The pair can still be non-empty, which means a paint was lost.
		if !s.rng.IsEmpty() && s.ed != nil {
			s.violation(fmt.Errorf("%w: %s", ErrUnpairedClear, s.rng))
		}
		return
	}
	Clear(s.rng, s.ed)
	s.painted = false
	s.clears++
	logger.DebugTagf("highlight", "clear %s", s.rng)
}

func (s *Synchronizer) violation(err error) {
	if s.OnViolation != nil {
		s.OnViolation(err)
	}
	if s.Strict {
		panic(err)
	}
	logger.Warnf("%v", err)
}
