package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidebug/internal/breakpoints"
	"github.com/bethropolis/tidebug/internal/input"
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/types"
)

var errNoSelection = errors.New("no breakpoint selected")

// handleNormalAction runs a normal-mode action and reports whether the
// screen needs a redraw.
func (a *App) handleNormalAction(ev input.ActionEvent) bool {
	var err error
	switch ev.Action {
	case input.ActionSwitchPane:
		a.mu.Lock()
		if a.focus == PaneSource {
			a.focus = PaneBreakpoints
		} else {
			a.focus = PaneSource
		}
		a.mu.Unlock()
		return true

	case input.ActionMoveUp:
		a.move(-1)
		return true
	case input.ActionMoveDown:
		a.move(1)
		return true
	case input.ActionMovePageUp:
		a.page(-1)
		return true
	case input.ActionMovePageDown:
		a.page(1)
		return true
	case input.ActionMoveTop:
		a.jump(true)
		return true
	case input.ActionMoveBottom:
		a.jump(false)
		return true

	case input.ActionToggleBreakpoint:
		err = a.withTarget(func(bp breakpoints.Breakpoint) error {
			return breakpoints.Toggle(a.store, bp)
		})
	case input.ActionSelectBreakpoint:
		err = a.withSelected(func(bp breakpoints.Breakpoint) error {
			return breakpoints.Select(a.store, bp)
		})
	case input.ActionRemoveBreakpoint:
		err = a.withTarget(func(bp breakpoints.Breakpoint) error {
			return breakpoints.Remove(a.store, bp)
		})
	case input.ActionCycleExceptionMode:
		err = breakpoints.SetPauseMode(a.store, breakpoints.NextMode(a.View().CurrentMode))
	case input.ActionSetExceptionMode:
		modes := breakpoints.Modes()
		idx := int(ev.Rune - '1')
		if idx < 0 || idx >= len(modes) {
			return false
		}
		err = breakpoints.SetPauseMode(a.store, modes[idx])
	case input.ActionYankLocation:
		err = a.withSelected(a.yank)
	case input.ActionAddBreakpoint:
		err = a.addBreakpointAtCursor()
	default:
		logger.DebugTagf("input", "Unhandled normal action %v", ev.Action)
		return false
	}

	if err != nil {
		a.statusBar.SetTemporaryMessage("Error: %v", err)
	}
	return true
}

// move shifts the cursor or the list selection by delta rows.
func (a *App) move(delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.focus == PaneBreakpoints {
		a.selectRow(a.selected + delta)
		return
	}
	if a.editor != nil {
		a.editor.MoveCursor(delta, 0)
	}
}

func (a *App) page(delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.focus == PaneBreakpoints {
		_, h := a.tuiManager.Size()
		a.selectRow(a.selected + delta*max(h/2, 1))
		return
	}
	if a.editor != nil {
		a.editor.PageMove(delta)
	}
}

func (a *App) jump(top bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.focus == PaneBreakpoints {
		if top {
			a.selectRow(0)
		} else {
			a.selectRow(len(a.view.Breakpoints) - 1)
		}
		return
	}
	if a.editor == nil {
		return
	}
	if top {
		a.editor.GotoLine(1)
	} else {
		a.editor.GotoLine(a.editor.GetBuffer().LineCount())
	}
}

// selectRow clamps and sets the list selection. Called with a.mu held.
func (a *App) selectRow(row int) {
	a.selected = row
	a.selectedID = ""
	a.clampSelection()
}

// withSelected runs fn on the selected list row. a.mu is released before
// fn runs, so fn may issue store commands.
func (a *App) withSelected(fn func(breakpoints.Breakpoint) error) error {
	a.mu.Lock()
	if a.selected < 0 || a.selected >= len(a.view.Breakpoints) {
		a.mu.Unlock()
		return errNoSelection
	}
	bp := a.view.Breakpoints[a.selected]
	a.mu.Unlock()
	return fn(bp)
}

// withTarget runs fn on the selected row when the list has focus, or on the
// breakpoint at the cursor line when the source view has focus.
func (a *App) withTarget(fn func(breakpoints.Breakpoint) error) error {
	a.mu.Lock()
	if a.focus == PaneBreakpoints {
		a.mu.Unlock()
		return a.withSelected(fn)
	}
	if a.editor == nil {
		a.mu.Unlock()
		return errNoSelection
	}
	id, line := a.editor.SourceID(), a.editor.GetCursor().Line+1
	var (
		bp    breakpoints.Breakpoint
		found bool
	)
	for _, candidate := range a.view.Breakpoints {
		if candidate.Location.SourceID == id && candidate.Location.Line == line {
			bp, found = candidate, true
			break
		}
	}
	a.mu.Unlock()

	if !found {
		return fmt.Errorf("no breakpoint at %s:%d", id, line)
	}
	return fn(bp)
}

// yank copies "url:line" of a breakpoint, or its location id when the
// source has no url.
func (a *App) yank(bp breakpoints.Breakpoint) error {
	text := bp.LocationID
	if bp.Source != nil && bp.Source.URL != "" {
		text = fmt.Sprintf("%s:%d", bp.Source.URL, bp.Location.Line)
	}
	if err := a.clipboard.Yank(text); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Yanked %s", text)
	return nil
}

func (a *App) addBreakpointAtCursor() error {
	a.mu.Lock()
	if a.editor == nil {
		a.mu.Unlock()
		return fmt.Errorf("no source shown")
	}
	loc := types.Location{SourceID: a.editor.SourceID(), Line: a.editor.GetCursor().Line + 1}
	a.mu.Unlock()

	if err := a.store.AddBreakpoint(loc, nil); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Breakpoint set at %s", loc)
	return nil
}
