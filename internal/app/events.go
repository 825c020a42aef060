package app

import (
	"github.com/bethropolis/tidebug/internal/breakpoints"
	"github.com/bethropolis/tidebug/internal/config"
	"github.com/bethropolis/tidebug/internal/core"
	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/event"
	"github.com/bethropolis/tidebug/internal/linehighlight"
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/statusbar"
	"github.com/bethropolis/tidebug/internal/tui"
	"github.com/bethropolis/tidebug/internal/types"
)

func (a *App) handleStateChanged(e event.Event) bool {
	if data, ok := e.Data.(event.StateChangedData); ok {
		logger.DebugTagf("app", "StateChanged revision %d", data.Revision)
	}
	a.refresh()
	a.requestRedraw()
	return false
}

func (a *App) handleThemeChanged(e event.Event) bool {
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(a.themeManager.Current(), config.MessageTimeout))
	a.requestRedraw()
	return false
}

// refresh re-projects the current snapshot and brings the source view in
// line with it: the editor follows the selected source and the line
// highlight follows the highlighted range.
func (a *App) refresh() {
	st := a.store.State()
	view := breakpoints.Project(st)

	a.mu.Lock()
	if breakpoints.Changed(a.view, view) {
		a.view = view
		a.clampSelection()
	}

	next, loc := a.targetEditor(st)
	prev := a.editor
	if loc != nil && loc.ID() != a.selectedLoc {
		next.GotoLine(loc.Line)
		a.selectedLoc = loc.ID()
	}
	a.editor = next

	var ed linehighlight.Editor
	if next != nil {
		ed = next
	}
	a.highlightSync.Update(st.HighlightedRange, ed)

	a.markers = markersFor(st, a.view, next)
	a.updateStatus(st, next)
	a.mu.Unlock()

	if prev != next {
		if prev != nil {
			a.eventManager.Dispatch(event.TypeEditorDetached, event.EditorDetachedData{SourceID: prev.SourceID()})
		}
		if next != nil {
			logger.Debugf("App: showing source '%s'", next.SourceID())
			a.eventManager.Dispatch(event.TypeEditorAttached, event.EditorAttachedData{SourceID: next.SourceID()})
		}
	}
}

// targetEditor picks the editor for the selected source, falling back to
// the paused frame's source. loc is the selection to navigate to, nil when
// the editor was chosen by fallback. Called with a.mu held.
func (a *App) targetEditor(st debugger.State) (*core.Editor, *types.Location) {
	if sel := st.SelectedLocation; sel != nil {
		if src, ok := st.Source(sel.SourceID); ok {
			return a.editorFor(src), sel
		}
		logger.DebugTagf("app", "Selected source '%s' is not loaded", sel.SourceID)
		return nil, nil
	}
	if st.Pause != nil && st.Pause.Frame != nil {
		if src, ok := st.Source(st.Pause.Frame.Location.SourceID); ok {
			return a.editorFor(src), nil
		}
	}
	return nil, nil
}

// clampSelection keeps the selection on the same breakpoint when the list
// changes, and inside the list otherwise. Called with a.mu held.
func (a *App) clampSelection() {
	if a.selectedID != "" {
		if i := a.view.Index(a.selectedID); i >= 0 {
			a.selected = i
		}
	}
	n := len(a.view.Breakpoints)
	switch {
	case n == 0:
		a.selected = -1
	case a.selected < 0:
		a.selected = 0
	case a.selected >= n:
		a.selected = n - 1
	}
	a.selectedID = ""
	if a.selected >= 0 {
		a.selectedID = a.view.Breakpoints[a.selected].LocationID
	}
}

// markersFor returns the gutter marks for the source shown by ed, keyed by
// 0-based line.
func markersFor(st debugger.State, view breakpoints.View, ed *core.Editor) map[int]tui.LineMarker {
	markers := make(map[int]tui.LineMarker)
	if ed == nil {
		return markers
	}
	id := ed.SourceID()
	for _, bp := range view.Breakpoints {
		if bp.Location.SourceID != id {
			continue
		}
		marker := tui.MarkerBreakpoint
		switch {
		case bp.IsCurrentlyPaused:
			marker = tui.MarkerPaused
		case bp.Disabled:
			marker = tui.MarkerDisabled
		case bp.IsConditional():
			marker = tui.MarkerConditional
		}
		markers[bp.Location.Line-1] = marker
	}
	if p := st.Pause; p != nil && p.Frame != nil && p.Frame.Location.SourceID == id {
		markers[p.Frame.Location.Line-1] = tui.MarkerPaused
	}
	return markers
}

// updateStatus pushes the snapshot's pause state and mode to the status bar.
// Called with a.mu held.
func (a *App) updateStatus(st debugger.State, ed *core.Editor) {
	if ed != nil {
		label := ed.SourceID()
		if src, ok := st.Source(ed.SourceID()); ok && src.URL != "" {
			label = breakpoints.Basename(src.URL)
		}
		a.sourceName = label
		a.statusBar.SetSourceInfo(label, ed.GetCursor().Line+1)
	} else {
		a.sourceName = ""
		a.statusBar.SetSourceInfo("", 0)
	}

	where := ""
	if bp, ok := a.view.Paused(); ok {
		where = breakpoints.SourceLabel(bp.Source, bp.Location.Line)
	}
	if p := st.Pause; where == "" && p != nil && p.Frame != nil {
		where = p.Frame.Location.ID()
		if src, ok := st.Source(p.Frame.Location.SourceID); ok && src.URL != "" {
			where = breakpoints.SourceLabel(&src, p.Frame.Location.Line)
		}
	}
	a.statusBar.SetPauseInfo(st.IsPaused(), where)
	a.statusBar.SetExceptionMode(a.view.CurrentMode.HeaderLabel)
}
