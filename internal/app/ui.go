package app

import (
	"github.com/bethropolis/tidebug/internal/theme"
	"github.com/bethropolis/tidebug/internal/tui"
)

// draw clears the screen and redraws all components.
func (a *App) draw() {
	th := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	a.statusBar.SetEditorMode(a.modeHandler.CurrentMode().String())

	a.mu.Lock()
	paneWidth := a.cfg.Panes.BreakpointsWidth
	source, pane, statusY := tui.Layout(width, height, paneWidth, a.cfg.Editor.StatusBarHeight)

	a.tuiManager.Clear()
	tui.DrawSource(a.tuiManager, source, tui.SourceView{
		Editor:   a.editor,
		Markers:  a.markers,
		TabWidth: a.cfg.Editor.TabWidth,
		Focused:  a.focus == PaneSource,
	}, th)
	if !pane.Empty() {
		tui.DrawVerticalBorder(a.tuiManager, pane.X-1, pane.H, th.GetStyle(theme.StylePaneBorder))
	}
	tui.DrawBreakpoints(a.tuiManager, pane, tui.BreakpointPane{
		View:             a.view,
		Selected:         a.selected,
		Focused:          a.focus == PaneBreakpoints,
		ExceptionPausing: a.cfg.Panes.ExceptionPausing,
		ShowSnippets:     a.cfg.Panes.Snippets(),
	}, th)
	if a.editor != nil {
		a.statusBar.SetSourceInfo(a.sourceName, a.editor.GetCursor().Line+1)
	}
	a.mu.Unlock()

	if statusY >= 0 {
		a.statusBar.Draw(screen, statusY, width)
	}
	a.tuiManager.Show()
}
