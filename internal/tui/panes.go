package tui

import (
	"fmt"

	"github.com/bethropolis/tidebug/internal/breakpoints"
	"github.com/bethropolis/tidebug/internal/config"
	"github.com/bethropolis/tidebug/internal/theme"
)

// NoBreakpointsText is shown when the pane has nothing to list.
const NoBreakpointsText = "No breakpoints"

// DropdownLabel is the trigger text of the dropdown exception control.
const DropdownLabel = "Pause on..."

// BreakpointPane is the breakpoint pane's draw input.
type BreakpointPane struct {
	View     breakpoints.View
	Selected int // index into View.Breakpoints, -1 for none
	Focused  bool
	// ExceptionPausing is config.ExceptionPausingInline or ExceptionPausingDropdown.
	ExceptionPausing string
	ShowSnippets     bool
}

// HeaderLines returns the exception control rows drawn above the list.
func (p BreakpointPane) HeaderLines() []string {
	if p.ExceptionPausing == config.ExceptionPausingDropdown {
		return []string{fmt.Sprintf("%s %s ▾", DropdownLabel, p.View.CurrentMode.HeaderLabel)}
	}
	lines := []string{breakpoints.HeaderText(p.View.CurrentMode)}
	for i, m := range p.View.AllModes {
		mark := "( )"
		if m.Mode == p.View.CurrentMode.Mode {
			mark = "(•)"
		}
		lines = append(lines, fmt.Sprintf("%s %d %s", mark, i+1, m.Label))
	}
	return lines
}

// RowText renders one breakpoint row.
func (p BreakpointPane) RowText(bp breakpoints.Breakpoint) string {
	box := "[x]"
	if bp.Disabled {
		box = "[ ]"
	}
	text := box + " " + breakpoints.SourceLabel(bp.Source, bp.Location.Line)
	if bp.IsConditional() {
		text += " ?"
	}
	if snippet := breakpoints.Snippet(bp); p.ShowSnippets && snippet != "" {
		text += "  " + snippet
	}
	return text
}

func rowStyle(bp breakpoints.Breakpoint) string {
	switch {
	case bp.IsCurrentlyPaused:
		return theme.StyleBreakpointPaused
	case bp.Disabled:
		return theme.StyleBreakpointDisabled
	case bp.IsConditional():
		return theme.StyleBreakpointConditional
	}
	return theme.StyleBreakpoint
}

// DrawBreakpoints draws the exception control followed by the breakpoint list.
func DrawBreakpoints(t *TUI, r Rect, p BreakpointPane, th *theme.Theme) {
	fill(t.screen, r, th.GetStyle(theme.StyleDefault))
	if r.Empty() {
		return
	}

	y := r.Y
	headerStyle := th.GetStyle(theme.StylePaneHeader)
	for i, line := range p.HeaderLines() {
		if y >= r.Y+r.H {
			return
		}
		style := headerStyle
		if i > 0 {
			style = th.GetStyle(theme.StyleDefault)
		}
		drawText(t.screen, r.X, y, r.W, line, style)
		y++
	}

	// separator
	if y < r.Y+r.H {
		borderStyle := th.GetStyle(theme.StylePaneBorder)
		for x := r.X; x < r.X+r.W; x++ {
			t.screen.SetContent(x, y, '─', nil, borderStyle)
		}
		y++
	}

	listH := r.Y + r.H - y
	if listH <= 0 {
		return
	}
	if len(p.View.Breakpoints) == 0 {
		drawText(t.screen, r.X, y, r.W, NoBreakpointsText, th.GetStyle(theme.StylePaneInfo))
		return
	}

	offset := 0
	if p.Selected >= listH {
		offset = p.Selected - listH + 1
	}
	for i := offset; i < len(p.View.Breakpoints) && y < r.Y+r.H; i++ {
		bp := p.View.Breakpoints[i]
		style := th.GetStyle(rowStyle(bp))
		if p.Focused && i == p.Selected {
			style = style.Reverse(true)
		}
		fill(t.screen, Rect{X: r.X, Y: y, W: r.W, H: 1}, style)
		drawText(t.screen, r.X, y, r.W, p.RowText(bp), style)
		y++
	}
}
