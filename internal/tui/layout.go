package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Rect is a screen region.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the region has no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Layout splits the screen into the source view, the breakpoint pane on the
// right (with a one-column border) and the status bar rows at the bottom.
func Layout(width, height, paneWidth, statusHeight int) (source, pane Rect, statusY int) {
	bodyH := height - statusHeight
	if bodyH < 0 {
		bodyH = 0
	}
	if paneWidth > width/2 {
		paneWidth = width / 2
	}
	sourceW := width - paneWidth - 1
	if sourceW < 0 {
		sourceW = 0
	}
	source = Rect{X: 0, Y: 0, W: sourceW, H: bodyH}
	pane = Rect{X: sourceW + 1, Y: 0, W: paneWidth, H: bodyH}
	return source, pane, height - statusHeight
}

// fill paints every cell of r with style.
func fill(s tcell.Screen, r Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText draws text from (x, y), clipped to maxWidth cells. It returns
// the number of cells used.
func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	used := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if used+w > maxWidth {
			break
		}
		runes := gr.Runes()
		s.SetContent(x+used, y, runes[0], runes[1:], style)
		for cw := 1; cw < w; cw++ {
			s.SetContent(x+used+cw, y, ' ', nil, style)
		}
		used += w
	}
	return used
}

// DrawVerticalBorder draws a one-column separator at x.
func DrawVerticalBorder(t *TUI, x, height int, style tcell.Style) {
	for y := 0; y < height; y++ {
		t.screen.SetContent(x, y, tcell.RuneVLine, nil, style)
	}
}
