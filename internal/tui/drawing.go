// internal/tui/drawing.go
package tui

import (
	"fmt"
	"math"

	"github.com/bethropolis/tidebug/internal/core"
	"github.com/bethropolis/tidebug/internal/linehighlight"
	"github.com/bethropolis/tidebug/internal/theme"
	"github.com/rivo/uniseg"
)

// LineMarker is the gutter mark for a source line.
type LineMarker int

const (
	MarkerNone LineMarker = iota
	MarkerBreakpoint
	MarkerDisabled
	MarkerConditional
	MarkerPaused
)

func (m LineMarker) glyph() rune {
	switch m {
	case MarkerBreakpoint:
		return '●'
	case MarkerDisabled:
		return '○'
	case MarkerConditional:
		return '◆'
	case MarkerPaused:
		return '▶'
	}
	return ' '
}

func (m LineMarker) styleName() string {
	switch m {
	case MarkerDisabled:
		return theme.StyleBreakpointDisabled
	case MarkerConditional:
		return theme.StyleBreakpointConditional
	case MarkerPaused:
		return theme.StyleBreakpointPaused
	}
	return theme.StyleBreakpoint
}

// lineClassStyles maps editor line classes to theme styles.
var lineClassStyles = map[string]string{
	linehighlight.ClassName: theme.StyleHighlightLines,
}

// SourceView is everything DrawSource needs.
type SourceView struct {
	Editor   *core.Editor
	Markers  map[int]LineMarker // 0-based line -> marker
	TabWidth int
	Focused  bool
}

// GutterWidth returns the marker column plus line numbers plus padding.
func GutterWidth(lineCount, width int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	gutter := 2 + maxDigits + 1
	if gutter >= width {
		return 0
	}
	return gutter
}

// DrawSource draws the visible portion of the editor's buffer into r.
func DrawSource(t *TUI, r Rect, v SourceView, th *theme.Theme) {
	if r.Empty() || v.Editor == nil {
		fill(t.screen, r, th.GetStyle(theme.StyleDefault))
		return
	}

	ed := v.Editor
	ed.SetViewSize(r.W-GutterWidth(ed.GetBuffer().LineCount(), r.W), r.H)

	defaultStyle := th.GetStyle(theme.StyleDefault)
	gutterStyle := th.GetStyle(theme.StyleGutter)
	lines := ed.GetBuffer().Lines()
	gutterWidth := GutterWidth(len(lines), r.W)
	maxDigits := gutterWidth - 3
	textAreaWidth := r.W - gutterWidth
	viewY, viewX := ed.GetViewport()
	cursorLine := ed.GetCursor().Line

	tabWidth := v.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}

	for row := 0; row < r.H; row++ {
		y := r.Y + row
		lineIdx := viewY + row

		lineStyle := defaultStyle
		for _, class := range ed.LineClasses(lineIdx) {
			if name, ok := lineClassStyles[class]; ok {
				lineStyle = th.GetStyle(name)
			}
		}
		if v.Focused && lineIdx == cursorLine {
			lineStyle = lineStyle.Bold(true)
		}
		_, lineBg, _ := lineStyle.Decompose()

		fill(t.screen, Rect{X: r.X, Y: y, W: r.W, H: 1}, lineStyle)

		if lineIdx < 0 || lineIdx >= len(lines) {
			continue
		}

		if gutterWidth > 0 {
			marker := v.Markers[lineIdx]
			if marker != MarkerNone {
				t.screen.SetContent(r.X, y, marker.glyph(), nil, th.GetStyle(marker.styleName()))
			}
			numStyle := gutterStyle
			if lineIdx == cursorLine {
				numStyle = th.GetStyle(theme.StyleCursorLine)
			}
			drawText(t.screen, r.X+2, y, maxDigits, fmt.Sprintf("%*d", maxDigits, lineIdx+1), numStyle)
		}

		syntax := ed.GetSyntaxHighlightsForLine(lineIdx)
		visualX := 0
		runeIdx := 0
		gr := uniseg.NewGraphemes(string(lines[lineIdx]))
		for gr.Next() {
			runes := gr.Runes()
			width := gr.Width()
			if runes[0] == '\t' {
				width = tabWidth - (visualX % tabWidth)
			}

			if visualX+width > viewX && visualX < viewX+textAreaWidth {
				style := lineStyle
				for _, sr := range syntax {
					if runeIdx >= sr.StartCol && runeIdx < sr.EndCol {
						style = th.GetStyle(sr.StyleName).Background(lineBg)
						break
					}
				}
				screenX := r.X + gutterWidth + visualX - viewX
				if screenX >= r.X+gutterWidth {
					if runes[0] == '\t' {
						for i := 0; i < width && screenX+i < r.X+r.W; i++ {
							t.screen.SetContent(screenX+i, y, ' ', nil, style)
						}
					} else if screenX+width <= r.X+r.W {
						t.screen.SetContent(screenX, y, runes[0], runes[1:], style)
					}
				}
			}

			visualX += width
			runeIdx += len(runes)
			if visualX >= viewX+textAreaWidth {
				break
			}
		}
	}
}
