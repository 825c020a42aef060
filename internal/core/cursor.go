package core

import (
	"unicode/utf8"

	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/rivo/uniseg"
)

// MoveCursor moves the cursor, clamps it to the buffer and scrolls.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	lineCount := e.buffer.LineCount()

	targetLine := e.Cursor.Line + deltaLine
	targetCol := e.Cursor.Col + deltaCol

	if targetLine >= lineCount {
		targetLine = lineCount - 1
	}
	if targetLine < 0 {
		targetLine = 0
	}

	if targetCol < 0 {
		targetCol = 0
	}
	if lineCount > 0 {
		lineBytes, err := e.buffer.Line(targetLine)
		if err != nil {
			targetCol = 0
		} else if maxCol := utf8.RuneCount(lineBytes); targetCol > maxCol {
			targetCol = maxCol
		}
	} else {
		targetCol = 0
	}

	e.Cursor.Line = targetLine
	e.Cursor.Col = targetCol
	e.ScrollToCursor()
}

// GotoLine moves the cursor to the start of a 1-based line.
func (e *Editor) GotoLine(line int) {
	e.Cursor.Line = line - 1
	e.Cursor.Col = 0
	e.MoveCursor(0, 0)
}

// calculateVisualColumn computes the screen width of the first runeIndex
// runes of line.
func calculateVisualColumn(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	visualWidth := 0
	currentRuneIndex := 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() {
		if currentRuneIndex >= runeIndex {
			break
		}
		visualWidth += gr.Width()
		currentRuneIndex += len(gr.Runes())
	}
	return visualWidth
}

// ScrollToCursor adjusts the viewport so the cursor stays ScrollOff lines
// away from the edges.
func (e *Editor) ScrollToCursor() {
	if e.viewHeight <= 0 || e.viewWidth <= 0 {
		return
	}

	scrollOff := e.ScrollOff
	if scrollOff*2 >= e.viewHeight {
		scrollOff = (e.viewHeight - 1) / 2
	}

	if e.Cursor.Line < e.ViewportY+scrollOff {
		e.ViewportY = e.Cursor.Line - scrollOff
	} else if e.Cursor.Line >= e.ViewportY+e.viewHeight-scrollOff {
		e.ViewportY = e.Cursor.Line - e.viewHeight + 1 + scrollOff
	}

	lineBytes, err := e.buffer.Line(e.Cursor.Line)
	cursorVisualCol := 0
	if err == nil {
		cursorVisualCol = calculateVisualColumn(lineBytes, e.Cursor.Col)
	} else if e.buffer.LineCount() > 0 {
		logger.Debugf("ScrollToCursor: Error getting line %d: %v", e.Cursor.Line, err)
	}

	if cursorVisualCol < e.ViewportX {
		e.ViewportX = cursorVisualCol
	} else if cursorVisualCol >= e.ViewportX+e.viewWidth {
		e.ViewportX = cursorVisualCol - e.viewWidth + 1
	}

	if e.ViewportY < 0 {
		e.ViewportY = 0
	}
	if e.ViewportX < 0 {
		e.ViewportX = 0
	}
}

// PageMove moves the cursor and viewport by whole pages.
func (e *Editor) PageMove(deltaPages int) {
	if e.viewHeight <= 0 {
		return
	}
	e.MoveCursor(e.viewHeight*deltaPages, 0)

	e.ViewportY += e.viewHeight * deltaPages
	maxViewportY := e.buffer.LineCount() - e.viewHeight
	if maxViewportY < 0 {
		maxViewportY = 0
	}
	if e.ViewportY > maxViewportY {
		e.ViewportY = maxViewportY
	}
	if e.ViewportY < 0 {
		e.ViewportY = 0
	}
	e.ScrollToCursor()
}
