// internal/core/editor.go
package core

import (
	"sort"
	"sync"

	"github.com/bethropolis/tidebug/internal/buffer"
	"github.com/bethropolis/tidebug/internal/config"
	hl "github.com/bethropolis/tidebug/internal/highlighter"
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/types"
)

// Editor is a read-only source view: a buffer, a cursor line, a viewport
// and per-line classes painted by decorators such as the line highlighter.
type Editor struct {
	buffer   buffer.Buffer
	sourceID string

	Cursor     types.Position
	ViewportY  int // Top visible line index (0-based)
	ViewportX  int // Leftmost visible visual column
	viewWidth  int
	viewHeight int
	ScrollOff  int // Number of lines to keep visible above/below cursor

	// line -> scope -> classes
	classes map[int]map[string]map[string]struct{}

	opDepth  int
	opDirty  bool
	onChange func()

	pendingAlign int // 1-based line to align once the view has a size

	syntaxHighlights hl.HighlightResult
	highlightMutex   sync.RWMutex
}

// NewEditor creates a source view over buf for the given source.
func NewEditor(sourceID string, buf buffer.Buffer) *Editor {
	return &Editor{
		buffer:           buf,
		sourceID:         sourceID,
		ScrollOff:        config.DefaultScrollOff,
		classes:          make(map[int]map[string]map[string]struct{}),
		syntaxHighlights: make(hl.HighlightResult),
	}
}

// SourceID returns the debugger source this view shows.
func (e *Editor) SourceID() string { return e.sourceID }

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer { return e.buffer }

// OnChange registers fn to run whenever the view's decorations change.
func (e *Editor) OnChange(fn func()) { e.onChange = fn }

// changed notifies immediately, or once at the end of the outermost Operation.
func (e *Editor) changed() {
	if e.opDepth > 0 {
		e.opDirty = true
		return
	}
	if e.onChange != nil {
		e.onChange()
	}
}

// Operation runs fn with all decoration changes reported as one change.
// Operations nest; only the outermost one notifies.
func (e *Editor) Operation(fn func()) {
	e.opDepth++
	defer func() {
		e.opDepth--
		if e.opDepth == 0 && e.opDirty {
			e.opDirty = false
			e.changed()
		}
	}()
	fn()
}

// AddLineClass adds class to the 0-based line under scope.
func (e *Editor) AddLineClass(line int, where, class string) {
	if line < 0 || line >= e.buffer.LineCount() {
		logger.DebugTagf("editor", "AddLineClass: line %d out of range", line)
		return
	}
	scopes, ok := e.classes[line]
	if !ok {
		scopes = make(map[string]map[string]struct{})
		e.classes[line] = scopes
	}
	set, ok := scopes[where]
	if !ok {
		set = make(map[string]struct{})
		scopes[where] = set
	}
	if _, exists := set[class]; exists {
		return
	}
	set[class] = struct{}{}
	e.changed()
}

// RemoveLineClass removes class from the 0-based line under scope.
func (e *Editor) RemoveLineClass(line int, where, class string) {
	set, ok := e.classes[line][where]
	if !ok {
		return
	}
	if _, exists := set[class]; !exists {
		return
	}
	delete(set, class)
	if len(set) == 0 {
		delete(e.classes[line], where)
	}
	if len(e.classes[line]) == 0 {
		delete(e.classes, line)
	}
	e.changed()
}

// LineClasses returns the sorted classes on the 0-based line across scopes.
func (e *Editor) LineClasses(line int) []string {
	scopes := e.classes[line]
	if len(scopes) == 0 {
		return nil
	}
	var out []string
	for _, set := range scopes {
		for class := range set {
			out = append(out, class)
		}
	}
	sort.Strings(out)
	return out
}

// AlignLine scrolls so the 1-based line sits in the middle of the view.
// Before the view has a size the request is kept and applied by SetViewSize.
func (e *Editor) AlignLine(line int) {
	if line < 1 {
		return
	}
	if e.viewHeight <= 0 {
		e.pendingAlign = line
		return
	}
	e.pendingAlign = 0

	top := (line - 1) - e.viewHeight/2
	maxTop := e.buffer.LineCount() - e.viewHeight
	if top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	e.ViewportY = top
	e.changed()
}

// SetViewSize updates the text area dimensions.
// Setting the same size again leaves the viewport alone.
func (e *Editor) SetViewSize(width, height int) {
	if height < 0 {
		height = 0
	}
	if width == e.viewWidth && height == e.viewHeight && e.pendingAlign == 0 {
		return
	}
	e.viewWidth = width
	e.viewHeight = height

	if e.pendingAlign > 0 && e.viewHeight > 0 {
		e.AlignLine(e.pendingAlign)
		return
	}
	e.ScrollToCursor()
}

// ViewSize returns the cached text area dimensions.
func (e *Editor) ViewSize() (int, int) { return e.viewWidth, e.viewHeight }

// GetViewport returns the top line and left column.
func (e *Editor) GetViewport() (int, int) { return e.ViewportY, e.ViewportX }

// GetCursor returns the current cursor position.
func (e *Editor) GetCursor() types.Position { return e.Cursor }

// GetSyntaxHighlightsForLine returns the syntax styles for a 0-based line.
func (e *Editor) GetSyntaxHighlightsForLine(lineNum int) []types.StyledRange {
	e.highlightMutex.RLock()
	defer e.highlightMutex.RUnlock()
	return e.syntaxHighlights[lineNum]
}

// UpdateSyntaxHighlights replaces the syntax styles. Safe to call from the
// background highlighting task.
func (e *Editor) UpdateSyntaxHighlights(result hl.HighlightResult) {
	e.highlightMutex.Lock()
	defer e.highlightMutex.Unlock()
	if result == nil {
		result = make(hl.HighlightResult)
	}
	e.syntaxHighlights = result
}
