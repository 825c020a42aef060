package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/tidebug/internal/breakpoints"
	"github.com/bethropolis/tidebug/internal/core"
	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/event"
	"github.com/bethropolis/tidebug/internal/input"
	"github.com/bethropolis/tidebug/internal/linehighlight"
	"github.com/bethropolis/tidebug/internal/types"
	"github.com/gdamore/tcell/v2"
)

type harness struct {
	app    *App
	store  *debugger.Store
	events *event.Manager
	dir    string

	attached []string
	detached []string
}

func writeSource(t *testing.T, dir, name string, lines int) string {
	t.Helper()
	var sb strings.Builder
	for i := 1; i <= lines; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	sources := []debugger.Source{
		{ID: "a", URL: "http://example.com/a.js", Path: writeSource(t, dir, "a.txt", 40)},
		{ID: "b", URL: "http://example.com/b.js", Path: writeSource(t, dir, "b.txt", 40)},
	}
	bps := []debugger.Breakpoint{
		{Location: types.Location{SourceID: "a", Line: 2}},
		{Location: types.Location{SourceID: "b", Line: 7}},
	}

	h := &harness{events: event.NewManager(), dir: dir}
	h.store = debugger.NewStore(debugger.NewState(sources, bps), h.events)
	h.events.Subscribe(event.TypeEditorAttached, func(e event.Event) bool {
		h.attached = append(h.attached, e.Data.(event.EditorAttachedData).SourceID)
		return false
	})
	h.events.Subscribe(event.TypeEditorDetached, func(e event.Event) bool {
		h.detached = append(h.detached, e.Data.(event.EditorDetachedData).SourceID)
		return false
	})

	sim := tcell.NewSimulationScreen("UTF-8")
	a, err := NewApp(Options{
		Store:           h.store,
		Events:          h.events,
		Screen:          sim,
		StrictHighlight: true,
	})
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	sim.SetSize(100, 30)
	t.Cleanup(a.Close)
	h.app = a
	return h
}

func (h *harness) exec(t *testing.T, line string) {
	t.Helper()
	if err := h.app.ModeHandler().ExecuteCommand(line); err != nil {
		t.Fatalf(":%s failed: %v", line, err)
	}
}

func highlighted(a *App) []int {
	ed := a.Editor()
	if ed == nil {
		return nil
	}
	var lines []int
	for l := 0; l < ed.GetBuffer().LineCount(); l++ {
		for _, class := range ed.LineClasses(l) {
			if class == linehighlight.ClassName {
				lines = append(lines, l)
			}
		}
	}
	return lines
}

// classed returns the 0-based lines of ed that carry any class.
func classed(ed *core.Editor) []int {
	var lines []int
	for l := 0; l < ed.GetBuffer().LineCount(); l++ {
		if len(ed.LineClasses(l)) > 0 {
			lines = append(lines, l)
		}
	}
	return lines
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApp_HighlightFollowsStore(t *testing.T) {
	h := newHarness(t)
	if h.app.Editor() != nil {
		t.Fatal("no source should be shown before a selection")
	}

	h.exec(t, "open a 10")
	if ed := h.app.Editor(); ed == nil || ed.SourceID() != "a" {
		t.Fatalf("editor = %v, want source a", ed)
	}

	steps := []struct {
		cmd  string
		want []int
	}{
		{"highlight 5 8", []int{4, 5, 6}},
		{"highlight 6 7", []int{5}},
		{"highlight 6 7", []int{5}},
		{"nohighlight", nil},
		{"highlight 3", []int{2}},
	}
	for _, step := range steps {
		t.Run(step.cmd, func(t *testing.T) {
			h.exec(t, step.cmd)
			if got := highlighted(h.app); !equalInts(got, step.want) {
				t.Errorf("highlighted lines = %v, want %v", got, step.want)
			}
		})
	}
}

func TestApp_EditorSwapMovesHighlight(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "open a")
	h.exec(t, "highlight 5 8")
	first := h.app.Editor()

	h.exec(t, "open b 20")
	second := h.app.Editor()
	if second == first || second.SourceID() != "b" {
		t.Fatalf("editor did not switch to b")
	}
	if lines := classed(first); len(lines) != 0 {
		t.Errorf("old editor still decorated: %v", lines)
	}
	if got := highlighted(h.app); !equalInts(got, []int{4, 5, 6}) {
		t.Errorf("new editor highlight = %v", got)
	}
	if got := second.GetCursor().Line; got != 19 {
		t.Errorf("cursor line = %d, want 19", got)
	}

	if strings.Join(h.attached, ",") != "a,b" || strings.Join(h.detached, ",") != "a" {
		t.Errorf("attached=%v detached=%v", h.attached, h.detached)
	}

	h.app.Close()
	if lines := classed(second); len(lines) != 0 {
		t.Errorf("highlight left after close: %v", lines)
	}
	if strings.Join(h.detached, ",") != "a,b" {
		t.Errorf("detached = %v", h.detached)
	}
}

func TestApp_PausedFrameShowsSource(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "pause b:7")

	ed := h.app.Editor()
	if ed == nil || ed.SourceID() != "b" {
		t.Fatalf("paused source not shown")
	}
	v := h.app.View()
	if !v.Breakpoints[1].IsCurrentlyPaused || v.Breakpoints[0].IsCurrentlyPaused {
		t.Errorf("paused flags wrong: %+v", v.Breakpoints)
	}
	if text, _ := h.app.StatusBar().Text(); !strings.Contains(text, "PAUSED at b.js: 7") {
		t.Errorf("status = %q", text)
	}

	h.exec(t, "resume")
	if h.app.View().Breakpoints[1].IsCurrentlyPaused {
		t.Error("still paused after resume")
	}
}

func TestApp_NormalActions(t *testing.T) {
	h := newHarness(t)
	act := func(a input.Action, r rune) {
		h.app.handleNormalAction(input.ActionEvent{Action: a, Rune: r})
	}

	act(input.ActionSwitchPane, 0)
	if h.app.Focus() != PaneBreakpoints {
		t.Fatal("focus did not move to the breakpoint pane")
	}
	if h.app.Selected() != 0 {
		t.Fatalf("selected = %d, want 0", h.app.Selected())
	}
	act(input.ActionMoveDown, 0)
	act(input.ActionMoveDown, 0)
	if h.app.Selected() != 1 {
		t.Fatalf("selected = %d, want 1 (clamped)", h.app.Selected())
	}

	act(input.ActionToggleBreakpoint, 0)
	if bp, _ := h.store.State().Breakpoint(types.Location{SourceID: "b", Line: 7}); !bp.Disabled {
		t.Error("toggle did not disable b:7")
	}
	act(input.ActionToggleBreakpoint, 0)
	if bp, _ := h.store.State().Breakpoint(types.Location{SourceID: "b", Line: 7}); bp.Disabled {
		t.Error("second toggle did not enable b:7")
	}

	act(input.ActionYankLocation, 0)
	if got := h.app.clipboard.Get(); got != "http://example.com/b.js:7" {
		t.Errorf("yanked %q", got)
	}

	act(input.ActionSelectBreakpoint, 0)
	if ed := h.app.Editor(); ed == nil || ed.SourceID() != "b" || ed.GetCursor().Line != 6 {
		t.Error("select did not navigate to b:7")
	}

	act(input.ActionCycleExceptionMode, 0)
	if got := h.app.View().CurrentMode.Mode; got != breakpoints.ModeNoCaught {
		t.Errorf("mode after cycle = %s", got)
	}
	act(input.ActionSetExceptionMode, '3')
	st := h.store.State()
	if !st.ShouldPauseOnExceptions || st.ShouldIgnoreCaughtExceptions {
		t.Errorf("flags after '3' = %v,%v", st.ShouldPauseOnExceptions, st.ShouldIgnoreCaughtExceptions)
	}

	act(input.ActionRemoveBreakpoint, 0)
	if n := len(h.app.View().Breakpoints); n != 1 {
		t.Fatalf("breakpoints after remove = %d", n)
	}
	if h.app.Selected() != 0 {
		t.Errorf("selection not clamped after remove: %d", h.app.Selected())
	}
}

func TestApp_SelectionFollowsBreakpoint(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "break b:20")
	h.app.handleNormalAction(input.ActionEvent{Action: input.ActionSwitchPane})
	h.app.handleNormalAction(input.ActionEvent{Action: input.ActionMoveDown})
	if h.app.Selected() != 1 {
		t.Fatalf("selected = %d, want 1", h.app.Selected())
	}

	h.exec(t, "delete a:2")
	v := h.app.View()
	if got := h.app.Selected(); got != 0 || v.Breakpoints[got].LocationID != "b:7" {
		t.Errorf("selection moved off b:7: row %d", got)
	}

	// Removing the selected row keeps the index, clamped.
	h.exec(t, "delete b:7")
	v = h.app.View()
	if got := h.app.Selected(); got != 0 || v.Breakpoints[got].LocationID != "b:20" {
		t.Errorf("selection after removing it = row %d", got)
	}
}

func TestApp_AddBreakpointAtCursor(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "open a 12")
	h.app.handleNormalAction(input.ActionEvent{Action: input.ActionAddBreakpoint})

	if _, ok := h.store.State().Breakpoint(types.Location{SourceID: "a", Line: 12}); !ok {
		t.Fatal("breakpoint not added at cursor line")
	}
	// Space in the source view toggles the breakpoint under the cursor.
	h.app.handleNormalAction(input.ActionEvent{Action: input.ActionToggleBreakpoint})
	if bp, _ := h.store.State().Breakpoint(types.Location{SourceID: "a", Line: 12}); !bp.Disabled {
		t.Error("toggle at cursor did not disable")
	}
	if h.app.markers[11] == 0 {
		t.Error("no gutter marker for the new breakpoint")
	}
}

func TestApp_Commands(t *testing.T) {
	h := newHarness(t)

	h.exec(t, "break a:30 x > 1")
	bp, ok := h.store.State().Breakpoint(types.Location{SourceID: "a", Line: 30})
	if !ok || bp.Condition == nil || *bp.Condition != "x > 1" {
		t.Fatalf("conditional breakpoint not set: %+v", bp)
	}
	h.exec(t, "disable a:30")
	h.exec(t, "delete a:2")
	h.exec(t, "exceptions all")
	if got := h.app.View().CurrentMode.Mode; got != breakpoints.ModeWithCaught {
		t.Errorf("mode = %s", got)
	}

	errCases := []string{
		"break",
		"delete a:99",
		"exceptions sometimes",
		"highlight x",
		"open a zero",
		"theme nope",
		"write",
		"bogus",
	}
	for _, line := range errCases {
		t.Run(line, func(t *testing.T) {
			if err := h.app.ModeHandler().ExecuteCommand(line); err == nil {
				t.Errorf(":%s succeeded, want error", line)
			}
		})
	}

	path := filepath.Join(h.dir, "saved.toml")
	h.exec(t, "write "+path)
	st, err := debugger.LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if st.BreakpointCount() != 2 || !st.ShouldPauseOnExceptions {
		t.Errorf("saved session = %d breakpoints, pause=%v", st.BreakpointCount(), st.ShouldPauseOnExceptions)
	}
}

func TestApp_Draw(t *testing.T) {
	h := newHarness(t)
	h.exec(t, "open a 5")
	h.app.draw()

	screen := h.app.tuiManager.GetScreen()
	w, hgt := screen.Size()
	var all strings.Builder
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			all.WriteRune(r)
		}
		all.WriteByte('\n')
	}
	out := all.String()
	for _, want := range []string{"Exceptions - Pausing on: None", "a.js: 2", "b.js: 7", "line 5", "NORMAL"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen missing %q", want)
		}
	}
}

func TestApp_QuitCommand(t *testing.T) {
	h := newHarness(t)
	quits := 0
	h.events.Subscribe(event.TypeAppQuit, func(event.Event) bool {
		quits++
		return false
	})
	h.exec(t, "q")
	h.exec(t, "quit")
	select {
	case <-h.app.quit:
	default:
		t.Fatal("quit channel not closed")
	}
	if quits != 1 {
		t.Errorf("AppQuit dispatched %d times", quits)
	}
}
