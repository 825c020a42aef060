package breakpoints

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/types"
)

// recordingCommands records engine commands instead of applying them.
type recordingCommands struct {
	calls []string
	err   error
}

func (r *recordingCommands) EnableBreakpoint(loc types.Location) error {
	r.calls = append(r.calls, "enable "+loc.ID())
	return r.err
}

func (r *recordingCommands) DisableBreakpoint(loc types.Location) error {
	r.calls = append(r.calls, "disable "+loc.ID())
	return r.err
}

func (r *recordingCommands) RemoveBreakpoint(loc types.Location) error {
	r.calls = append(r.calls, "remove "+loc.ID())
	return r.err
}

func (r *recordingCommands) SelectSource(sourceID string, line int) error {
	r.calls = append(r.calls, fmt.Sprintf("select %s %d", sourceID, line))
	return r.err
}

func (r *recordingCommands) PauseOnExceptions(shouldPause, shouldIgnoreCaught bool) error {
	r.calls = append(r.calls, fmt.Sprintf("exceptions %v %v", shouldPause, shouldIgnoreCaught))
	return r.err
}

func display(bp debugger.Breakpoint) Breakpoint {
	return Breakpoint{Breakpoint: bp, LocationID: bp.Location.ID()}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name string
		bp   debugger.Breakpoint
		want []string
	}{
		{"enabled disables", debugger.Breakpoint{Location: at("a.js", 1)}, []string{"disable a.js:1"}},
		{"disabled enables", debugger.Breakpoint{Location: at("a.js", 1), Disabled: true}, []string{"enable a.js:1"}},
		{"loading ignored", debugger.Breakpoint{Location: at("a.js", 1), Loading: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := &recordingCommands{}
			if err := Toggle(cmds, display(tt.bp)); err != nil {
				t.Fatalf("Toggle: %v", err)
			}
			if fmt.Sprint(cmds.calls) != fmt.Sprint(tt.want) {
				t.Errorf("calls = %v, want %v", cmds.calls, tt.want)
			}
		})
	}
}

func TestSelectAndRemove(t *testing.T) {
	cmds := &recordingCommands{}
	bp := display(debugger.Breakpoint{Location: types.Location{SourceID: "a.js", Line: 7, Column: 2}})

	_ = Select(cmds, bp)
	_ = Remove(cmds, bp)

	want := []string{"select a.js 7", "remove a.js:7:2"}
	if fmt.Sprint(cmds.calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v, want %v", cmds.calls, want)
	}
}

func TestSetPauseMode_IssuesModeFlags(t *testing.T) {
	for _, m := range Modes() {
		t.Run(string(m.Mode), func(t *testing.T) {
			cmds := &recordingCommands{}
			if err := SetPauseMode(cmds, m); err != nil {
				t.Fatalf("SetPauseMode: %v", err)
			}
			want := fmt.Sprintf("exceptions %v %v", m.ShouldPause, m.ShouldIgnoreCaught)
			if len(cmds.calls) != 1 || cmds.calls[0] != want {
				t.Errorf("calls = %v, want [%s]", cmds.calls, want)
			}
		})
	}
}

func TestActions_PassEngineErrorsThrough(t *testing.T) {
	boom := errors.New("engine down")
	cmds := &recordingCommands{err: boom}

	if err := Remove(cmds, display(debugger.Breakpoint{Location: at("a.js", 1)})); !errors.Is(err, boom) {
		t.Errorf("expected engine error, got %v", err)
	}
}

func TestActions_AgainstStore(t *testing.T) {
	store := debugger.NewStore(sampleState(), nil)

	v := Project(store.State())
	if err := Toggle(store, v.Breakpoints[1]); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	// The pane's view only changes on the next projection.
	if !v.Breakpoints[1].Disabled {
		t.Error("existing view must not be mutated")
	}
	v = Project(store.State())
	if v.Breakpoints[1].Disabled {
		t.Error("expected line 20 enabled after toggle")
	}

	if err := SetPauseMode(store, v.AllModes[1]); err != nil {
		t.Fatalf("SetPauseMode: %v", err)
	}
	if got := Project(store.State()).CurrentMode.Mode; got != ModeNoCaught {
		t.Errorf("expected no-caught after transition, got %s", got)
	}
}
