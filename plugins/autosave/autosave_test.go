package autosave

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/plugin"
	"github.com/bethropolis/tidebug/internal/types"
)

func newAutoSave(t *testing.T, cfg map[string]interface{}) (*AutoSave, *plugin.StubAPI, string) {
	t.Helper()
	api := plugin.NewStubAPI(debugger.NewState([]debugger.Source{{ID: "a", URL: "http://x/a.js"}}, nil))
	api.Config = map[string]map[string]interface{}{"autosave": cfg}
	path := filepath.Join(t.TempDir(), "session.toml")
	api.SetSessionPath(path)

	p := New().(*AutoSave)
	if err := p.Initialize(api); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return p, api, path
}

func waitForFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("%s was never written", path)
}

func TestAutoSave_SavesAfterChange(t *testing.T) {
	p, api, path := newAutoSave(t, map[string]interface{}{"enabled": true, "delay": "10ms"})
	defer p.Shutdown()

	if err := api.Store().AddBreakpoint(types.Location{SourceID: "a", Line: 3}, nil); err != nil {
		t.Fatal(err)
	}
	waitForFile(t, path)

	st, err := debugger.LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if st.BreakpointCount() != 1 {
		t.Errorf("saved %d breakpoints, want 1", st.BreakpointCount())
	}
}

func TestAutoSave_DisabledByDefault(t *testing.T) {
	p, api, path := newAutoSave(t, nil)
	if p.Enabled() {
		t.Fatal("autosave should default to disabled")
	}
	_ = api.Store().AddBreakpoint(types.Location{SourceID: "a", Line: 3}, nil)
	p.Shutdown()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session written while disabled (err=%v)", err)
	}
}

func TestAutoSave_ShutdownFlushesPending(t *testing.T) {
	p, api, path := newAutoSave(t, map[string]interface{}{"enabled": true, "delay": "1h"})
	_ = api.Store().AddBreakpoint(types.Location{SourceID: "a", Line: 3}, nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("save should still be pending")
	}
	p.Shutdown()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("pending save not flushed: %v", err)
	}
}

func TestAutoSave_ToggleCommand(t *testing.T) {
	p, api, _ := newAutoSave(t, map[string]interface{}{"enabled": "yes", "delay": "-1s"})
	defer p.Shutdown()
	if p.Enabled() || p.delay != defaultDelay {
		t.Fatalf("invalid config should keep defaults, got enabled=%v delay=%v", p.Enabled(), p.delay)
	}

	tests := []struct {
		arg     string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"off", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			err := api.Run("autosave", tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if p.Enabled() != tt.want {
				t.Errorf("Enabled() = %v, want %v", p.Enabled(), tt.want)
			}
		})
	}
}
