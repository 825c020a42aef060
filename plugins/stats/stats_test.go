package stats

import (
	"testing"

	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/plugin"
	"github.com/bethropolis/tidebug/internal/types"
)

func TestSummarize(t *testing.T) {
	cond := "x > 1"
	st := debugger.NewState(
		[]debugger.Source{{ID: "a", URL: "http://x/a.js"}},
		[]debugger.Breakpoint{
			{Location: types.Location{SourceID: "a", Line: 1}},
			{Location: types.Location{SourceID: "a", Line: 2}, Disabled: true},
			{Location: types.Location{SourceID: "a", Line: 3}, Condition: &cond},
			{Location: types.Location{SourceID: "gone", Line: 4}},
		},
	)

	got := Summarize(st)
	want := Summary{Total: 4, Shown: 3, Disabled: 1, Conditional: 1, Sources: 1}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
	if s := got.String(); s != "Breakpoints: 4 (3 shown, 1 disabled, 1 conditional), Sources: 1, running" {
		t.Errorf("String() = %q", s)
	}
}

func TestStatsCommand(t *testing.T) {
	api := plugin.NewStubAPI(debugger.NewState([]debugger.Source{{ID: "a", URL: "http://x/a.js"}}, nil))
	p := New()
	if err := p.Initialize(api); err != nil {
		t.Fatal(err)
	}
	if err := api.Store().Pause(types.Location{SourceID: "a", Line: 1}, false); err != nil {
		t.Fatal(err)
	}
	if err := api.Run("stats"); err != nil {
		t.Fatal(err)
	}
	if want := "Breakpoints: 0 (0 shown, 0 disabled, 0 conditional), Sources: 1, paused"; api.LastMessage() != want {
		t.Errorf("message = %q, want %q", api.LastMessage(), want)
	}
}
