// plugins/stats/stats.go
package stats

import (
	"fmt"

	"github.com/bethropolis/tidebug/internal/breakpoints"
	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/plugin"
)

// Ensure Stats implements plugin.Plugin
var _ plugin.Plugin = (*Stats)(nil)

// Stats adds a ":stats" command summarizing the breakpoint list.
type Stats struct {
	api plugin.DebuggerAPI
}

// New creates a new instance of the Stats plugin.
func New() plugin.Plugin {
	return &Stats{}
}

// Name returns the unique name of the plugin.
func (p *Stats) Name() string {
	return "stats"
}

// Initialize registers the :stats command.
func (p *Stats) Initialize(api plugin.DebuggerAPI) error {
	p.api = api
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed).
func (p *Stats) Shutdown() error {
	return nil
}

// Summary is the breakpoint breakdown shown by :stats.
type Summary struct {
	Total       int
	Shown       int // resolved to a known source
	Disabled    int
	Conditional int
	Sources     int
	Paused      bool
}

// Summarize counts the breakpoints of st.
func Summarize(st debugger.State) Summary {
	s := Summary{
		Total:   st.BreakpointCount(),
		Sources: len(st.Sources()),
		Paused:  st.IsPaused(),
	}
	for _, bp := range breakpoints.Project(st).Breakpoints {
		s.Shown++
		if bp.Disabled {
			s.Disabled++
		}
		if bp.IsConditional() {
			s.Conditional++
		}
	}
	return s
}

// String renders the summary for the status bar.
func (s Summary) String() string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	return fmt.Sprintf("Breakpoints: %d (%d shown, %d disabled, %d conditional), Sources: %d, %s",
		s.Total, s.Shown, s.Disabled, s.Conditional, s.Sources, state)
}

func (p *Stats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("stats plugin not initialized with API")
	}
	p.api.SetStatusMessage("%s", Summarize(p.api.State()))
	return nil
}
