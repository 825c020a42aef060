package plugin

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tidebug/internal/breakpoints"
	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/event"
)

// StubAPI is a DebuggerAPI backed by a real store and event manager, for
// exercising plugins and commands without a terminal.
type StubAPI struct {
	Events   *event.Manager
	Debugger *debugger.Store
	Config   map[string]map[string]interface{}
	Selected *breakpoints.Breakpoint

	mu       sync.Mutex
	session  string
	commands map[string]CommandFunc
	messages []string
	quits    int
}

// NewStubAPI wraps a store seeded with initial.
func NewStubAPI(initial debugger.State) *StubAPI {
	events := event.NewManager()
	return &StubAPI{
		Events:   events,
		Debugger: debugger.NewStore(initial, events),
		commands: make(map[string]CommandFunc),
	}
}

func (s *StubAPI) State() debugger.State { return s.Debugger.State() }
func (s *StubAPI) Store() *debugger.Store { return s.Debugger }
func (s *StubAPI) CurrentMode() breakpoints.PauseMode {
	return breakpoints.Project(s.State()).CurrentMode
}

func (s *StubAPI) SelectedBreakpoint() (breakpoints.Breakpoint, bool) {
	if s.Selected == nil {
		return breakpoints.Breakpoint{}, false
	}
	return *s.Selected, true
}

func (s *StubAPI) SessionPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *StubAPI) SetSessionPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = path
}

func (s *StubAPI) DispatchEvent(eventType event.Type, data interface{}) {
	s.Events.Dispatch(eventType, data)
}

func (s *StubAPI) SubscribeEvent(eventType event.Type, handler event.Handler) event.Subscription {
	return s.Events.Subscribe(eventType, handler)
}

func (s *StubAPI) UnsubscribeEvent(sub event.Subscription) { s.Events.Unsubscribe(sub) }

func (s *StubAPI) RegisterCommand(name string, cmdFunc CommandFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.commands[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	s.commands[name] = cmdFunc
	return nil
}

// Run executes a registered command.
func (s *StubAPI) Run(name string, args ...string) error {
	s.mu.Lock()
	fn, ok := s.commands[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	return fn(args)
}

func (s *StubAPI) SetStatusMessage(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, fmt.Sprintf(format, args...))
}

// LastMessage returns the most recent status message.
func (s *StubAPI) LastMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1]
}

func (s *StubAPI) Quit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quits++
}

// Quits returns how often Quit was called.
func (s *StubAPI) Quits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quits
}

func (s *StubAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := s.Config[pluginName][key]
	return v, ok
}
