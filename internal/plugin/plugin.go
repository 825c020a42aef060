// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/tidebug/internal/breakpoints"
	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/event"
)

// CommandFunc defines the signature for ':' commands registered by plugins.
type CommandFunc func(args []string) error

// DebuggerAPI is what plugins and built-in commands may use. It keeps them
// away from the UI internals.
type DebuggerAPI interface {
	// --- Debugger state ---
	State() debugger.State
	Store() *debugger.Store
	// SelectedBreakpoint returns the breakpoint under the pane selection.
	SelectedBreakpoint() (breakpoints.Breakpoint, bool)
	CurrentMode() breakpoints.PauseMode

	// --- Session file ---
	SessionPath() string
	SetSessionPath(path string)

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler) event.Subscription
	UnsubscribeEvent(sub event.Subscription)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Lifecycle ---
	Quit()

	// --- Configuration ---
	// GetPluginConfigValue reads [plugins.<name>] keys from the config file.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once at startup to subscribe to events and
	// register commands.
	Initialize(api DebuggerAPI) error

	// Shutdown is called once when the application is closing.
	Shutdown() error
}
