// internal/app/debugger_api.go
package app

import (
	"github.com/bethropolis/tidebug/internal/breakpoints"
	"github.com/bethropolis/tidebug/internal/commands"
	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/event"
	"github.com/bethropolis/tidebug/internal/plugin"
	"github.com/bethropolis/tidebug/internal/theme"
)

var _ plugin.DebuggerAPI = (*appDebuggerAPI)(nil)
var _ commands.ThemeAPI = (*appDebuggerAPI)(nil)

// appDebuggerAPI is the concrete DebuggerAPI handed to commands and plugins.
type appDebuggerAPI struct {
	app *App
}

func newDebuggerAPI(app *App) *appDebuggerAPI {
	return &appDebuggerAPI{app: app}
}

// --- Debugger state ---

func (api *appDebuggerAPI) State() debugger.State { return api.app.store.State() }

func (api *appDebuggerAPI) Store() *debugger.Store { return api.app.store }

func (api *appDebuggerAPI) SelectedBreakpoint() (breakpoints.Breakpoint, bool) {
	var (
		bp breakpoints.Breakpoint
		ok bool
	)
	_ = api.app.withSelected(func(selected breakpoints.Breakpoint) error {
		bp, ok = selected, true
		return nil
	})
	return bp, ok
}

func (api *appDebuggerAPI) CurrentMode() breakpoints.PauseMode {
	return api.app.View().CurrentMode
}

// --- Session file ---

func (api *appDebuggerAPI) SessionPath() string {
	api.app.mu.Lock()
	defer api.app.mu.Unlock()
	return api.app.sessionPath
}

func (api *appDebuggerAPI) SetSessionPath(path string) {
	api.app.mu.Lock()
	defer api.app.mu.Unlock()
	api.app.sessionPath = path
}

// --- Events ---

func (api *appDebuggerAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appDebuggerAPI) SubscribeEvent(eventType event.Type, handler event.Handler) event.Subscription {
	return api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appDebuggerAPI) UnsubscribeEvent(sub event.Subscription) {
	api.app.eventManager.Unsubscribe(sub)
}

// --- Commands, status, lifecycle ---

func (api *appDebuggerAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

func (api *appDebuggerAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

func (api *appDebuggerAPI) Quit() { api.app.modeHandler.Quit() }

func (api *appDebuggerAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}

// --- Themes ---

func (api *appDebuggerAPI) SetTheme(name string) error {
	return api.app.themeManager.SetTheme(name)
}

func (api *appDebuggerAPI) GetTheme() *theme.Theme { return api.app.themeManager.Current() }

func (api *appDebuggerAPI) ListThemes() []string { return api.app.themeManager.ListThemes() }
