package autosave

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tidebug/internal/debugger"
	"github.com/bethropolis/tidebug/internal/event"
	"github.com/bethropolis/tidebug/internal/logger"
	"github.com/bethropolis/tidebug/internal/plugin"
	"github.com/bethropolis/tidebug/internal/utils"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled = false
	defaultDelay   = 2 * time.Second
)

// AutoSave writes the session file shortly after the debugger state changes.
// Bursts of changes are coalesced into one write.
type AutoSave struct {
	api plugin.DebuggerAPI

	mutex   sync.RWMutex // Protects the config fields below
	enabled bool
	delay   time.Duration

	debouncer  utils.Debouncer
	sub        event.Subscription
	subscribed bool
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled: defaultEnabled,
		delay:   defaultDelay,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads [plugins.autosave] and subscribes to state changes.
func (p *AutoSave) Initialize(api plugin.DebuggerAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}
	if delayVal, ok := api.GetPluginConfigValue(pluginName, "delay"); ok {
		if strVal, isStr := delayVal.(string); isStr {
			parsed, err := time.ParseDuration(strVal)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'delay' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.delay)
			case parsed <= 0:
				logger.Warnf("%s: 'delay' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.delay)
			default:
				p.delay = parsed
			}
		} else {
			logger.Warnf("%s: Invalid type for 'delay' config (%T), using default (%v)", pluginName, delayVal, p.delay)
		}
	}
	enabled, delay := p.enabled, p.delay
	p.mutex.Unlock()

	p.sub = api.SubscribeEvent(event.TypeStateChanged, p.handleStateChanged)
	p.subscribed = true

	if err := api.RegisterCommand("autosave", p.executeToggle); err != nil {
		return fmt.Errorf("failed to register 'autosave' command: %w", err)
	}
	logger.Infof("%s initialized. Enabled: %v, Delay: %v", pluginName, enabled, delay)
	return nil
}

// Shutdown unsubscribes and writes any save that is still pending.
func (p *AutoSave) Shutdown() error {
	if p.subscribed {
		p.api.UnsubscribeEvent(p.sub)
		p.subscribed = false
	}
	if pending := p.debouncer.Stop(); pending != nil {
		logger.Debugf("%s: Flushing pending save on shutdown.", p.Name())
		pending()
	}
	return nil
}

// Enabled reports whether state changes trigger saves.
func (p *AutoSave) Enabled() bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.enabled
}

func (p *AutoSave) handleStateChanged(e event.Event) bool {
	p.mutex.RLock()
	enabled, delay := p.enabled, p.delay
	p.mutex.RUnlock()

	if enabled {
		p.debouncer.Debounce(delay, p.save)
	}
	return false
}

// executeToggle handles ":autosave [on|off]".
func (p *AutoSave) executeToggle(args []string) error {
	p.mutex.Lock()
	switch {
	case len(args) == 0:
	case args[0] == "on":
		p.enabled = true
	case args[0] == "off":
		p.enabled = false
	default:
		p.mutex.Unlock()
		return fmt.Errorf("usage: autosave [on|off]")
	}
	enabled := p.enabled
	p.mutex.Unlock()

	if !enabled {
		p.debouncer.Stop()
	}
	state := "off"
	if enabled {
		state = "on"
	}
	p.api.SetStatusMessage("Autosave %s", state)
	return nil
}

func (p *AutoSave) save() {
	path := p.api.SessionPath()
	if path == "" {
		logger.Debugf("%s: No session file, skipping save.", p.Name())
		return
	}
	if err := debugger.SaveSession(path, p.api.State()); err != nil {
		logger.Errorf("%s: Auto-save to '%s' failed: %v", p.Name(), path, err)
		return
	}
	logger.Debugf("%s: Session saved to '%s'", p.Name(), path)
}
