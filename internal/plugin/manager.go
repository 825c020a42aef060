// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/tidebug/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu          sync.RWMutex
	plugins     map[string]Plugin
	order       []string
	initialized []Plugin
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	m.order = append(m.order, name)
	logger.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins initializes plugins in registration order. A plugin
// that fails is logged and skipped; the first error is returned.
func (m *Manager) InitializePlugins(api DebuggerAPI) error {
	m.mu.RLock()
	pending := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		pending = append(pending, m.plugins[name])
	}
	m.mu.RUnlock()

	var firstErr error
	for _, p := range pending {
		if err := p.Initialize(api); err != nil {
			err = fmt.Errorf("failed to initialize plugin '%s': %w", p.Name(), err)
			logger.Errorf("Plugin Manager: %v", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		m.mu.Lock()
		m.initialized = append(m.initialized, p)
		m.mu.Unlock()
		logger.Debugf("Plugin Manager: Initialized plugin '%s'", p.Name())
	}
	return firstErr
}

// ShutdownPlugins shuts down initialized plugins in reverse order.
func (m *Manager) ShutdownPlugins() {
	m.mu.Lock()
	toShutdown := m.initialized
	m.initialized = nil
	m.mu.Unlock()

	for i := len(toShutdown) - 1; i >= 0; i-- {
		p := toShutdown[i]
		if err := p.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", p.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}

// Names returns the registered plugin names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := append([]string(nil), m.order...)
	sort.Strings(names)
	return names
}
