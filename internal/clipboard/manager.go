package clipboard

import (
	"fmt"
	"sync"

	sysclip "github.com/atotto/clipboard"
	"github.com/bethropolis/tidebug/internal/logger"
)

// Manager holds yanked text in an internal register and, when enabled,
// mirrors it to the system clipboard.
type Manager struct {
	mu       sync.Mutex
	register string
	system   bool

	// writeSystem is replaceable in tests.
	writeSystem func(string) error
}

// NewManager creates a clipboard manager. useSystem selects the system
// clipboard; it is ignored where no clipboard utility is available.
func NewManager(useSystem bool) *Manager {
	if useSystem && sysclip.Unsupported {
		logger.Warnf("System clipboard not supported here, using internal register")
		useSystem = false
	}
	return &Manager{system: useSystem, writeSystem: sysclip.WriteAll}
}

// UsesSystem reports whether yanks reach the system clipboard.
func (m *Manager) UsesSystem() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.system
}

// Yank stores text. The internal register is always updated, so a failing
// system clipboard still leaves the text available to Get.
func (m *Manager) Yank(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.register = text
	if !m.system {
		return nil
	}
	if err := m.writeSystem(text); err != nil {
		return fmt.Errorf("system clipboard write failed: %w", err)
	}
	logger.DebugTagf("clipboard", "Yanked %d bytes to system clipboard", len(text))
	return nil
}

// Get returns the last yanked text.
func (m *Manager) Get() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.register
}
