// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/tidebug/internal/logger"
)

// Handler is an event subscriber. Returning true marks the event consumed
// and stops delivery to later handlers.
type Handler func(e Event) bool

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	eventType Type
	id        uint64
}

type entry struct {
	id      uint64
	handler Handler
}

// Manager handles event subscriptions and dispatching.
// Dispatch is synchronous: handlers run on the caller's goroutine in
// subscription order.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]entry
	nextID   uint64
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]entry),
	}
}

// Subscribe adds a handler for an event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.handlers[eventType] = append(m.handlers[eventType], entry{id: m.nextID, handler: handler})
	logger.DebugTagf("event", "Event Manager: handler %d subscribed to %v", m.nextID, eventType)
	return Subscription{eventType: eventType, id: m.nextID}
}

// Unsubscribe removes a handler. Unknown subscriptions are ignored.
func (m *Manager) Unsubscribe(sub Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.handlers[sub.eventType]
	for i, e := range list {
		if e.id == sub.id {
			m.handlers[sub.eventType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Dispatch sends an event to all handlers registered for its type.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	ev := Event{Type: eventType, Data: data}

	m.mu.RLock()
	// Copy so handlers may (un)subscribe during dispatch.
	handlers := make([]entry, len(m.handlers[eventType]))
	copy(handlers, m.handlers[eventType])
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	logger.DebugTagf("event", "Event Manager: dispatching %v to %d handler(s)", eventType, len(handlers))
	for _, e := range handlers {
		if e.handler(ev) {
			return
		}
	}
}
