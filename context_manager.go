package beacon

import (
	"sync"

	"github.com/Tap30/beacon-go/payload"
)

// ContextManager holds the context attached to every message.
type ContextManager struct {
	context map[string]any
	mu      sync.RWMutex
}

// NewContextManager creates a new context manager
func NewContextManager() *ContextManager {
	return &ContextManager{
		context: make(map[string]any),
	}
}

// Set sets a context value
func (m *ContextManager) Set(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.context[key] = value
}

// Get gets a context value
func (m *ContextManager) Get(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.context[key]
}

// Delete removes a context value
func (m *ContextManager) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.context, key)
}

// Snapshot returns a copy of the context. Each message gets its own copy so
// later Set calls never touch a context that was already handed off.
func (m *ContextManager) Snapshot() payload.Context {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(payload.Context, len(m.context))
	for k, v := range m.context {
		result[k] = v
	}
	return result
}

// IsEmpty returns true if no context is set
func (m *ContextManager) IsEmpty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.context) == 0
}

// Clear removes all context
func (m *ContextManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.context = make(map[string]any)
}
