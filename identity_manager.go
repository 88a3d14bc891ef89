package beacon

import (
	"sync"

	"github.com/google/uuid"
)

// IdentityManager tracks who messages are attributed to: an anonymous ID
// generated for the device, plus a user ID once the user is known.
type IdentityManager struct {
	mu          sync.RWMutex
	anonymousID string
	userID      string
}

// NewIdentityManager seeds the anonymous ID, generating one when empty.
func NewIdentityManager(anonymousID string) *IdentityManager {
	if anonymousID == "" {
		anonymousID = uuid.NewString()
	}
	return &IdentityManager{anonymousID: anonymousID}
}

// Get returns the current anonymous and user IDs.
func (m *IdentityManager) Get() (anonymousID, userID string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.anonymousID, m.userID
}

// SetUserID records the user ID and returns the one it replaced.
func (m *IdentityManager) SetUserID(userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	previous := m.userID
	m.userID = userID
	return previous
}

// Reset forgets the user and rotates the anonymous ID.
func (m *IdentityManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = ""
	m.anonymousID = uuid.NewString()
}
