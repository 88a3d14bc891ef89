package adapters

// NoOpStorageAdapter is a storage adapter that performs no operations.
// Useful for scenarios where message persistence is not required.
type NoOpStorageAdapter struct{}

// Ensure NoOpStorageAdapter implements StorageAdapter interface
var _ StorageAdapter = (*NoOpStorageAdapter)(nil)

// NewNoOpStorageAdapter creates a new NoOpStorageAdapter instance.
func NewNoOpStorageAdapter() *NoOpStorageAdapter {
	return &NoOpStorageAdapter{}
}

// Save does nothing and always returns nil.
func (n *NoOpStorageAdapter) Save(messages []Message) error {
	return nil
}

// Load returns an empty slice and nil error.
func (n *NoOpStorageAdapter) Load() ([]Message, error) {
	return []Message{}, nil
}

// Clear does nothing and always returns nil.
func (n *NoOpStorageAdapter) Clear() error {
	return nil
}

// Close does nothing and always returns nil.
func (n *NoOpStorageAdapter) Close() error {
	return nil
}
