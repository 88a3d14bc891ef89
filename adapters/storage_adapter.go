package adapters

// StorageAdapter is an interface for message persistence.
// Implement this interface to use custom storage backends (database, Redis, S3, etc.).
type StorageAdapter interface {
	// Save persists messages to storage, replacing what was stored before.
	//
	// Parameters:
	//   - messages: Array of messages to save
	//
	// Returns error if save fails.
	Save(messages []Message) error

	// Load retrieves persisted messages from storage.
	//
	// Returns array of messages or error.
	Load() ([]Message, error)

	// Clear removes all persisted messages from storage.
	//
	// Returns error if clear fails.
	Clear() error

	// Close releases any connection held by the adapter.
	Close() error
}
