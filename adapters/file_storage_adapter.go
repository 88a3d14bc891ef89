package adapters

import (
	"encoding/json"
	"errors"
	"os"
)

// FileStorageAdapter is the default storage adapter implementation using file system.
// Stores messages as a JSON array in a file.
type FileStorageAdapter struct {
	filepath string
}

// Ensure FileStorageAdapter implements StorageAdapter interface
var _ StorageAdapter = (*FileStorageAdapter)(nil)

// NewFileStorageAdapter creates a new FileStorageAdapter instance.
//
// Parameters:
//   - filepath: Path to the file where messages will be stored
func NewFileStorageAdapter(filepath string) *FileStorageAdapter {
	return &FileStorageAdapter{filepath: filepath}
}

// Save persists messages to a JSON file.
func (f *FileStorageAdapter) Save(messages []Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	return os.WriteFile(f.filepath, data, 0o600)
}

// Load retrieves messages from a JSON file.
// Returns empty array if file doesn't exist.
func (f *FileStorageAdapter) Load() ([]Message, error) {
	data, err := os.ReadFile(f.filepath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Message{}, nil
		}
		return nil, err
	}
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Clear removes the storage file.
func (f *FileStorageAdapter) Clear() error {
	err := os.Remove(f.filepath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Close does nothing for file storage (no persistent connections).
func (f *FileStorageAdapter) Close() error {
	return nil
}
