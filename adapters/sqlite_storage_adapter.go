package adapters

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Tap30/beacon-go/payload"

	_ "modernc.org/sqlite"
)

// SQLiteStorageAdapter keeps pending messages in a local SQLite database,
// one row per message in queue order.
type SQLiteStorageAdapter struct {
	db *sql.DB
}

// Ensure SQLiteStorageAdapter implements StorageAdapter interface
var _ StorageAdapter = (*SQLiteStorageAdapter)(nil)

// NewSQLiteStorageAdapter opens (or creates) the database at path.
func NewSQLiteStorageAdapter(path string) (*SQLiteStorageAdapter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStorageAdapter{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorageAdapter) migrate() error {
	query := `
    CREATE TABLE IF NOT EXISTS pending_messages (
        seq INTEGER PRIMARY KEY,
        kind TEXT NOT NULL,
        body TEXT NOT NULL
    );`
	if _, err := s.db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to migrate sqlite: %w", err)
	}
	return nil
}

// Save replaces the stored messages in a single transaction.
func (s *SQLiteStorageAdapter) Save(messages []Message) error {
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_messages`); err != nil {
		return err
	}
	for i, m := range messages {
		body, err := json.Marshal(m)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pending_messages (seq, kind, body) VALUES (?, ?, ?)`,
			i, m.Type().String(), string(body),
		); err != nil {
			return fmt.Errorf("failed to insert message %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Load returns the stored messages in the order they were saved.
func (s *SQLiteStorageAdapter) Load() ([]Message, error) {
	rows, err := s.db.QueryContext(context.Background(), `SELECT body FROM pending_messages ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	messages := []Message{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		m, err := payload.Decode([]byte(body))
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Clear deletes every stored message.
func (s *SQLiteStorageAdapter) Clear() error {
	_, err := s.db.ExecContext(context.Background(), `DELETE FROM pending_messages`)
	return err
}

// Close closes the database.
func (s *SQLiteStorageAdapter) Close() error {
	return s.db.Close()
}
