package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key messages are stored under when none is given.
const DefaultRedisKey = "beacon:pending"

// RedisStorageAdapter stores pending messages as a single JSON value in Redis.
type RedisStorageAdapter struct {
	client  *redis.Client
	key     string
	timeout time.Duration
}

// Ensure RedisStorageAdapter implements StorageAdapter interface
var _ StorageAdapter = (*RedisStorageAdapter)(nil)

// RedisConfig configures a RedisStorageAdapter.
type RedisConfig struct {
	Addr     string
	Password string // optional
	DB       int    // optional
	Key      string // optional, defaults to DefaultRedisKey
	Timeout  time.Duration
}

// NewRedisStorageAdapter connects to Redis and verifies the connection.
func NewRedisStorageAdapter(ctx context.Context, cfg RedisConfig) (*RedisStorageAdapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return newRedisStorageAdapter(client, cfg), nil
}

func newRedisStorageAdapter(client *redis.Client, cfg RedisConfig) *RedisStorageAdapter {
	key := cfg.Key
	if key == "" {
		key = DefaultRedisKey
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &RedisStorageAdapter{client: client, key: key, timeout: timeout}
}

// Save replaces the stored messages.
func (r *RedisStorageAdapter) Save(messages []Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save messages: %w", err)
	}
	return nil
}

// Load returns the stored messages, or an empty slice when nothing is stored.
func (r *RedisStorageAdapter) Load() ([]Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Clear deletes the stored messages.
func (r *RedisStorageAdapter) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}

// Close closes the Redis connection pool.
func (r *RedisStorageAdapter) Close() error {
	return r.client.Close()
}
