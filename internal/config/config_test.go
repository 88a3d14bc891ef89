package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.Equal(t, "http", cfg.Client.Transport)
	assert.Equal(t, 5*time.Second, cfg.Client.FlushInterval)
	assert.Equal(t, 10, cfg.Client.MaxBatchSize)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, ":3000", cfg.Collector.Addr)
	assert.Equal(t, int64(524288), cfg.Collector.MaxBodyBytes)
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte(`
client:
  endpoint: http://collector.internal/v1/batch
  max_batch_size: 25
  flush_interval: 30s
storage:
  driver: sqlite
  path: /tmp/beacon.db
collector:
  project_id: mobile-prod
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))
	t.Setenv("BEACON_MAX_RETRIES", "7")
	t.Setenv("COLLECTOR_PROJECT_ID", "mobile-staging")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://collector.internal/v1/batch", cfg.Client.Endpoint)
	assert.Equal(t, 25, cfg.Client.MaxBatchSize)
	assert.Equal(t, 30*time.Second, cfg.Client.FlushInterval)
	assert.Equal(t, 7, cfg.Client.MaxRetries)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "mobile-staging", cfg.Collector.ProjectID)
}

func TestStorage_FilePath(t *testing.T) {
	assert.Equal(t, "beacon_messages.json", Storage{Driver: "file"}.FilePath())
	assert.Equal(t, "beacon_messages.db", Storage{Driver: "sqlite"}.FilePath())
	assert.Equal(t, "/data/pending.db", Storage{Driver: "sqlite", Path: "/data/pending.db"}.FilePath())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, "beacon_messages.json", cfg.Storage.FilePath())
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Log{Level: "warn", Format: "json"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"value"`)
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Log{Level: "chatty"}, &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}
