package adapters

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLoggerAdapter(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: ParseSlogLevel(LogLevelInfo)})
	logger := NewSlogLoggerAdapter(slog.New(handler))

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("5xx server error, retrying batch of %d", 4, Fields{"status": 503, "attempt": 2})

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "5xx server error, retrying batch of 4", record["msg"])
	assert.Equal(t, "beacon", record["component"])
	assert.EqualValues(t, 503, record["status"])
	assert.EqualValues(t, 2, record["attempt"])
}

func TestSlogLoggerAdapter_DefaultLogger(t *testing.T) {
	logger := NewSlogLoggerAdapter(nil)
	assert.NotNil(t, logger.logger)
}

func TestParseSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseSlogLevel(LogLevelDebug))
	assert.Equal(t, slog.LevelInfo, ParseSlogLevel(LogLevelInfo))
	assert.Equal(t, slog.LevelWarn, ParseSlogLevel(LogLevelWarn))
	assert.Equal(t, slog.LevelError, ParseSlogLevel(LogLevelError))
	assert.Greater(t, ParseSlogLevel(LogLevelNone), slog.LevelError)
}
