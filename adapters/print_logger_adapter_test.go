package adapters

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCapturedPrintLogger(level LogLevel) (*PrintLoggerAdapter, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewPrintLoggerAdapter(level)
	logger.logger = log.New(buf, "", 0)
	return logger, buf
}

func TestPrintLoggerAdapter(t *testing.T) {
	t.Run("should create logger with debug level", func(t *testing.T) {
		logger := NewPrintLoggerAdapter(LogLevelDebug)
		assert.Equal(t, LogLevelDebug, logger.level)
	})

	t.Run("should format messages with level prefix", func(t *testing.T) {
		logger, buf := newCapturedPrintLogger(LogLevelDebug)
		logger.Debug("debug message %s", "test")
		assert.Equal(t, "[DEBUG] [Beacon] debug message test\n", buf.String())
	})

	t.Run("should render trailing fields sorted by key", func(t *testing.T) {
		logger, buf := newCapturedPrintLogger(LogLevelDebug)
		logger.Warn("retrying batch %d", 2, Fields{"status": 503, "attempt": 1})
		assert.Equal(t, "[WARN] [Beacon] retrying batch 2 attempt=1 status=503\n", buf.String())
	})

	t.Run("should respect log levels", func(t *testing.T) {
		logger, buf := newCapturedPrintLogger(LogLevelError)
		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		assert.Empty(t, buf.String())

		logger.Error("error message")
		assert.Contains(t, buf.String(), "[ERROR] [Beacon] error message")
	})

	t.Run("should handle none level", func(t *testing.T) {
		logger, buf := newCapturedPrintLogger(LogLevelNone)
		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")
		logger.Error("error message")
		assert.Empty(t, buf.String())
	})
}
