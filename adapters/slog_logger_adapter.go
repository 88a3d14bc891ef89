package adapters

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogLoggerAdapter forwards to a *slog.Logger. A trailing Fields argument
// becomes slog attributes; remaining arguments format the message.
type SlogLoggerAdapter struct {
	logger *slog.Logger
}

// NewSlogLoggerAdapter wraps logger, or slog.Default() when nil.
func NewSlogLoggerAdapter(logger *slog.Logger) *SlogLoggerAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLoggerAdapter{logger: logger.With("component", "beacon")}
}

// ParseSlogLevel maps a LogLevel onto slog levels. LogLevelNone maps above Error.
func ParseSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

func (s *SlogLoggerAdapter) log(level slog.Level, message string, args []any) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, level) {
		return
	}
	args, fields := splitFields(args)
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	attrs := make([]slog.Attr, 0, len(fields))
	for _, k := range sortedKeys(fields) {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	s.logger.LogAttrs(ctx, level, message, attrs...)
}

func (s *SlogLoggerAdapter) Debug(message string, args ...any) {
	s.log(slog.LevelDebug, message, args)
}

func (s *SlogLoggerAdapter) Info(message string, args ...any) {
	s.log(slog.LevelInfo, message, args)
}

func (s *SlogLoggerAdapter) Warn(message string, args ...any) {
	s.log(slog.LevelWarn, message, args)
}

func (s *SlogLoggerAdapter) Error(message string, args ...any) {
	s.log(slog.LevelError, message, args)
}
