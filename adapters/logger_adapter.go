package adapters

import "sort"

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelNone  LogLevel = "NONE"
)

var levelRank = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
	LogLevelNone:  4,
}

// Fields carries structured attributes. When passed as the last argument to
// a LoggerAdapter method it is rendered as key/value pairs instead of being
// consumed by the format string.
type Fields = map[string]any

// LoggerAdapter is an interface for logging.
// Implement this interface to use custom loggers.
type LoggerAdapter interface {
	// Debug logs a debug message
	Debug(message string, args ...any)
	// Info logs an info message
	Info(message string, args ...any)
	// Warn logs a warning message
	Warn(message string, args ...any)
	// Error logs an error message
	Error(message string, args ...any)
}

// splitFields separates a trailing Fields argument from format arguments.
func splitFields(args []any) ([]any, Fields) {
	if len(args) == 0 {
		return args, nil
	}
	if fields, ok := args[len(args)-1].(Fields); ok {
		return args[:len(args)-1], fields
	}
	return args, nil
}

func sortedKeys(fields Fields) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
