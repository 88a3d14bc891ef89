package adapters

// NoOpLoggerAdapter discards every message, including any trailing Fields.
type NoOpLoggerAdapter struct{}

// Ensure NoOpLoggerAdapter implements LoggerAdapter interface
var _ LoggerAdapter = (*NoOpLoggerAdapter)(nil)

func NewNoOpLoggerAdapter() *NoOpLoggerAdapter {
	return &NoOpLoggerAdapter{}
}

func (n *NoOpLoggerAdapter) Debug(string, ...any) {}
func (n *NoOpLoggerAdapter) Info(string, ...any)  {}
func (n *NoOpLoggerAdapter) Warn(string, ...any)  {}
func (n *NoOpLoggerAdapter) Error(string, ...any) {}
