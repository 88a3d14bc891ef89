package beacon

import (
	"fmt"
	"time"

	"github.com/Tap30/beacon-go/adapters"
	"github.com/Tap30/beacon-go/payload"
	"github.com/prometheus/client_golang/prometheus"
)

// Re-export adapter and payload types for convenience
type (
	Message          = payload.Message
	Options          = payload.Options
	Properties       = payload.Properties
	Traits           = payload.Traits
	TransportAdapter = adapters.TransportAdapter
	Response         = adapters.Response
	StorageAdapter   = adapters.StorageAdapter
	LoggerAdapter    = adapters.LoggerAdapter
	LogLevel         = adapters.LogLevel
)

// HTTPError reports a batch the collector rejected after all retries.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP request failed with status %d", e.Status)
}

type ClientConfig struct {
	APIKey       string
	Endpoint     string
	APIKeyHeader *string
	// AnonymousID seeds the device identity. A random UUID is used when empty.
	AnonymousID    string
	FlushInterval  time.Duration
	MaxBatchSize   int
	MaxRetries     int
	RetryBaseDelay time.Duration
	SendTimeout    time.Duration

	Transport TransportAdapter
	Storage   StorageAdapter
	Logger    LoggerAdapter
	// Registerer receives the dispatcher metrics. A private registry is used when nil.
	Registerer prometheus.Registerer
}

// DispatcherConfig controls batching and retries. Authentication travels in
// the headers handed to NewDispatcher.
type DispatcherConfig struct {
	Endpoint       string
	FlushInterval  time.Duration
	MaxBatchSize   int
	MaxRetries     int
	RetryBaseDelay time.Duration
	SendTimeout    time.Duration
}
