package adapters

import "context"

// Response represents the collector's answer to a batch upload.
type Response struct {
	OK     bool
	Status int
	Data   any
}

// TransportAdapter is an interface for delivering batches to a collector.
// Implement this interface to use custom HTTP clients or brokers.
type TransportAdapter interface {
	// Send delivers messages to the specified endpoint.
	//
	// Parameters:
	//   - ctx: Cancels the delivery
	//   - endpoint: The collector URL or topic
	//   - messages: Batch of messages, each already stamped with sentAt
	//   - headers: Optional custom headers to merge with defaults
	//
	// Returns the collector response or a network error.
	Send(ctx context.Context, endpoint string, messages []Message, headers map[string]string) (*Response, error)
}
