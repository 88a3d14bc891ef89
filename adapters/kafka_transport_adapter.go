package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer used by the adapter.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaTransportAdapter publishes every message as a Kafka record. The
// endpoint passed to Send is used as the topic. Records are keyed by user
// ID, falling back to the anonymous ID, so one user's messages stay ordered
// within a partition.
type KafkaTransportAdapter struct {
	writer messageWriter
}

// Ensure KafkaTransportAdapter implements TransportAdapter interface
var _ TransportAdapter = (*KafkaTransportAdapter)(nil)

// NewKafkaTransportAdapter creates an adapter writing to the given brokers.
func NewKafkaTransportAdapter(brokers ...string) *KafkaTransportAdapter {
	return &KafkaTransportAdapter{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			MaxAttempts:            1,
			ReadTimeout:            10 * time.Second,
			WriteTimeout:           10 * time.Second,
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

// Send writes the batch to the endpoint topic. Broker failures are reported
// as errors so the dispatcher retries them like network errors.
func (k *KafkaTransportAdapter) Send(ctx context.Context, endpoint string, messages []Message, headers map[string]string) (*Response, error) {
	records, err := buildRecords(endpoint, messages, headers)
	if err != nil {
		return nil, err
	}
	if err := k.writer.WriteMessages(ctx, records...); err != nil {
		return nil, fmt.Errorf("failed to write messages: %w", err)
	}
	return &Response{OK: true, Status: http.StatusAccepted}, nil
}

// Close flushes and closes the underlying writer.
func (k *KafkaTransportAdapter) Close() error {
	return k.writer.Close()
}

func buildRecords(topic string, messages []Message, headers map[string]string) ([]kafka.Message, error) {
	var recordHeaders []kafka.Header
	for key, value := range headers {
		recordHeaders = append(recordHeaders, kafka.Header{Key: key, Value: []byte(value)})
	}

	records := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		value, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s message: %w", m.Type(), err)
		}
		key := m.UserID()
		if key == "" {
			key = m.AnonymousID()
		}
		records = append(records, kafka.Message{
			Topic:   topic,
			Key:     []byte(key),
			Value:   value,
			Headers: recordHeaders,
		})
	}
	return records, nil
}
