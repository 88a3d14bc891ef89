package collector

import (
	"context"
	"sync"

	"github.com/Tap30/beacon-go/payload"
)

// Version of the record layout produced by the collector.
const Version = 2

// Record is a message as accepted by the collector, carrying the fields only
// the server assigns. Timestamp holds the skew-corrected time.
type Record struct {
	MessageID         string          `json:"messageId"`
	ProjectID         string          `json:"projectId"`
	ReceivedAt        payload.Time    `json:"receivedAt"`
	Version           int             `json:"version"`
	Timestamp         payload.Time    `json:"timestamp"`
	OriginalTimestamp payload.Time    `json:"originalTimestamp"`
	Message           payload.Message `json:"message"`
}

// Sink receives accepted records.
type Sink interface {
	Write(ctx context.Context, records []Record) error
}

// MemorySink keeps every record in memory.
type MemorySink struct {
	mu      sync.Mutex
	records []Record
}

var _ Sink = (*MemorySink)(nil)

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(_ context.Context, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

// Records returns a copy of everything written so far.
func (s *MemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
