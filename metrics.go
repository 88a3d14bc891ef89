package beacon

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the dispatcher does with messages.
type Metrics struct {
	Enqueued  prometheus.Counter
	Sent      prometheus.Counter
	Dropped   prometheus.Counter
	Retries   prometheus.Counter
	Persisted prometheus.Counter
	BatchSize prometheus.Histogram
}

// NewMetrics registers the dispatcher metrics on reg. A nil reg gets a
// private registry so several clients can live in one process.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		Enqueued: factory.NewCounter(prometheus.CounterOpts{
			Name: "beacon_messages_enqueued_total",
			Help: "The total number of messages recorded by the client",
		}),
		Sent: factory.NewCounter(prometheus.CounterOpts{
			Name: "beacon_messages_sent_total",
			Help: "The total number of messages accepted by the collector",
		}),
		Dropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "beacon_messages_dropped_total",
			Help: "The total number of messages rejected with a 4xx status",
		}),
		Retries: factory.NewCounter(prometheus.CounterOpts{
			Name: "beacon_send_retries_total",
			Help: "The total number of batch send retries",
		}),
		Persisted: factory.NewCounter(prometheus.CounterOpts{
			Name: "beacon_messages_persisted_total",
			Help: "The total number of messages written to storage after a failed send",
		}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "beacon_batch_size",
			Help:    "Number of messages per upload attempt",
			Buckets: prometheus.LinearBuckets(1, 5, 10),
		}),
	}
}
