package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Accepted *prometheus.CounterVec
	Rejected *prometheus.CounterVec
	Skew     prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Accepted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "collector_messages_accepted_total",
			Help: "The total number of messages accepted, by type",
		}, []string{"type"}),
		Rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "collector_messages_rejected_total",
			Help: "The total number of messages rejected, by reason",
		}, []string{"reason"}),
		Skew: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "collector_clock_skew_seconds",
			Help:    "Absolute difference between receivedAt and sentAt",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}
}
