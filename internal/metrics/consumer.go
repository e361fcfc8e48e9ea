package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	consumerRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "consumer",
		Name:      "records_total",
		Help:      "Count of stream records, by decode outcome.",
	}, []string{"stream", "outcome"})

	consumerPersistTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "consumer",
		Name:      "persist_total",
		Help:      "Count of persisted messages.",
	}, []string{"stream", "status"})

	consumerPersistDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "consumer",
		Name:      "persist_duration_seconds",
		Help:      "Duration of persisting one message.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stream", "status"})

	consumerQueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "consumer",
		Name:      "queue_depth",
		Help:      "Messages waiting for the persistence worker.",
	}, []string{"stream"})
)

// Consumer tracks metrics for the consumer pipeline.
type Consumer struct {
	stream string
}

// NewConsumer constructs a Consumer collector for a stream.
func NewConsumer(stream string) *Consumer {
	if stream == "" {
		stream = "unknown"
	}
	return &Consumer{stream: stream}
}

// ObserveRecord records a decode outcome: "decoded" or "invalid".
func (m Consumer) ObserveRecord(outcome string) {
	consumerRecordsTotal.WithLabelValues(m.stream, outcome).Inc()
}

// ObservePersist records a persistence outcome and duration.
func (m Consumer) ObservePersist(err error, started time.Time) {
	status := statusOf(err)
	consumerPersistTotal.WithLabelValues(m.stream, status).Inc()
	consumerPersistDuration.WithLabelValues(m.stream, status).Observe(time.Since(started).Seconds())
}

// SetQueueDepth reports the persistence queue length.
func (m Consumer) SetQueueDepth(depth int) {
	consumerQueueDepth.WithLabelValues(m.stream).Set(float64(depth))
}
