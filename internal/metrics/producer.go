package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	producerCycleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "producer",
		Name:      "cycles_total",
		Help:      "Count of polling cycles.",
	}, []string{"source", "status"})

	producerCycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "producer",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of a polling cycle.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source", "status"})

	producerBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "producer",
		Name:      "blocks_total",
		Help:      "Count of blocks handled, by outcome.",
	}, []string{"source", "outcome"})

	producerBatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "producer",
		Name:      "batches_total",
		Help:      "Count of batches handed to the broker.",
	}, []string{"source", "status"})

	producerDroppedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "producer",
		Name:      "dropped_messages_total",
		Help:      "Count of messages dropped with a failed batch.",
	}, []string{"source"})
)

// Producer tracks metrics for the producer pipeline.
type Producer struct {
	source string
}

// NewProducer constructs a Producer collector for a block source.
func NewProducer(source string) *Producer {
	if source == "" {
		source = "unknown"
	}
	return &Producer{source: source}
}

// ObserveCycle records a polling cycle outcome and duration.
func (m Producer) ObserveCycle(err error, started time.Time) {
	status := statusOf(err)
	producerCycleTotal.WithLabelValues(m.source, status).Inc()
	producerCycleDuration.WithLabelValues(m.source, status).Observe(time.Since(started).Seconds())
}

// ObserveBlock records the outcome of a single block: "built" or the stage that failed.
func (m Producer) ObserveBlock(outcome string) {
	producerBlocksTotal.WithLabelValues(m.source, outcome).Inc()
}

// ObserveBatch records a publish outcome; failed batches count their messages as dropped.
func (m Producer) ObserveBatch(err error, size int) {
	producerBatchesTotal.WithLabelValues(m.source, statusOf(err)).Inc()
	if err != nil {
		producerDroppedMessages.WithLabelValues(m.source).Add(float64(size))
	}
}
