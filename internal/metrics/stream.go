package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	streamPublishTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "stream",
		Name:      "publish_batches_total",
		Help:      "Count of batch publish attempts.",
	}, []string{"stream", "status"})
	streamPublishDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "stream",
		Name:      "publish_duration_seconds",
		Help:      "Duration of batch publishes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stream", "status"})
	streamPublishedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "stream",
		Name:      "published_records_total",
		Help:      "Count of records appended to the stream.",
	}, []string{"stream"})
	streamReadRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "stream",
		Name:      "read_records_total",
		Help:      "Count of records read from the stream.",
	}, []string{"stream", "status"})
)

// Stream tracks metrics of one broker stream.
type Stream struct {
	name string
}

// NewStream constructs a Stream collector labelled with the stream name.
func NewStream(name string) *Stream {
	if name == "" {
		name = "unknown"
	}
	return &Stream{name: name}
}

// ObservePublish records a batch publish outcome.
func (m Stream) ObservePublish(err error, records int, started time.Time) {
	status := statusOf(err)
	streamPublishTotal.WithLabelValues(m.name, status).Inc()
	streamPublishDuration.WithLabelValues(m.name, status).Observe(time.Since(started).Seconds())
	if err == nil {
		streamPublishedRecords.WithLabelValues(m.name).Add(float64(records))
	}
}

// ObserveRead records the number of records returned by a read.
func (m Stream) ObserveRead(err error, records int) {
	if err != nil {
		streamReadRecords.WithLabelValues(m.name, "error").Inc()
		return
	}
	streamReadRecords.WithLabelValues(m.name, "success").Add(float64(records))
}
