package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	explorerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "explorer_client",
		Name:      "requests_total",
		Help:      "Count of block explorer HTTP requests.",
	}, []string{"operation", "status"})
	explorerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "explorer_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of block explorer HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// ExplorerClient tracks metrics for block explorer requests.
type ExplorerClient struct{}

// NewExplorerClient constructs an ExplorerClient metrics collector.
func NewExplorerClient() *ExplorerClient {
	return &ExplorerClient{}
}

// Observe records a request outcome and duration.
func (m ExplorerClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	explorerRequestsTotal.WithLabelValues(operation, status).Inc()
	explorerRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
