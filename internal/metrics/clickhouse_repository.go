package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archiveWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archive_repository",
		Name:      "operations_total",
		Help:      "Count of ClickHouse archive operations by operation and status.",
	}, []string{"operation", "status"})
	archiveWriteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "archive_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ClickHouse archive operations.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"operation", "status"})
)

// ClickhouseRepository records the archive repository's queries and batch inserts.
type ClickhouseRepository struct{}

// NewClickhouseRepository creates a ClickhouseRepository metrics collector.
func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

func (ClickhouseRepository) Observe(operation string, err error, started time.Time) {
	labels := []string{operation, status(err)}
	archiveWritesTotal.WithLabelValues(labels...).Inc()
	archiveWriteDuration.WithLabelValues(labels...).Observe(time.Since(started).Seconds())
}
