package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archiverBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "batches_total",
		Help:      "Count of block batches written to the archive.",
	}, []string{"mode", "status"})

	archiverBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "batch_duration_seconds",
		Help:      "Duration of archiving a batch of blocks.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"mode", "status"})

	archiverBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "archiver",
		Name:      "batch_size",
		Help:      "Number of blocks archived per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"mode"})
)

// Archiver tracks block archiving, either live or as a backfill.
type Archiver struct {
	mode string
}

// NewArchiver creates an Archiver collector for mode ("live" or "backfill").
func NewArchiver(mode string) *Archiver {
	return &Archiver{mode: orUnknown(mode)}
}

// ObserveBatch records one archived batch.
func (m Archiver) ObserveBatch(err error, blocks int, started time.Time) {
	s := status(err)
	archiverBatchTotal.WithLabelValues(m.mode, s).Inc()
	archiverBatchDuration.WithLabelValues(m.mode, s).Observe(time.Since(started).Seconds())
	archiverBatchSize.WithLabelValues(m.mode).Observe(float64(blocks))
}
