package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "submission",
		Name:      "blocks_total",
		Help:      "Count of block submissions by result.",
	}, []string{"result"})

	submissionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "submission",
		Name:      "duration_seconds",
		Help:      "Duration of validating and accepting a submitted block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})
)

// Submission tracks block submissions end to end.
type Submission struct{}

// NewSubmission creates a Submission collector.
func NewSubmission() *Submission {
	return &Submission{}
}

// Observe records a submission. result is "accepted", "rejected" or "error".
func (Submission) Observe(result string, started time.Time) {
	submissionsTotal.WithLabelValues(result).Inc()
	submissionDuration.WithLabelValues(result).Observe(time.Since(started).Seconds())
}
