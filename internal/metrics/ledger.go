package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "operations_total",
		Help:      "Count of ledger service operations.",
	}, []string{"operation", "status"})

	ledgerOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger service operations, store round trip included.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"operation", "status"})

	ledgerHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "height",
		Help:      "Index of the chain tip.",
	})

	ledgerPending = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "pending_transactions",
		Help:      "Number of transactions waiting for a block.",
	})
)

// Ledger tracks ledger service operations.
type Ledger struct{}

// NewLedger creates a Ledger collector.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Observe records duration and status of a ledger operation.
func (Ledger) Observe(operation string, err error, started time.Time) {
	s := status(err)
	ledgerOperationsTotal.WithLabelValues(operation, s).Inc()
	ledgerOperationDuration.WithLabelValues(operation, s).Observe(time.Since(started).Seconds())
}

// SetChain publishes the chain tip and pending set size after a write.
func (Ledger) SetChain(height uint64, pending int) {
	ledgerHeight.Set(float64(height))
	ledgerPending.Set(float64(pending))
}
