package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/rewardledger-backend/internal/miner"
)

var (
	minerHashesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "hashes_total",
		Help:      "Count of nonce digests computed.",
	}, []string{"hasher"})

	minerHashRate = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "hash_rate",
		Help:      "Hash rate of the current or last search, in hashes per second.",
	}, []string{"hasher"})

	minerSearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "searches_total",
		Help:      "Count of finished searches by outcome.",
	}, []string{"hasher", "outcome"})

	minerSearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "miner",
		Name:      "search_duration_seconds",
		Help:      "Duration of nonce searches.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 16), // 10ms..~5.5m
	}, []string{"hasher", "outcome"})
)

// Miner tracks mining engine activity.
type Miner struct {
	hasher string
}

// NewMiner creates a Miner collector labelled with the digest in use.
func NewMiner(hasher string) *Miner {
	return &Miner{hasher: orUnknown(hasher)}
}

func (m Miner) ObserveHashes(n uint64) {
	minerHashesTotal.WithLabelValues(m.hasher).Add(float64(n))
}

func (m Miner) SetHashRate(rate float64) {
	minerHashRate.WithLabelValues(m.hasher).Set(rate)
}

// ObserveSearch records a finished search.
func (m Miner) ObserveSearch(outcome miner.State, elapsed time.Duration) {
	minerSearchesTotal.WithLabelValues(m.hasher, string(outcome)).Inc()
	minerSearchDuration.WithLabelValues(m.hasher, string(outcome)).Observe(elapsed.Seconds())
}
