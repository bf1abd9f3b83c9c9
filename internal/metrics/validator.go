package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validatorValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "validator",
		Name:      "validations_total",
		Help:      "Count of validated submissions by status.",
	}, []string{"status"})

	validatorCheckFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "validator",
		Name:      "check_failures_total",
		Help:      "Count of failed validation checks.",
	}, []string{"check"})
)

// Validator tracks proof-of-work validation outcomes.
type Validator struct{}

// NewValidator creates a Validator collector.
func NewValidator() *Validator {
	return &Validator{}
}

// Observe records one validation and every check it failed.
func (Validator) Observe(accepted bool, failedChecks []string) {
	status := "accepted"
	if !accepted {
		status = "rejected"
	}
	validatorValidationsTotal.WithLabelValues(status).Inc()
	for _, check := range failedChecks {
		validatorCheckFailuresTotal.WithLabelValues(check).Inc()
	}
}
