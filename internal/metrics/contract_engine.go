package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	contractExecutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "contract_engine",
		Name:      "executions_total",
		Help:      "Count of contract executions by outcome.",
	}, []string{"contract", "outcome"})

	contractExecutionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "contract_engine",
		Name:      "execution_duration_seconds",
		Help:      "Duration of contract executions, including lock wait.",
		Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"contract"})
)

// Contract outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeFault   = "fault"
)

// ContractEngine tracks metrics for contract execution.
type ContractEngine struct{}

// NewContractEngine creates a ContractEngine metrics collector.
func NewContractEngine() *ContractEngine {
	return &ContractEngine{}
}

// ObserveExecute records an execution with its outcome.
func (ContractEngine) ObserveExecute(contractID, outcome string, started time.Time) {
	contractID = orUnknown(contractID)
	contractExecutionsTotal.WithLabelValues(contractID, orUnknown(outcome)).Inc()
	contractExecutionDuration.WithLabelValues(contractID).Observe(time.Since(started).Seconds())
}
