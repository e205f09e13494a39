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
		Help:      "Count of ledger operations.",
	}, []string{"operation", "status"})

	ledgerOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})

	ledgerBlockSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "block_transactions",
		Help:      "Number of transactions per appended block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	ledgerHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "height",
		Help:      "Index of the latest block.",
	})

	ledgerPending = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "pending_transactions",
		Help:      "Number of transactions waiting for a block.",
	})

	ledgerVerifyCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "verify_cache_total",
		Help:      "Signature verification cache lookups.",
	}, []string{"result"})
)

// Ledger tracks metrics for the in-memory chain.
type Ledger struct{}

// NewLedger creates a Ledger metrics collector.
func NewLedger() *Ledger {
	return &Ledger{}
}

// ObserveAddTransaction records a pool submission.
func (Ledger) ObserveAddTransaction(err error, started time.Time) {
	observeLedger("add_transaction", err, started)
}

// ObserveAddBlock records an append attempt and, on success, the block size.
func (Ledger) ObserveAddBlock(err error, transactions int, started time.Time) {
	observeLedger("add_block", err, started)
	if err == nil {
		ledgerBlockSize.Observe(float64(transactions))
	}
}

// ObserveValidateChain records a full chain validation pass.
func (Ledger) ObserveValidateChain(err error, started time.Time) {
	observeLedger("validate_chain", err, started)
}

// SetState publishes the current height and pool size.
func (Ledger) SetState(height int64, pending int) {
	ledgerHeight.Set(float64(height))
	ledgerPending.Set(float64(pending))
}

// ObserveVerifyCache records a verification cache hit or miss.
func (Ledger) ObserveVerifyCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ledgerVerifyCacheTotal.WithLabelValues(result).Inc()
}

func observeLedger(operation string, err error, started time.Time) {
	status := statusLabel(err)
	ledgerOperationsTotal.WithLabelValues(operation, status).Inc()
	ledgerOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
