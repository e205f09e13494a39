package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	consensusCreateBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "consensus",
		Name:      "create_block_total",
		Help:      "Count of block proposals by proposer.",
	}, []string{"validator", "status"})

	consensusCreateBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "consensus",
		Name:      "create_block_duration_seconds",
		Help:      "Duration of selecting, signing and appending a block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	consensusDeferredStats = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "consensus",
		Name:      "deferred_statistics_updates",
		Help:      "Validator statistics updates waiting to be replayed.",
	})
)

// Consensus tracks metrics for the PoA engine.
type Consensus struct{}

// NewConsensus creates a Consensus metrics collector.
func NewConsensus() *Consensus {
	return &Consensus{}
}

// ObserveCreateBlock records one proposal round.
func (Consensus) ObserveCreateBlock(validatorID string, err error, started time.Time) {
	status := statusLabel(err)
	consensusCreateBlockTotal.WithLabelValues(orUnknown(validatorID), status).Inc()
	consensusCreateBlockDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// SetDeferredStatistics publishes the size of the replay queue.
func (Consensus) SetDeferredStatistics(n int) {
	consensusDeferredStats.Set(float64(n))
}
