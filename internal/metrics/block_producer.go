package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	producerProduceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_producer",
		Name:      "produce_total",
		Help:      "Count of block production rounds.",
	}, []string{"status"})

	producerProduceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_producer",
		Name:      "produce_duration_seconds",
		Help:      "Duration of a production round from proposal to dispatch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	producerEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_producer",
		Name:      "events_total",
		Help:      "Contract events published by name.",
	}, []string{"event"})
)

// BlockProducer tracks metrics for the block producer loop.
type BlockProducer struct{}

// NewBlockProducer creates a BlockProducer metrics collector.
func NewBlockProducer() *BlockProducer {
	return &BlockProducer{}
}

// ObserveProduce records a production round.
func (BlockProducer) ObserveProduce(err error, started time.Time) {
	status := statusLabel(err)
	producerProduceTotal.WithLabelValues(status).Inc()
	producerProduceDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveEvent counts a published contract event.
func (BlockProducer) ObserveEvent(name string) {
	producerEventsTotal.WithLabelValues(orUnknown(name)).Inc()
}
