package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "snapshot_store",
		Name:      "operations_total",
		Help:      "Count of snapshot store operations.",
	}, []string{"operation", "status"})

	snapshotOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "snapshot_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of snapshot store operations.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"operation", "status"})

	snapshotBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "snapshot_store",
		Name:      "last_snapshot_bytes",
		Help:      "Size of the last written snapshot.",
	})
)

// SnapshotStore tracks metrics for snapshot persistence.
type SnapshotStore struct{}

// NewSnapshotStore creates a SnapshotStore metrics collector.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// ObserveSave records a save and the snapshot size when it succeeded.
func (SnapshotStore) ObserveSave(err error, size int, started time.Time) {
	observeSnapshot("save", err, started)
	if err == nil {
		snapshotBytes.Set(float64(size))
	}
}

// ObserveLoad records a load attempt.
func (SnapshotStore) ObserveLoad(err error, started time.Time) {
	observeSnapshot("load", err, started)
}

func observeSnapshot(operation string, err error, started time.Time) {
	status := statusLabel(err)
	snapshotOperationsTotal.WithLabelValues(operation, status).Inc()
	snapshotOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
