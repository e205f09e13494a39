package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archiveRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archive_repository",
		Name:      "operations_total",
		Help:      "Count of archive repository operations.",
	}, []string{"backend", "operation", "status"})
	archiveRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "archive_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of archive repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"backend", "operation", "status"})
	archiveRepositoryRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archive_repository",
		Name:      "rows_total",
		Help:      "Rows written to the archive by operation.",
	}, []string{"backend", "operation"})
)

const (
	ArchiveClickhouse = "clickhouse"
	ArchiveLevelDB    = "leveldb"
)

// ArchiveRepository tracks metrics for one archive backend.
type ArchiveRepository struct {
	backend string
}

// NewArchiveRepository creates an ArchiveRepository metrics collector for backend.
func NewArchiveRepository(backend string) *ArchiveRepository {
	return &ArchiveRepository{backend: orUnknown(backend)}
}

// Observe records duration and status of a repository operation.
func (m ArchiveRepository) Observe(operation string, rows int, err error, started time.Time) {
	operation = orUnknown(operation)
	status := statusLabel(err)

	archiveRepositoryRequestsTotal.WithLabelValues(m.backend, operation, status).Inc()
	archiveRepositoryRequestDuration.WithLabelValues(m.backend, operation, status).Observe(time.Since(started).Seconds())
	if err == nil {
		archiveRepositoryRows.WithLabelValues(m.backend, operation).Add(float64(rows))
	}
}
