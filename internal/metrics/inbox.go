package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var inboxFilesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "inbox",
	Name:      "files_total",
	Help:      "Count of spooled transaction files by outcome.",
}, []string{"outcome"})

// Inbox outcomes.
const (
	InboxAccepted  = "accepted"
	InboxRejected  = "rejected"
	InboxDuplicate = "duplicate"
	InboxError     = "error"
)

// Inbox tracks metrics for the transaction spool directory.
type Inbox struct{}

// NewInbox creates an Inbox metrics collector.
func NewInbox() *Inbox {
	return &Inbox{}
}

// ObserveFile counts one processed spool file.
func (Inbox) ObserveFile(outcome string) {
	inboxFilesTotal.WithLabelValues(orUnknown(outcome)).Inc()
}
