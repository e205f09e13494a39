package model

import "time"

// SnapshotVersion is the only snapshot layout this module reads and writes.
const SnapshotVersion = "1.0"

// Snapshot is the persisted ledger state.
type Snapshot struct {
	Chain               []Block       `json:"chain"`
	PendingTransactions []Transaction `json:"pendingTransactions"`
	SavedAt             time.Time     `json:"savedAt"`
	Version             string        `json:"version"`
}
