package contract

import (
	"context"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Contract is a deterministic state machine driven by ledger transactions.
	// Implementations are not safe for concurrent use; the Engine serializes calls per instance.
	Contract interface {
		ID() string
		Name() string
		CanExecute(tx model.Transaction) bool
		Execute(ctx context.Context, execCtx ExecutionContext) (ExecutionResult, error)
		State() map[string]any
	}

	// Checkpointer is implemented by contracts that take part in all-or-nothing pipelines.
	// Checkpoint returns an independent copy of the state; Restore puts it back.
	Checkpointer interface {
		Checkpoint() any
		Restore(checkpoint any)
	}

	Metrics interface {
		ObserveExecute(contractID, outcome string, started time.Time)
	}
)
