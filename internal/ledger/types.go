package ledger

import (
	"context"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SnapshotStore persists whole-ledger snapshots. Load must return an error wrapping
	// fs.ErrNotExist when no snapshot has been written yet.
	SnapshotStore interface {
		Save(ctx context.Context, snapshot model.Snapshot) error
		Load(ctx context.Context) (model.Snapshot, error)
	}
	Metrics interface {
		ObserveAddTransaction(err error, started time.Time)
		ObserveAddBlock(err error, transactions int, started time.Time)
		ObserveValidateChain(err error, started time.Time)
		SetState(height int64, pending int)
		ObserveVerifyCache(hit bool)
	}
)
