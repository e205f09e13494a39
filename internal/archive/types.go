package archive

import (
	"context"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		InsertBlocks(ctx context.Context, blocks []model.BlockRecord) error
		InsertTransactions(ctx context.Context, txs []model.TransactionRecord) error
		// MaxBlockIndex returns the highest archived index; ok is false for an empty archive.
		MaxBlockIndex(ctx context.Context) (index int64, ok bool, err error)
	}
)
