// Package archive copies appended blocks into an analytics store outside the ledger.
// The archive is a read model: the ledger snapshot stays the source of truth.
package archive

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/pkg/batcher"
)

// Writer buffers blocks and writes them to the repository in batches. Transactions of a
// batch are written before its blocks, so an archived block implies archived transactions.
type Writer struct {
	repo         Repository
	logger       *zap.Logger
	blockBatcher *batcher.Batcher[model.ArchiveBlock]
}

// NewWriter builds a Writer. Zero Config fields take the package defaults.
func NewWriter(repo Repository, logger *zap.Logger, cfg batcher.Config) (*Writer, error) {
	if repo == nil {
		return nil, errors.New("archive repository is required")
	}
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = blockBatcherCapacity
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = blockBatcherFlushInterval
	}
	if cfg.FlushesPerSecond <= 0 {
		cfg.FlushesPerSecond = blockBatcherFlushesPerSec
	}
	w := &Writer{
		repo:   repo,
		logger: logger.Named("archive"),
	}
	w.blockBatcher = batcher.New[model.ArchiveBlock](w.logger.Named("blockBatcher"), cfg, w.flush)
	return w, nil
}

func (w *Writer) Start(ctx context.Context) {
	w.blockBatcher.Start(ctx)
}

// Stop flushes buffered blocks and waits for the batcher to exit.
func (w *Writer) Stop() {
	w.blockBatcher.Stop()
}

// Archive queues a block.
func (w *Writer) Archive(ctx context.Context, block model.Block) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.blockBatcher.Add(ctx, model.NewArchiveBlock(block))
}

// Backfill queues every block of chain above the archive's high-water mark. Genesis is
// archived like any other block.
func (w *Writer) Backfill(ctx context.Context, chain []model.Block) (int, error) {
	next := int64(0)
	max, ok, err := w.repo.MaxBlockIndex(ctx)
	if err != nil {
		return 0, fmt.Errorf("read archive high-water mark: %w", err)
	}
	if ok {
		next = max + 1
	}

	queued := 0
	for _, b := range chain {
		if b.Index < next {
			continue
		}
		if err := w.Archive(ctx, b); err != nil {
			return queued, fmt.Errorf("queue block %d: %w", b.Index, err)
		}
		queued++
	}
	if queued > 0 {
		w.logger.Info("archive backfill queued", zap.Int64("from", next), zap.Int("blocks", queued))
	}
	return queued, nil
}

func (w *Writer) flush(ctx context.Context, archiveBlocks []model.ArchiveBlock) error {
	blocks := make([]model.BlockRecord, 0, len(archiveBlocks))
	txs := make([]model.TransactionRecord, 0, len(archiveBlocks))

	for _, ab := range archiveBlocks {
		blocks = append(blocks, ab.Block)
		txs = append(txs, ab.Txs...)
		if len(txs) >= transactionFlushThreshold {
			if err := w.repo.InsertTransactions(ctx, txs); err != nil {
				return err
			}
			w.logger.Debug("InsertTransactions", zap.Int("count", len(txs)))
			txs = txs[:0]
		}
	}

	if len(txs) > 0 {
		if err := w.repo.InsertTransactions(ctx, txs); err != nil {
			return err
		}
	}
	return w.repo.InsertBlocks(ctx, blocks)
}
