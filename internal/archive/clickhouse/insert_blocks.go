package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

const insertBlocksQuery = `
INSERT INTO ledger_blocks (
	block_index,
	hash,
	previous_hash,
	timestamp,
	validator_public_key,
	validator_fingerprint,
	tx_count
) VALUES`

// InsertBlocks stores block rows in ClickHouse.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.BlockRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_blocks", len(blocks), err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		if err = batch.Append(
			block.Index,
			block.Hash,
			block.PreviousHash,
			block.Timestamp,
			block.ValidatorPublicKey,
			block.ValidatorFingerprint,
			block.TxCount,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block %d: %w", block.Index, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}
