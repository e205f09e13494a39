package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

const insertTransactionsQuery = `
INSERT INTO ledger_transactions (
	tx_id,
	block_index,
	block_hash,
	position,
	type,
	timestamp,
	sender_public_key,
	sender_fingerprint,
	shipment_id,
	payload,
	signature
) VALUES`

// InsertTransactions stores confirmed transaction rows in ClickHouse.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.TransactionRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", len(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTransactionsQuery)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, tx := range txs {
		if err = batch.Append(
			tx.TxID,
			tx.BlockIndex,
			tx.BlockHash,
			tx.Position,
			tx.Type,
			tx.Timestamp,
			tx.SenderPublicKey,
			tx.SenderFingerprint,
			tx.ShipmentID,
			tx.Payload,
			tx.Signature,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append transaction %s: %w", tx.TxID, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}
