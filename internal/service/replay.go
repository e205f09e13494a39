package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

// ReplayBlocks runs every transaction of blocks, in chain order, through contracts without
// publishing anything. It rebuilds contract state; contract faults are logged and skipped.
func ReplayBlocks(ctx context.Context, contracts ContractExecutor, suppliers SupplierLookup, blocks []model.Block, logger *zap.Logger) error {
	for _, b := range blocks {
		for _, tx := range b.Transactions {
			additional, err := suppliers.AdditionalData(ctx, tx)
			if err != nil {
				return fmt.Errorf("supplier data for %s: %w", tx.ID, err)
			}
			for _, res := range contracts.ExecuteTransaction(ctx, tx, additional) {
				if res.Fault {
					logger.Warn("contract fault during replay",
						zap.Int64("block", b.Index),
						zap.String("tx", tx.ID),
						zap.String("contract", res.ContractID),
						zap.String("message", res.Message),
					)
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
