package ledger

import (
	"context"
	"fmt"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

// validateChain checks genesis, then index, link, hash and signatures of every block in
// order. Transaction signatures inside one block are verified concurrently, but the
// reported failure is always the earliest one.
func validateChain(ctx context.Context, chain []model.Block, enforce bool, v *verifier) error {
	if len(chain) == 0 {
		return fmt.Errorf("%w: %w", model.ErrConsistency, errEmptyChain)
	}

	genesis := chain[0]
	switch {
	case genesis.Index != 0:
		return fmt.Errorf("%w: genesis block has index %d", model.ErrConsistency, genesis.Index)
	case genesis.PreviousHash != model.GenesisPreviousHash:
		return fmt.Errorf("%w: genesis block has previous hash %q", model.ErrConsistency, genesis.PreviousHash)
	case genesis.Hash != model.NewGenesisBlock().Hash:
		return fmt.Errorf("%w: genesis block hash is not the canonical genesis hash", model.ErrConsistency)
	}

	for i := 1; i < len(chain); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		b, prev := chain[i], chain[i-1]
		switch {
		case b.Index != int64(i):
			return fmt.Errorf("%w: block at position %d has index %d", model.ErrConsistency, i, b.Index)
		case b.PreviousHash != prev.Hash:
			return fmt.Errorf("%w: block %d previous hash does not match block %d hash", model.ErrConsistency, i, i-1)
		case b.Hash != b.ComputeHash():
			return fmt.Errorf("%w: block %d hash does not match its contents", model.ErrConsistency, i)
		}
		for _, tx := range b.Transactions {
			if err := tx.ValidateBasic(); err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
		}
		if !enforce {
			continue
		}
		if !v.block(b) {
			return fmt.Errorf("%w: block %d has an invalid validator signature", model.ErrValidation, i)
		}
		bad, err := v.firstInvalid(ctx, b.Transactions)
		if err != nil {
			return fmt.Errorf("verify block %d transactions: %w", i, err)
		}
		if bad >= 0 {
			return fmt.Errorf("%w: block %d transaction %s has an invalid signature",
				model.ErrValidation, i, b.Transactions[bad].ID)
		}
	}
	return nil
}
