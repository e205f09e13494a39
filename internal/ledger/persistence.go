package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

var errNoStore = errors.New("no snapshot store configured")

// Save writes a snapshot of the chain and the pool. The state is captured under the read
// lock and written after releasing it, so appends are not blocked by disk I/O.
func (l *Ledger) Save(ctx context.Context) error {
	if l.store == nil {
		return fmt.Errorf("%w: %w", model.ErrPersistence, errNoStore)
	}

	l.mu.RLock()
	snap := model.Snapshot{
		Chain:               slices.Clone(l.chain),
		PendingTransactions: slices.Clone(l.pending),
		SavedAt:             l.clock.Now().UTC(),
		Version:             model.SnapshotVersion,
	}
	l.mu.RUnlock()
	if snap.PendingTransactions == nil {
		snap.PendingTransactions = []model.Transaction{}
	}

	if err := l.store.Save(ctx, snap); err != nil {
		return asPersistence(fmt.Errorf("save snapshot: %w", err))
	}
	l.logger.Debug("snapshot saved",
		zap.Int("blocks", len(snap.Chain)),
		zap.Int("pending", len(snap.PendingTransactions)),
	)
	return nil
}

// Load replaces the in-memory state with the stored snapshot. It returns false with a nil
// error when no snapshot exists, leaving the genesis-only ledger in place. A snapshot that
// fails validation resets the ledger to genesis and returns an error wrapping
// model.ErrConsistency.
func (l *Ledger) Load(ctx context.Context) (bool, error) {
	if l.store == nil {
		return false, fmt.Errorf("%w: %w", model.ErrPersistence, errNoStore)
	}

	snap, err := l.store.Load(ctx)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Info("no snapshot found, starting from genesis")
		return false, nil
	case errors.Is(err, model.ErrConsistency):
		l.Reset()
		return false, fmt.Errorf("load snapshot: %w", err)
	case err != nil:
		return false, asPersistence(fmt.Errorf("load snapshot: %w", err))
	}

	if err := l.validateSnapshot(ctx, snap); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		l.Reset()
		l.logger.Error("snapshot rejected, ledger reset to genesis", zap.Error(err))
		return false, err
	}

	l.mu.Lock()
	l.chain = make([]model.Block, 0, len(snap.Chain)+64)
	l.byHash = make(map[string]int64, len(snap.Chain))
	l.txIndex = make(map[string]int64)
	for _, b := range snap.Chain {
		l.appendLocked(b.Clone())
	}
	l.pending = slices.Clone(snap.PendingTransactions)
	l.publishStateLocked()
	l.mu.Unlock()

	l.logger.Info("snapshot loaded",
		zap.Int("blocks", len(snap.Chain)),
		zap.Int("pending", len(snap.PendingTransactions)),
		zap.Time("saved_at", snap.SavedAt),
	)
	return true, nil
}

func (l *Ledger) validateSnapshot(ctx context.Context, snap model.Snapshot) error {
	if snap.Version != model.SnapshotVersion {
		return fmt.Errorf("%w: unsupported snapshot version %q", model.ErrConsistency, snap.Version)
	}
	if err := validateChain(ctx, snap.Chain, l.cfg.EnforceSignatures, l.verifier); err != nil {
		if errors.Is(err, model.ErrValidation) {
			return fmt.Errorf("%w: %w", model.ErrConsistency, err)
		}
		return err
	}
	for _, tx := range snap.PendingTransactions {
		if err := tx.ValidateBasic(); err != nil {
			return fmt.Errorf("%w: pending %w", model.ErrConsistency, err)
		}
		if l.cfg.EnforceSignatures && !l.verifier.transaction(tx) {
			return fmt.Errorf("%w: pending transaction %s has an invalid signature", model.ErrConsistency, tx.ID)
		}
	}
	return nil
}

func asPersistence(err error) error {
	if errors.Is(err, model.ErrPersistence) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", model.ErrPersistence, err)
}
