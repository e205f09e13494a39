// Package consensus implements Proof-of-Authority block production: round-robin proposer
// selection among active validators, block signing, and validator statistics.
package consensus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

type statsUpdate struct {
	validatorID string
	at          time.Time
}

// Engine produces blocks. CreateBlock calls are serialized, so selection, signing, append
// and the statistics update of one round never interleave with another round.
//
// The ledger append is the commit point of a round. If the statistics update that follows
// fails, it is queued and replayed before the next selection, so directory statistics
// converge on the chain instead of blocking production.
type Engine struct {
	ledger    Ledger
	directory ValidatorDirectory
	keys      KeyProvider
	metrics   Metrics
	logger    *zap.Logger

	mu       sync.Mutex
	deferred []statsUpdate
}

func NewEngine(
	ledger Ledger,
	directory ValidatorDirectory,
	keys KeyProvider,
	metrics Metrics,
	logger *zap.Logger,
) (*Engine, error) {
	if ledger == nil || directory == nil || keys == nil {
		return nil, errors.New("consensus engine requires ledger, validator directory and key provider")
	}
	if metrics == nil {
		return nil, errors.New("consensus metrics is required")
	}
	return &Engine{
		ledger:    ledger,
		directory: directory,
		keys:      keys,
		metrics:   metrics,
		logger:    logger.Named("consensus"),
	}, nil
}

// CreateBlock runs one proposal round with the pending pool and returns the appended block.
func (e *Engine) CreateBlock(ctx context.Context, secret string) (model.Block, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	started := time.Now()
	proposer, block, err := e.createBlock(ctx, secret)
	e.metrics.ObserveCreateBlock(proposer.ID, err, started)
	return block, err
}

func (e *Engine) createBlock(ctx context.Context, secret string) (model.Validator, model.Block, error) {
	if err := e.replayDeferredLocked(ctx); err != nil {
		return model.Validator{}, model.Block{}, fmt.Errorf("replay deferred statistics: %w", err)
	}

	active, err := e.directory.ActiveValidators(ctx)
	if err != nil {
		return model.Validator{}, model.Block{}, fmt.Errorf("list active validators: %w", err)
	}
	proposer, err := SelectProposer(active)
	if err != nil {
		return model.Validator{}, model.Block{}, err
	}
	logger := e.logger.With(zap.String("validator_id", proposer.ID), zap.String("validator", proposer.Name))

	priv, err := e.keys.PrivateKey(ctx, proposer, secret)
	if err != nil {
		return proposer, model.Block{}, fmt.Errorf("%w: obtain proposer key: %w", model.ErrAuthorization, err)
	}
	pub, err := crypto.PublicKeyFromPrivate(priv)
	if err != nil || pub != proposer.PublicKey {
		return proposer, model.Block{}, fmt.Errorf("%w: key for validator %s does not match its public key", model.ErrAuthorization, proposer.ID)
	}

	block, err := e.ledger.CreateBlock(proposer.PublicKey)
	if err != nil {
		return proposer, model.Block{}, fmt.Errorf("assemble block: %w", err)
	}
	msg, err := block.HashBytes()
	if err != nil {
		return proposer, model.Block{}, err
	}
	if block.ValidatorSignature, err = crypto.Sign(msg, priv); err != nil {
		return proposer, model.Block{}, fmt.Errorf("sign block %d: %w", block.Index, err)
	}
	if err := e.ledger.AddBlock(block); err != nil {
		return proposer, model.Block{}, fmt.Errorf("append block %d: %w", block.Index, err)
	}

	if err := e.directory.UpdateStatistics(ctx, proposer.ID, block.Timestamp); err != nil {
		e.deferred = append(e.deferred, statsUpdate{validatorID: proposer.ID, at: block.Timestamp})
		e.metrics.SetDeferredStatistics(len(e.deferred))
		logger.Warn("validator statistics update deferred", zap.Int64("index", block.Index), zap.Error(err))
	}

	logger.Info("block created",
		zap.Int64("index", block.Index),
		zap.String("hash", block.Hash),
		zap.Int("transactions", len(block.Transactions)),
	)
	return proposer, block, nil
}

// ReconcileStatistics recomputes every validator's statistics from the chain and stores
// them, discarding any queued updates. Blocks signed by unknown keys are skipped.
func (e *Engine) ReconcileStatistics(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idByKey := make(map[string]string)
	for _, v := range e.directory.List(ctx) {
		idByKey[v.PublicKey] = v.ID
	}

	stats := make(map[string]model.ValidatorStats)
	for _, b := range e.ledger.Chain() {
		if b.IsGenesis() {
			continue
		}
		id, ok := idByKey[b.ValidatorPublicKey]
		if !ok {
			e.logger.Warn("block signed by unknown validator", zap.Int64("index", b.Index),
				zap.String("key", crypto.Fingerprint(b.ValidatorPublicKey)))
			continue
		}
		at := b.Timestamp
		s := stats[id]
		s.TotalBlocksCreated++
		s.LastBlockCreatedAt = &at
		stats[id] = s
	}

	if err := e.directory.ApplyStatistics(ctx, stats); err != nil {
		return fmt.Errorf("apply validator statistics: %w", err)
	}
	e.deferred = nil
	e.metrics.SetDeferredStatistics(0)
	e.logger.Info("validator statistics reconciled", zap.Int("validators", len(stats)))
	return nil
}

// ValidateProposal is ValidateBlock plus a check that the signer is an active validator.
func (e *Engine) ValidateProposal(ctx context.Context, block, previous model.Block) error {
	if err := ValidateBlock(block, previous); err != nil {
		return err
	}
	active, err := e.directory.ActiveValidators(ctx)
	if err != nil {
		return fmt.Errorf("list active validators: %w", err)
	}
	for _, v := range active {
		if v.PublicKey == block.ValidatorPublicKey {
			return nil
		}
	}
	return fmt.Errorf("%w: block %d signed by a key that is not an active validator", model.ErrAuthorization, block.Index)
}

// DeferredStatistics reports how many statistics updates await replay.
func (e *Engine) DeferredStatistics() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.deferred)
}

func (e *Engine) replayDeferredLocked(ctx context.Context) error {
	for len(e.deferred) > 0 {
		u := e.deferred[0]
		if err := e.directory.UpdateStatistics(ctx, u.validatorID, u.at); err != nil {
			return err
		}
		e.deferred = e.deferred[1:]
		e.metrics.SetDeferredStatistics(len(e.deferred))
	}
	return nil
}
