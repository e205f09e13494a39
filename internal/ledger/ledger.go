// Package ledger holds the chain and the pending transaction pool.
//
// A Ledger is safe for concurrent use. Mutations are serialized by a single RWMutex and
// readers receive copies, so callers can never alias chain storage. Signature checks run
// outside the lock.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/clock"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

// Ledger is an append-only chain of validator-signed blocks plus a FIFO pool of
// signed transactions waiting to be included.
type Ledger struct {
	cfg      Config
	logger   *zap.Logger
	clock    clock.Clock
	metrics  Metrics
	store    SnapshotStore
	verifier *verifier

	mu      sync.RWMutex
	chain   []model.Block
	pending []model.Transaction
	byHash  map[string]int64
	txIndex map[string]int64
}

// New creates a ledger seeded with the genesis block.
func New(cfg Config, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		cfg:     cfg,
		logger:  zap.NewNop(),
		clock:   clock.System{},
		metrics: nopMetrics{},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.Named("ledger")

	v, err := newVerifier(cfg.VerifyCacheSize, cfg.VerifyWorkers, l.metrics)
	if err != nil {
		return nil, fmt.Errorf("create verify cache: %w", err)
	}
	l.verifier = v

	if !cfg.EnforceSignatures {
		l.logger.Warn("SIGNATURE ENFORCEMENT DISABLED: unsigned transactions and blocks will be accepted")
	}
	l.resetLocked()
	return l, nil
}

// AddTransaction verifies tx and appends it to the pending pool. Duplicate ids are
// accepted; the pool does not deduplicate retransmissions.
func (l *Ledger) AddTransaction(tx model.Transaction) (err error) {
	started := time.Now()
	defer func() { l.metrics.ObserveAddTransaction(err, started) }()

	if err := tx.ValidateBasic(); err != nil {
		return err
	}
	if l.cfg.EnforceSignatures && !l.verifier.transaction(tx) {
		return fmt.Errorf("%w: transaction %s has an invalid signature", model.ErrValidation, tx.ID)
	}

	l.mu.Lock()
	l.pending = append(l.pending, tx)
	l.publishStateLocked()
	l.mu.Unlock()

	l.logger.Debug("transaction queued",
		zap.String("tx_id", tx.ID),
		zap.Stringer("type", tx.Type),
		zap.String("sender", crypto.Fingerprint(tx.SenderPublicKey)),
	)
	return nil
}

// CreateBlock assembles an unsigned candidate block from the current pool. It does not
// mutate the chain or the pool; the caller signs it and hands it to AddBlock.
func (l *Ledger) CreateBlock(proposerPublicKey string) (model.Block, error) {
	if proposerPublicKey == "" {
		return model.Block{}, fmt.Errorf("%w: proposer public key is empty", model.ErrValidation)
	}

	l.mu.RLock()
	latest := l.chain[len(l.chain)-1]
	txs := slices.Clone(l.pending)
	l.mu.RUnlock()

	if txs == nil {
		txs = []model.Transaction{}
	}
	b := model.Block{
		Index:              latest.Index + 1,
		Timestamp:          l.clock.Now().UTC(),
		PreviousHash:       latest.Hash,
		Transactions:       txs,
		ValidatorPublicKey: proposerPublicKey,
	}
	b.Hash = b.ComputeHash()
	return b, nil
}

// AddBlock appends a signed block. On success exactly the included transactions leave
// the pool; transactions submitted after the block was assembled stay pending. On
// failure the ledger is unchanged.
func (l *Ledger) AddBlock(block model.Block) (err error) {
	started := time.Now()
	defer func() { l.metrics.ObserveAddBlock(err, len(block.Transactions), started) }()

	block = block.Clone()
	if err := l.checkBlockContent(context.Background(), block); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	latest := l.chain[len(l.chain)-1]
	if block.Index != latest.Index+1 {
		return fmt.Errorf("%w: block index %d does not follow latest index %d", model.ErrConsistency, block.Index, latest.Index)
	}
	if block.PreviousHash != latest.Hash {
		return fmt.Errorf("%w: block %d previous hash does not match latest block hash", model.ErrConsistency, block.Index)
	}

	l.appendLocked(block)
	l.pending = removeIncluded(l.pending, block.Transactions)
	l.publishStateLocked()

	l.logger.Info("block appended",
		zap.Int64("index", block.Index),
		zap.String("hash", block.Hash),
		zap.Int("transactions", len(block.Transactions)),
		zap.String("validator", crypto.Fingerprint(block.ValidatorPublicKey)),
	)
	return nil
}

// ValidateChain walks the whole chain and returns the first failure.
func (l *Ledger) ValidateChain() (err error) {
	started := time.Now()
	defer func() { l.metrics.ObserveValidateChain(err, started) }()

	l.mu.RLock()
	chain := l.chain
	l.mu.RUnlock()

	return validateChain(context.Background(), chain, l.cfg.EnforceSignatures, l.verifier)
}

// IsValidChain reports chain validity together with a human-readable reason.
func (l *Ledger) IsValidChain() (bool, string) {
	if err := l.ValidateChain(); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// Chain returns a copy of every block, genesis first.
func (l *Ledger) Chain() []model.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return model.CloneBlocks(l.chain)
}

// PendingTransactions returns a copy of the pool in arrival order.
func (l *Ledger) PendingTransactions() []model.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := slices.Clone(l.pending)
	if out == nil {
		out = []model.Transaction{}
	}
	return out
}

func (l *Ledger) PendingCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.pending)
}

func (l *Ledger) LatestBlock() model.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chain[len(l.chain)-1].Clone()
}

// Height is the index of the latest block; a fresh ledger has height 0.
func (l *Ledger) Height() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chain[len(l.chain)-1].Index
}

func (l *Ledger) BlockByIndex(index int64) (model.Block, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index < 0 || index >= int64(len(l.chain)) {
		return model.Block{}, false
	}
	return l.chain[index].Clone(), true
}

func (l *Ledger) BlockByHash(hash string) (model.Block, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx, ok := l.byHash[hash]
	if !ok {
		return model.Block{}, false
	}
	return l.chain[idx].Clone(), true
}

// TransactionByID returns the first confirmed transaction with id and its block index.
func (l *Ledger) TransactionByID(id string) (model.Transaction, int64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx, ok := l.txIndex[id]
	if !ok {
		return model.Transaction{}, 0, false
	}
	for _, tx := range l.chain[idx].Transactions {
		if tx.ID == id {
			return tx, idx, true
		}
	}
	return model.Transaction{}, 0, false
}

// Reset drops every block after genesis and clears the pool.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetLocked()
}

// checkBlockContent runs the lock-free part of block validation: hash and signatures.
func (l *Ledger) checkBlockContent(ctx context.Context, block model.Block) error {
	if block.Hash != block.ComputeHash() {
		return fmt.Errorf("%w: block %d hash does not match its contents", model.ErrConsistency, block.Index)
	}
	for _, tx := range block.Transactions {
		if err := tx.ValidateBasic(); err != nil {
			return fmt.Errorf("block %d: %w", block.Index, err)
		}
	}
	if !l.cfg.EnforceSignatures {
		return nil
	}
	if !l.verifier.block(block) {
		return fmt.Errorf("%w: block %d has an invalid validator signature", model.ErrValidation, block.Index)
	}
	bad, err := l.verifier.firstInvalid(ctx, block.Transactions)
	if err != nil {
		return fmt.Errorf("verify block %d transactions: %w", block.Index, err)
	}
	if bad >= 0 {
		return fmt.Errorf("%w: block %d transaction %s has an invalid signature",
			model.ErrValidation, block.Index, block.Transactions[bad].ID)
	}
	return nil
}

func (l *Ledger) resetLocked() {
	l.chain = make([]model.Block, 0, 64)
	l.pending = nil
	l.byHash = make(map[string]int64)
	l.txIndex = make(map[string]int64)
	l.appendLocked(model.NewGenesisBlock())
	l.publishStateLocked()
}

func (l *Ledger) appendLocked(b model.Block) {
	l.chain = append(l.chain, b)
	l.byHash[b.Hash] = b.Index
	for _, tx := range b.Transactions {
		if _, seen := l.txIndex[tx.ID]; !seen {
			l.txIndex[tx.ID] = b.Index
		}
	}
}

func (l *Ledger) publishStateLocked() {
	l.metrics.SetState(l.chain[len(l.chain)-1].Index, len(l.pending))
}

// removeIncluded drops one pool entry per included transaction, matching on the full
// signed record so retransmitted duplicates are counted individually.
func removeIncluded(pending, included []model.Transaction) []model.Transaction {
	if len(included) == 0 {
		return pending
	}
	counts := make(map[string]int, len(included))
	for _, tx := range included {
		counts[tx.Digest()]++
	}
	kept := make([]model.Transaction, 0, len(pending))
	for _, tx := range pending {
		d := tx.Digest()
		if counts[d] > 0 {
			counts[d]--
			continue
		}
		kept = append(kept, tx)
	}
	return kept
}

var errEmptyChain = errors.New("chain is empty")
