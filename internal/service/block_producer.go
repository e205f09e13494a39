package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/clock"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

// ProducerConfig tunes the block producer. Zero durations fall back to defaults.
type ProducerConfig struct {
	Secret        string
	Interval      time.Duration
	RetryInterval time.Duration
}

// BlockProducerService proposes a block whenever transactions are pending, persists the
// ledger and only then dispatches the block to contracts, event sinks and the archive.
// Blocks that could not be persisted stay in a backlog and are dispatched after the next
// successful save. The index of each dispatched block is recorded by a DispatchCursor so
// Recover can tell, after a restart, which persisted blocks never reached the contracts.
type BlockProducerService struct {
	logger        *zap.Logger
	metrics       BlockProducerMetrics
	sleep         func(context.Context, time.Duration) error
	interval      time.Duration
	retryInterval time.Duration
	secret        string
	wake          <-chan struct{}

	ledger    Ledger
	proposer  BlockProposer
	contracts ContractExecutor
	suppliers SupplierLookup
	events    EventSink
	archiver  BlockArchiver
	cursor    DispatchCursor

	backlog []model.Block
}

// NewBlockProducerService builds a BlockProducerService. archiver may be nil.
func NewBlockProducerService(
	ledger Ledger,
	proposer BlockProposer,
	contracts ContractExecutor,
	suppliers SupplierLookup,
	events EventSink,
	archiver BlockArchiver,
	cursor DispatchCursor,
	metrics BlockProducerMetrics,
	cfg ProducerConfig,
	logger *zap.Logger,
	wake <-chan struct{},
) (*BlockProducerService, error) {
	if ledger == nil || proposer == nil || contracts == nil {
		return nil, errors.New("block producer requires ledger, proposer and contract executor")
	}
	if suppliers == nil || events == nil {
		return nil, errors.New("block producer requires supplier lookup and event sink")
	}
	if cursor == nil {
		return nil, errors.New("block producer requires a dispatch cursor")
	}
	if metrics == nil {
		return nil, errors.New("block producer metrics is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = produceInterval
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = retryInterval
	}

	return &BlockProducerService{
		logger:        logger.Named("block_producer"),
		metrics:       metrics,
		sleep:         clock.SleepWithContext,
		interval:      cfg.Interval,
		retryInterval: cfg.RetryInterval,
		secret:        cfg.Secret,
		wake:          wake,
		ledger:        ledger,
		proposer:      proposer,
		contracts:     contracts,
		suppliers:     suppliers,
		events:        events,
		archiver:      archiver,
		cursor:        cursor,
	}, nil
}

// Recover rebuilds contract state from the persisted chain before Run. Blocks up to the
// dispatch cursor are replayed without publishing; later blocks were persisted but never
// dispatched and go to the backlog, so the first round dispatches them in full.
func (s *BlockProducerService) Recover(ctx context.Context, chain []model.Block) error {
	dispatched, err := s.cursor.Dispatched(ctx)
	if err != nil {
		return fmt.Errorf("read dispatch cursor: %w", err)
	}
	if n := len(chain); n > 0 && dispatched > chain[n-1].Index {
		// The chain on disk is shorter than the cursor, e.g. after falling back to genesis.
		s.logger.Warn("dispatch cursor is ahead of the chain; rewinding",
			zap.Int64("dispatched", dispatched), zap.Int64("height", chain[n-1].Index))
		dispatched = chain[n-1].Index
		if err := s.cursor.MarkDispatched(ctx, dispatched); err != nil {
			return fmt.Errorf("rewind dispatch cursor: %w", err)
		}
	}

	cut := 0
	for cut < len(chain) && chain[cut].Index <= dispatched {
		cut++
	}
	if err := ReplayBlocks(ctx, s.contracts, s.suppliers, chain[:cut], s.logger); err != nil {
		return fmt.Errorf("replay dispatched blocks: %w", err)
	}
	for _, b := range chain[cut:] {
		if b.Index == 0 {
			continue
		}
		s.backlog = append(s.backlog, b)
	}

	if len(s.backlog) > 0 {
		s.logger.Warn("persisted blocks were never dispatched; queued",
			zap.Int("blocks", len(s.backlog)), zap.Int64("from", s.backlog[0].Index))
	}
	s.logger.Info("contract state recovered", zap.Int("replayed", cut), zap.Int64("dispatched", dispatched))
	return nil
}

// Run produces blocks until the context is canceled.
func (s *BlockProducerService) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("production round failed, backing off", zap.Error(err), zap.Duration("sleep", s.retryInterval))
			if sleepErr := s.sleep(ctx, s.retryInterval); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *BlockProducerService) run(ctx context.Context) error {
	if len(s.backlog) == 0 {
		if s.ledger.PendingCount() == 0 {
			s.logger.Debug("no pending transactions; sleeping", zap.Duration("sleep", s.interval))
			return s.wait(ctx, s.interval)
		}

		started := time.Now()
		block, err := s.proposer.CreateBlock(ctx, s.secret)
		s.metrics.ObserveProduce(err, started)
		if err != nil {
			return fmt.Errorf("create block: %w", err)
		}
		s.backlog = append(s.backlog, block)
	}

	if err := s.ledger.Save(ctx); err != nil {
		return fmt.Errorf("persist ledger with %d undispatched blocks: %w", len(s.backlog), err)
	}

	for len(s.backlog) > 0 {
		block := s.backlog[0]
		if err := s.dispatch(ctx, block); err != nil {
			return err
		}
		s.backlog = s.backlog[1:]
		if err := s.cursor.MarkDispatched(ctx, block.Index); err != nil {
			// Contracts already ran; retrying would execute the block twice.
			s.logger.Error("dispatch cursor not advanced", zap.Int64("index", block.Index), zap.Error(err))
		}
	}
	return s.wait(ctx, s.interval)
}

// dispatch routes every transaction of a persisted block through the contract pipeline.
// Supplier data is resolved for the whole block first so a lookup failure leaves the
// block untouched for a retry.
func (s *BlockProducerService) dispatch(ctx context.Context, block model.Block) error {
	logger := s.logger.With(zap.Int64("index", block.Index), zap.String("hash", block.Hash))

	additional := make([]map[string]any, len(block.Transactions))
	for i, tx := range block.Transactions {
		data, err := s.suppliers.AdditionalData(ctx, tx)
		if err != nil {
			return fmt.Errorf("resolve additional data for tx %s: %w", tx.ID, err)
		}
		additional[i] = data
	}

	for i, tx := range block.Transactions {
		for _, res := range s.contracts.ExecuteTransaction(ctx, tx, additional[i]) {
			if !res.Success {
				logger.Info("contract rejected transaction",
					zap.String("contract_id", res.ContractID),
					zap.String("tx_id", tx.ID),
					zap.Bool("fault", res.Fault),
					zap.String("message", res.Message),
				)
			}
			if len(res.Events) == 0 {
				continue
			}
			if err := s.events.Publish(ctx, block, tx, res); err != nil {
				logger.Error("publish contract events failed", zap.String("tx_id", tx.ID), zap.Error(err))
				continue
			}
			for _, e := range res.Events {
				s.metrics.ObserveEvent(e.Name)
			}
		}
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, block); err != nil {
			logger.Error("archive block failed", zap.Error(err))
		}
	}
	logger.Info("block dispatched", zap.Int("transactions", len(block.Transactions)))
	return nil
}

func (s *BlockProducerService) wait(ctx context.Context, d time.Duration) error {
	if s.wake == nil {
		return s.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.wake:
		return nil
	case <-timer.C:
		return nil
	}
}
