// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once the batcher has been stopped.
var ErrStopped = errors.New("batcher stopped")

// Config controls when buffered items are flushed.
type Config struct {
	// FlushSize triggers a flush once this many items are buffered.
	FlushSize int
	// FlushInterval triggers a flush of a partial buffer.
	FlushInterval time.Duration
	// FlushesPerSecond caps flush calls. Zero or less disables the limit.
	FlushesPerSecond int
}

// FlushFunc receives a batch. The slice is reused after the call returns.
type FlushFunc[T any] func(ctx context.Context, items []T) error

// Batcher buffers items and flushes them either by size or interval.
type Batcher[T any] struct {
	cfg    Config
	flush  FlushFunc[T]
	rl     ratelimit.Limiter
	logger *zap.Logger

	itemsCh  chan T
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New constructs a Batcher. Call Start before Add.
func New[T any](logger *zap.Logger, cfg Config, flush FlushFunc[T]) *Batcher[T] {
	if cfg.FlushSize < 1 {
		cfg.FlushSize = 1
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	rl := ratelimit.NewUnlimited()
	if cfg.FlushesPerSecond > 0 {
		rl = ratelimit.New(cfg.FlushesPerSecond)
	}
	return &Batcher[T]{
		cfg:     cfg,
		flush:   flush,
		rl:      rl,
		logger:  logger,
		itemsCh: make(chan T, cfg.FlushSize*2),
		stop:    make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes whatever is buffered and waits for the loop to exit. Safe to call twice.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// Add queues an item, blocking while the buffer is full.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return ErrStopped
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.FlushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.FlushSize)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}
		b.rl.Take()
		if err := b.flush(ctx, buf); err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	// drain picks up items accepted by Add before shutdown was observed.
	drain := func() {
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
			default:
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			flush(context.WithoutCancel(ctx))
			return

		case <-b.stop:
			drain()
			flush(ctx)
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.cfg.FlushSize {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
