// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// ErrStopped is returned by Add once Stop has been called.
var ErrStopped = errors.New("batcher stopped")

// Config controls when a batch is flushed.
type Config struct {
	// Size flushes as soon as this many items are buffered.
	Size int
	// Interval flushes whatever is buffered at this period.
	Interval time.Duration
	// FlushesPerSecond caps flush calls. Zero means unlimited.
	FlushesPerSecond int
}

// Batcher buffers items and flushes them either by size or interval.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	itemsCh       chan T
	cfg           Config
	clock         clock.Clock
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Batcher. A nil clock means the wall clock.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, cfg Config, clk clock.Clock) *Batcher[T] {
	if cfg.Size < 1 {
		cfg.Size = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if clk == nil {
		clk = clock.New()
	}
	rl := ratelimit.NewUnlimited()
	if cfg.FlushesPerSecond > 0 {
		rl = ratelimit.New(cfg.FlushesPerSecond)
	}
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		itemsCh:       make(chan T, cfg.Size*2),
		cfg:           cfg,
		clock:         clk,
		rl:            rl,
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	ticker := b.clock.Ticker(b.cfg.Interval)
	b.wg.Add(1)
	go b.run(ctx, ticker)
}

// Stop flushes everything already queued and waits for the loop to exit.
// It is safe to call more than once.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() {
		close(b.stop)
	})
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
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

func (b *Batcher[T]) run(ctx context.Context, ticker *clock.Ticker) {
	defer b.wg.Done()
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.Size)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		err := b.flushCallback(ctx, buf)
		if err != nil {
			b.logger.Error("batch not flushed", zap.Error(err), zap.Int("size", len(buf)))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	// drain hands over what producers managed to queue before shutdown.
	drain := func(ctx context.Context) {
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
				if len(buf) >= b.cfg.Size {
					flush(ctx)
				}
			default:
				flush(ctx)
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain(context.WithoutCancel(ctx))
			return

		case <-b.stop:
			drain(ctx)
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.cfg.Size {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
