// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Option configures a Batcher.
type Option func(*options)

type options struct {
	queueSize     int
	flushInterval time.Duration
	rps           int
}

// WithQueueSize bounds the number of items waiting to be batched. A full queue blocks Add.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithFlushInterval flushes partial batches periodically. Zero disables periodic flushing.
func WithFlushInterval(d time.Duration) Option {
	return func(o *options) {
		o.flushInterval = d
	}
}

// WithRateLimit caps flushes per second. Zero means unlimited.
func WithRateLimit(rps int) Option {
	return func(o *options) {
		o.rps = rps
	}
}

// Batcher buffers items and flushes them either by size or interval.
// A batch whose flush fails is logged and discarded.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	itemsCh       chan T
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once

	// done closes when the run loop stops accepting items; mu fences Add against the final drain.
	mu   sync.RWMutex
	done chan struct{}
}

// New constructs a Batcher.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, flushSize int, opts ...Option) *Batcher[T] {
	if flushSize <= 0 {
		flushSize = 1
	}
	o := options{queueSize: flushSize * 2}
	for _, opt := range opts {
		opt(&o)
	}

	rl := ratelimit.NewUnlimited()
	if o.rps > 0 {
		rl = ratelimit.New(o.rps)
	}

	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		itemsCh:       make(chan T, o.queueSize),
		flushSize:     flushSize,
		flushInterval: o.flushInterval,
		rl:            rl,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop stops the background flushing loop and flushes what is buffered.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

// Len reports how many items wait in the queue.
func (b *Batcher[T]) Len() int {
	return len(b.itemsCh)
}

// Add queues an item for batching, respecting context cancellation. Once the batcher has stopped,
// Add fails instead of queueing an item nobody would flush.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	select {
	case <-b.stop:
		return context.Canceled
	case <-b.done:
		return context.Canceled
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return context.Canceled
	case <-b.done:
		return context.Canceled
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	var tick <-chan time.Time
	if b.flushInterval > 0 {
		ticker := time.NewTicker(b.flushInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	buf := make([]T, 0, b.flushSize)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		err := b.flushCallback(ctx, buf)
		if err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = make([]T, 0, b.flushSize)
	}

	drain := func() {
		close(b.done)
		b.mu.Lock()
		b.mu.Unlock() //nolint:staticcheck // barrier: in-flight Adds finish before the final drain
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
				if len(buf) >= b.flushSize {
					flush(context.WithoutCancel(ctx))
				}
			default:
				flush(context.WithoutCancel(ctx))
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return

		case <-b.stop:
			drain()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.flushSize {
				flush(ctx)
			}

		case <-tick:
			flush(ctx)
		}
	}
}
