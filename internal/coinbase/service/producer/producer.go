// Package producer polls a block source and publishes one analytics message per new block.
package producer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/pkg/batcher"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/pkg/workerpool"
	"go.uber.org/zap"
)

// Config tunes the polling loop.
type Config struct {
	PollInterval time.Duration
	FetchWorkers int
	// Halvings is optional; when set, blocks opening a subsidy era are logged.
	Halvings HalvingSchedule
}

// Service runs the poll loop and the batching stage.
type Service struct {
	logger       *zap.Logger
	source       BlockSource
	publisher    Publisher
	notifier     Notifier
	metrics      Metrics
	processor    *blockProcessor
	recent       *recentSet
	pollInterval time.Duration
	fetchWorkers int
	blockSignal  <-chan struct{}
	wait         func(context.Context, time.Duration, <-chan struct{}) error
}

// NewService builds a Service. notifier and blockSignal may be nil.
func NewService(
	source BlockSource,
	builder MessageBuilder,
	publisher Publisher,
	notifier Notifier,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Service, error) {
	if source == nil {
		return nil, errors.New("block source is required")
	}
	if builder == nil {
		return nil, errors.New("message builder is required")
	}
	if publisher == nil {
		return nil, errors.New("publisher is required")
	}
	if metrics == nil {
		return nil, errors.New("producer metrics is required")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = defaultFetchWorkers
	}

	logger = logger.Named("producer")
	return &Service{
		logger:       logger,
		source:       source,
		publisher:    publisher,
		notifier:     notifier,
		metrics:      metrics,
		recent:       newRecentSet(recentCapacity),
		pollInterval: cfg.PollInterval,
		fetchWorkers: cfg.FetchWorkers,
		blockSignal:  blockSignal,
		wait:         clock.WaitWithSignal,
		processor: &blockProcessor{
			source:   source,
			builder:  builder,
			halvings: cfg.Halvings,
			logger:   logger.Named("blockProcessor"),
		},
	}, nil
}

// Run polls until ctx is canceled. Messages still queued at shutdown are flushed before it returns.
func (s *Service) Run(ctx context.Context) error {
	b := batcher.New[model.AnalyticsMessage](
		s.logger.Named("batcher"),
		s.publish,
		batchSize,
		batcher.WithQueueSize(queueCapacity),
	)
	b.Start(ctx)
	defer b.Stop()

	s.logger.Info("producer started",
		zap.Duration("poll_interval", s.pollInterval),
		zap.Int("fetch_workers", s.fetchWorkers),
	)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.cycle(ctx, b); err != nil && ctx.Err() == nil {
			s.logger.Warn("polling cycle failed", zap.Error(err))
		}
		if err := s.wait(ctx, s.pollInterval, s.blockSignal); err != nil {
			return err
		}
	}
}

type enqueuer interface {
	Add(ctx context.Context, msg model.AnalyticsMessage) error
}

func (s *Service) cycle(ctx context.Context, queue enqueuer) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveCycle(err, started)
	}()

	blocks, err := s.source.LatestBlocks(ctx)
	if err != nil {
		return fmt.Errorf("fetch latest blocks: %w", err)
	}

	fresh := make([]model.Block, 0, len(blocks))
	for _, block := range blocks {
		if s.recent.Contains(block.ID) {
			s.metrics.ObserveBlock(outcomeSeen)
			continue
		}
		fresh = append(fresh, block)
	}
	if len(fresh) == 0 {
		s.logger.Debug("no new blocks")
		return nil
	}

	results, err := workerpool.Map(ctx, s.fetchWorkers, fresh, s.processor.Process)
	if err != nil {
		return err
	}

	enqueued := 0
	for i, res := range results {
		block := fresh[i]
		if res.Err != nil {
			s.metrics.ObserveBlock(outcomeOf(res.Err))
			s.logger.Warn("block skipped",
				zap.Uint64("height", block.Height),
				zap.String("hash", block.ID),
				zap.Error(res.Err),
			)
			continue
		}
		if !s.recent.Add(block.ID) {
			s.metrics.ObserveBlock(outcomeSeen)
			continue
		}
		if err := queue.Add(ctx, res.Value); err != nil {
			s.recent.Remove(block.ID)
			return fmt.Errorf("enqueue block %s: %w", block.ID, err)
		}
		s.metrics.ObserveBlock(outcomeBuilt)
		enqueued++
	}

	s.logger.Info("polling cycle finished",
		zap.Int("blocks", len(blocks)),
		zap.Int("enqueued", enqueued),
	)
	return nil
}

// publish hands one batch to the broker. A failed batch is dropped; its blocks are forgotten so a
// later poll can pick them up again.
func (s *Service) publish(ctx context.Context, msgs []model.AnalyticsMessage) error {
	res := s.publisher.PublishBatch(ctx, msgs)
	s.metrics.ObserveBatch(res.Err, len(msgs))
	if res.OK() {
		s.logger.Info("batch published", zap.Int("size", len(msgs)))
		return nil
	}

	for _, msg := range msgs {
		s.recent.Remove(msg.BlockHash)
	}
	err := fmt.Errorf("publish batch (%s): %w", res.Status, res.Err)
	s.notify(ctx, fmt.Sprintf("analytics batch of %d messages dropped: %v", len(msgs), res.Err))
	return err
}

func (s *Service) notify(ctx context.Context, text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, text); err != nil {
		s.logger.Warn("notification not sent", zap.Error(err))
	}
}
