// Package consumer reads analytics records from the stream and persists them one at a time.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/stream"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/pkg/batcher"
	"go.uber.org/zap"
)

// Service links a stream reader to a single persistence worker through a bounded queue.
type Service struct {
	logger  *zap.Logger
	reader  Reader
	store   Store
	mirror  Mirror
	metrics Metrics
	sleep   func(context.Context, time.Duration) error
}

// NewService builds a Service. mirror may be nil.
func NewService(reader Reader, store Store, mirror Mirror, metrics Metrics, logger *zap.Logger) (*Service, error) {
	if reader == nil {
		return nil, errors.New("stream reader is required")
	}
	if store == nil {
		return nil, errors.New("store is required")
	}
	if metrics == nil {
		return nil, errors.New("consumer metrics is required")
	}
	return &Service{
		logger:  logger.Named("consumer"),
		reader:  reader,
		store:   store,
		mirror:  mirror,
		metrics: metrics,
		sleep:   clock.SleepWithContext,
	}, nil
}

// Run reads until ctx is canceled. Messages already queued are persisted before it returns.
func (s *Service) Run(ctx context.Context) error {
	queue := make(chan model.AnalyticsMessage, queueCapacity)

	var mirror *batcher.Batcher[model.AnalyticsMessage]
	if s.mirror != nil {
		mirror = batcher.New[model.AnalyticsMessage](
			s.logger.Named("mirror"),
			s.mirror.InsertAnalytics,
			mirrorFlushSize,
			batcher.WithQueueSize(mirrorQueueSize),
			batcher.WithFlushInterval(mirrorFlushInterval),
			batcher.WithRateLimit(mirrorInsertsPerSecond),
		)
		// Lives until Stop so the worker can still hand over messages while draining the queue.
		mirror.Start(context.WithoutCancel(ctx))
		defer mirror.Stop()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.persistLoop(context.WithoutCancel(ctx), queue, mirror)
	}()

	err := s.readLoop(ctx, queue)
	close(queue)
	wg.Wait()
	return err
}

func (s *Service) readLoop(ctx context.Context, queue chan<- model.AnalyticsMessage) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		records, err := s.reader.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("stream read failed", zap.Error(err), zap.Duration("backoff", readErrorBackoff))
			if err := s.sleep(ctx, readErrorBackoff); err != nil {
				return err
			}
			continue
		}

		for _, rec := range records {
			msg, err := decode(rec)
			if err != nil {
				s.metrics.ObserveRecord(outcomeInvalid)
				s.logger.Warn("record skipped", zap.String("id", rec.ID), zap.Error(err))
				continue
			}
			s.metrics.ObserveRecord(outcomeDecoded)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case queue <- msg:
				s.metrics.SetQueueDepth(len(queue))
			}
		}
	}
}

func (s *Service) persistLoop(ctx context.Context, queue <-chan model.AnalyticsMessage, mirror *batcher.Batcher[model.AnalyticsMessage]) {
	for msg := range queue {
		s.metrics.SetQueueDepth(len(queue))
		if err := s.persist(ctx, msg); err != nil {
			s.logger.Error("message dropped",
				zap.Uint64("height", msg.Height),
				zap.String("hash", msg.BlockHash),
				zap.Error(err),
			)
			continue
		}
		if mirror != nil {
			if err := mirror.Add(ctx, msg); err != nil {
				s.logger.Warn("message not mirrored", zap.String("hash", msg.BlockHash), zap.Error(err))
			}
		}
	}
}

func (s *Service) persist(ctx context.Context, msg model.AnalyticsMessage) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObservePersist(err, started)
	}()

	if err = s.store.SaveAnalytics(ctx, msg); err != nil {
		return err
	}
	s.logger.Debug("message persisted", zap.Uint64("height", msg.Height), zap.String("hash", msg.BlockHash))
	return nil
}

func decode(rec stream.Record) (model.AnalyticsMessage, error) {
	var msg model.AnalyticsMessage
	if err := json.Unmarshal(rec.Body, &msg); err != nil {
		return model.AnalyticsMessage{}, fmt.Errorf("decode record: %w", err)
	}
	if err := msg.Validate(); err != nil {
		return model.AnalyticsMessage{}, err
	}
	return msg, nil
}
