package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/analytics"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/esplora"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/reward"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/service/consumer"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/service/producer"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/store/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/store/postgres"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/stream"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/metrics"
	"go.uber.org/zap"
)

var errDatabaseUnavailable = errors.New("database unavailable")

type task = func(ctx context.Context) error

func newProducer(ctx context.Context, cfg config, client *stream.Client, logger *zap.Logger) (task, func(), error) {
	params, err := reward.ParamsForNetwork(cfg.Network)
	if err != nil {
		return nil, nil, err
	}
	logger = logger.With(zap.String("network", string(cfg.Network)))

	source, closeSource, err := newSource(cfg, params, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := []func(){closeSource}
	release := func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}

	var notifier producer.Notifier
	if cfg.Notifications {
		n, err := stream.NewNotifier(client, cfg.NotificationsStream, cfg.StreamMaxLen, logger)
		if err != nil {
			release()
			return nil, nil, err
		}
		cleanup = append(cleanup, func() {
			if err := n.Close(); err != nil {
				logger.Warn("close notifier", zap.Error(err))
			}
		})
		notifier = n
	}

	signal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		release()
		return nil, nil, err
	}

	publisher := stream.NewPublisher(
		client,
		cfg.AnalyticsStream,
		stream.PublisherOptions{MaxLen: cfg.StreamMaxLen},
		metrics.NewStream(cfg.AnalyticsStream),
	)
	logger.Info("producer publishing", zap.String("stream", publisher.Stream()), zap.String("source", string(cfg.Source)))

	calc := reward.NewCalculator(params)
	svc, err := producer.NewService(
		source,
		analytics.NewBuilder(calc),
		publisher,
		notifier,
		metrics.NewProducer(string(cfg.Source)),
		producer.Config{
			PollInterval: cfg.PollInterval,
			FetchWorkers: cfg.FetchWorkers,
			Halvings:     calc,
		},
		logger,
		signal,
	)
	if err != nil {
		release()
		return nil, nil, err
	}
	return svc.Run, release, nil
}

func newConsumer(ctx context.Context, cfg config, client *stream.Client, offset stream.Offset, logger *zap.Logger) (task, func(), error) {
	pool, err := postgres.Connect(ctx, cfg.PostgresDSN, postgres.PoolOptions{
		MaxConns:       cfg.DBMaxConns,
		AcquireTimeout: cfg.DBAcquireTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errDatabaseUnavailable, err)
	}
	cleanup := []func(){pool.Close}
	release := func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}

	var mirror consumer.Mirror
	if repo := newMirror(ctx, cfg.ClickhouseDSN, logger); repo != nil {
		cleanup = append(cleanup, func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close clickhouse", zap.Error(err))
			}
		})
		mirror = repo
	}

	reader := stream.NewReader(
		client,
		cfg.AnalyticsStream,
		offset,
		stream.ReaderOptions{},
		metrics.NewStream(cfg.AnalyticsStream),
	)
	logger.Info("consumer reading", zap.String("stream", reader.Stream()), zap.String("offset", cfg.ConsumerOffset))
	svc, err := consumer.NewService(
		reader,
		postgres.NewStore(pool, cfg.DBOpTimeout, metrics.NewPostgresStore(), logger),
		mirror,
		metrics.NewConsumer(cfg.AnalyticsStream),
		logger,
	)
	if err != nil {
		release()
		return nil, nil, err
	}
	return svc.Run, release, nil
}

// newMirror returns nil when no DSN is configured or ClickHouse cannot be reached.
func newMirror(ctx context.Context, dsn string, logger *zap.Logger) *clickhouse.Repository {
	if dsn == "" {
		return nil
	}
	repo, err := clickhouse.NewRepository(dsn, metrics.NewClickhouseRepository())
	if err != nil {
		logger.Warn("clickhouse mirror disabled", zap.Error(err))
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := repo.Ping(pingCtx); err != nil {
		_ = repo.Close()
		logger.Warn("clickhouse unreachable, mirror disabled", zap.Error(err))
		return nil
	}
	return repo
}

func newSource(cfg config, params *chaincfg.Params, logger *zap.Logger) (producer.BlockSource, func(), error) {
	switch cfg.Source {
	case model.SourceEsplora:
		client, err := esplora.NewClient(
			cfg.APIURL,
			esplora.Options{Timeout: cfg.HTTPTimeout, RPS: cfg.APIRPS},
			metrics.NewExplorerClient(),
			logger,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("init explorer client: %w", err)
		}
		return client, func() {}, nil
	case model.SourceRPC:
		rpc, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("init bitcoin rpc client: %w", err)
		}
		observed := bitcoin.NewRPCClient(rpc, metrics.NewRPCClient(cfg.Network))
		return bitcoin.NewRPCSource(observed, params, bitcoin.DefaultDepth), func() {
			rpc.Shutdown()
			rpc.WaitForShutdown()
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown block source %q", cfg.Source)
	}
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
