package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/stream"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/supervisor"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	Source      model.Source  `long:"source" env:"COINBASE_SOURCE" description:"block source" choice:"esplora" choice:"rpc" default:"esplora"`
	APIURL      string        `long:"api-url" env:"COINBASE_API_URL" description:"Esplora-compatible explorer base URL" default:"https://mempool.space/api/"`
	APIRPS      int           `long:"api-rps" env:"COINBASE_API_RPS" description:"explorer requests per second, 0 disables throttling" default:"5"`
	HTTPTimeout time.Duration `long:"http-timeout" env:"COINBASE_HTTP_TIMEOUT" description:"HTTP timeout for explorer requests" default:"30s"`
	RPCURL      string        `long:"rpc-url" env:"COINBASE_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser     string        `long:"rpc-user" env:"COINBASE_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword string        `long:"rpc-password" env:"COINBASE_RPC_PASSWORD" description:"Bitcoin RPC password"`
	Network     model.Network `long:"network" env:"COINBASE_NETWORK" description:"network name" default:"mainnet"`

	PollInterval time.Duration `long:"poll-interval" env:"COINBASE_POLL_INTERVAL" description:"delay between polls of the block source" default:"60s"`
	FetchWorkers int           `long:"fetch-workers" env:"COINBASE_FETCH_WORKERS" description:"blocks fetched concurrently per poll" default:"4"`
	ZMQAddr      string        `long:"zmq-addr" env:"COINBASE_ZMQ_ADDR" description:"bitcoind zmqpubhashblock address for early polls (zmq builds only)"`

	RedisURL            string `long:"redis-url" env:"COINBASE_REDIS_URL" description:"stream broker URL" default:"redis://127.0.0.1:6379/0"`
	AnalyticsStream     string `long:"analytics-stream" env:"COINBASE_ANALYTICS_STREAM" description:"analytics stream name" default:"mining-analytics"`
	NotificationsStream string `long:"notifications-stream" env:"COINBASE_NOTIFICATIONS_STREAM" description:"notifications stream name" default:"mining-notifications"`
	StreamMaxLen        int64  `long:"stream-max-len" env:"COINBASE_STREAM_MAX_LEN" description:"approximate stream length cap, 0 disables trimming" default:"1000000"`
	Notifications       bool   `long:"notifications" env:"COINBASE_NOTIFICATIONS" description:"publish dropped-batch notices"`
	ConsumerOffset      string `long:"consumer-offset" env:"COINBASE_CONSUMER_OFFSET" description:"first, next or a stream entry id" default:"next"`

	PostgresDSN      string        `long:"postgres-dsn" env:"COINBASE_POSTGRES_DSN" description:"PostgreSQL DSN"`
	DBMaxConns       int32         `long:"db-max-conns" env:"COINBASE_DB_MAX_CONNS" description:"maximum pooled database connections" default:"5"`
	DBAcquireTimeout time.Duration `long:"db-acquire-timeout" env:"COINBASE_DB_ACQUIRE_TIMEOUT" description:"timeout for acquiring a pooled connection" default:"5s"`
	DBOpTimeout      time.Duration `long:"db-op-timeout" env:"COINBASE_DB_OP_TIMEOUT" description:"timeout for each database statement" default:"5s"`
	ClickhouseDSN    string        `long:"clickhouse-dsn" env:"COINBASE_CLICKHOUSE_DSN" description:"optional ClickHouse DSN for the analytics archive"`

	Producer    bool   `long:"producer" env:"COINBASE_PRODUCER" description:"run the producer" default:"true"`
	Consumer    bool   `long:"consumer" env:"COINBASE_CONSUMER" description:"run the consumer" default:"true"`
	MetricsAddr string `long:"metrics-addr" env:"COINBASE_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("coinbase analytics failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	offset, err := stream.ParseOffset(cfg.ConsumerOffset)
	if err != nil {
		return err
	}
	if !cfg.Producer && !cfg.Consumer {
		return errors.New("both producer and consumer are disabled")
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	client, err := stream.Connect(ctx, cfg.RedisURL, logger)
	if err == nil {
		err = client.CreateStream(ctx, cfg.AnalyticsStream)
	}
	if err != nil {
		logger.Error("stream broker unavailable, producer and consumer not started", zap.Error(err))
		return nil
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("close stream client", zap.Error(err))
		}
	}()

	sup, taskCtx := supervisor.New(ctx, logger)

	if cfg.Producer {
		task, cleanup, err := newProducer(taskCtx, cfg, client, logger)
		if err != nil {
			return fmt.Errorf("init producer: %w", err)
		}
		defer cleanup()
		sup.Go("producer", task)
	}

	if cfg.Consumer {
		task, cleanup, err := newConsumer(taskCtx, cfg, client, offset, logger)
		switch {
		case errors.Is(err, errDatabaseUnavailable):
			logger.Error("database unavailable, consumer not started", zap.Error(err))
		case err != nil:
			return fmt.Errorf("init consumer: %w", err)
		default:
			defer cleanup()
			sup.Go("consumer", task)
		}
	}

	_, err = sup.Wait()
	return err
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
