package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/stream"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/metrics"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	RedisURL string `long:"redis-url" env:"COINBASE_REDIS_URL" description:"stream broker URL" default:"redis://127.0.0.1:6379/0"`
	Stream   string `long:"stream" env:"COINBASE_ANALYTICS_STREAM" description:"stream to print" default:"mining-analytics"`
	Offset   string `long:"offset" description:"first, next or a stream entry id" default:"first"`
	Raw      bool   `long:"raw" description:"print record bodies as stored"`
	Follow   bool   `long:"follow" description:"keep waiting for new records"`
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

	if err := run(ctx, cfg, os.Stdout, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("stream reader failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, out io.Writer, logger *zap.Logger) error {
	offset, err := stream.ParseOffset(cfg.Offset)
	if err != nil {
		return err
	}
	client, err := stream.Connect(ctx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	opts := stream.ReaderOptions{Block: -1}
	if cfg.Follow {
		opts.Block = 5 * time.Second
	}
	if n, err := client.Len(ctx, cfg.Stream); err != nil {
		logger.Warn("stream length unavailable", zap.String("stream", cfg.Stream), zap.Error(err))
	} else {
		logger.Info("reading stream", zap.String("stream", cfg.Stream), zap.Int64("length", n))
	}

	reader := stream.NewReader(client, cfg.Stream, offset, opts, metrics.NewStream(cfg.Stream))
	err = dump(ctx, reader, out, cfg.Raw, cfg.Follow)
	logger.Debug("stream reader stopped", zap.String("stream", reader.Stream()), zap.String("last_id", reader.LastID()))
	return err
}

type recordReader interface {
	Read(ctx context.Context) ([]stream.Record, error)
}

// dump prints records until the stream is exhausted, or until ctx is done when follow is set.
func dump(ctx context.Context, reader recordReader, out io.Writer, raw, follow bool) error {
	total := 0
	for {
		records, err := reader.Read(ctx)
		if err != nil {
			return err
		}
		if len(records) == 0 && !follow {
			_, err := fmt.Fprintf(out, "%d records\n", total)
			return err
		}
		for _, rec := range records {
			if err := printRecord(out, rec, raw); err != nil {
				return err
			}
			total++
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func printRecord(out io.Writer, rec stream.Record, raw bool) error {
	body := rec.Body
	if !raw {
		var buf bytes.Buffer
		if err := json.Indent(&buf, rec.Body, "", "  "); err == nil {
			body = buf.Bytes()
		}
	}
	_, err := fmt.Fprintf(out, "%s\n%s\n", rec.ID, body)
	return err
}
