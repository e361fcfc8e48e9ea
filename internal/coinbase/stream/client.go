// Package stream carries analytics records over Redis Streams: an append-only, offset
// addressable log that both pipeline halves share.
package stream

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const bootstrapGroup = "coinbase-bootstrap"

// Client owns the broker connection.
type Client struct {
	rdb    redis.UniversalClient
	logger *zap.Logger
}

// Connect parses a redis:// URL, connects and pings the broker.
func Connect(ctx context.Context, url string, logger *zap.Logger) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewClient(rdb, logger), nil
}

// NewClient wraps an existing connection.
func NewClient(rdb redis.UniversalClient, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger.Named("stream")}
}

// Redis exposes the underlying connection.
func (c *Client) Redis() redis.UniversalClient {
	return c.rdb
}

// CreateStream makes sure the stream exists. Existing streams are left untouched.
func (c *Client) CreateStream(ctx context.Context, name string) error {
	err := c.rdb.XGroupCreateMkStream(ctx, name, bootstrapGroup, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create stream %s: %w", name, err)
	}
	if err := c.rdb.XGroupDestroy(ctx, name, bootstrapGroup).Err(); err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("bootstrap group not removed", zap.String("stream", name), zap.Error(err))
	}
	c.logger.Info("stream ready", zap.String("stream", name))
	return nil
}

// Len returns the number of records in the stream.
func (c *Client) Len(ctx context.Context, name string) (int64, error) {
	return c.rdb.XLen(ctx, name).Result()
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
