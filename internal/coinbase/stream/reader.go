package stream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const startID = "0-0"

// Record is one stream entry.
type Record struct {
	ID   string
	Body []byte
}

// ReaderOptions configures a Reader.
type ReaderOptions struct {
	// Block bounds how long one Read waits for new entries. Negative disables blocking.
	Block time.Duration
	// Count caps the entries returned by one Read.
	Count int64
}

// Reader reads a stream sequentially and remembers its position between calls.
type Reader struct {
	rdb     redis.UniversalClient
	stream  string
	offset  Offset
	lastID  string
	block   time.Duration
	count   int64
	metrics ReadMetrics
}

// NewReader creates a Reader positioned at offset.
func NewReader(client *Client, stream string, offset Offset, opts ReaderOptions, metrics ReadMetrics) *Reader {
	if opts.Block == 0 {
		opts.Block = time.Second
	}
	if opts.Count <= 0 {
		opts.Count = 100
	}
	return &Reader{
		rdb:     client.Redis(),
		stream:  stream,
		offset:  offset,
		block:   opts.Block,
		count:   opts.Count,
		metrics: metrics,
	}
}

// Stream returns the stream name.
func (r *Reader) Stream() string {
	return r.stream
}

// LastID returns the id of the last delivered entry.
func (r *Reader) LastID() string {
	return r.lastID
}

// Read returns the next entries, or none when nothing arrived within the block timeout.
func (r *Reader) Read(ctx context.Context) (records []Record, err error) {
	defer func() {
		r.metrics.ObserveRead(err, len(records))
	}()

	if r.lastID == "" {
		if err := r.resolveOffset(ctx); err != nil {
			return nil, err
		}
	}

	streams, err := r.rdb.XRead(ctx, &redis.XReadArgs{
		Streams: []string{r.stream, r.lastID},
		Count:   r.count,
		Block:   r.block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read stream %s: %w", r.stream, err)
	}

	for _, s := range streams {
		for _, msg := range s.Messages {
			records = append(records, Record{ID: msg.ID, Body: bodyOf(msg.Values)})
			r.lastID = msg.ID
		}
	}
	return records, nil
}

// resolveOffset pins "next" to the current tail once, so entries appended between two reads
// are not skipped.
func (r *Reader) resolveOffset(ctx context.Context) error {
	switch r.offset {
	case OffsetFirst, "":
		r.lastID = startID
	case OffsetNext:
		tail, err := r.rdb.XRevRangeN(ctx, r.stream, "+", "-", 1).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("resolve tail of %s: %w", r.stream, err)
		}
		r.lastID = startID
		if len(tail) > 0 {
			r.lastID = tail[0].ID
		}
	default:
		r.lastID = string(r.offset)
	}
	return nil
}

func bodyOf(values map[string]any) []byte {
	switch v := values[BodyField].(type) {
	case string:
		return []byte(v)
	case []byte:
		return v
	default:
		return nil
	}
}
