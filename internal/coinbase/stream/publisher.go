package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/redis/go-redis/v9"
)

// BodyField is the stream entry field holding the JSON encoded message.
const BodyField = "body"

// PublishStatus tags the outcome of a batch publish.
type PublishStatus int

const (
	// PublishOK means every message of the batch was appended.
	PublishOK PublishStatus = iota
	// PublishEncodeError means a message could not be encoded; nothing was sent.
	PublishEncodeError
	// PublishBrokerError means the broker rejected the batch; nothing was appended.
	PublishBrokerError
)

func (s PublishStatus) String() string {
	switch s {
	case PublishOK:
		return "ok"
	case PublishEncodeError:
		return "encode_error"
	case PublishBrokerError:
		return "broker_error"
	default:
		return "unknown"
	}
}

// PublishResult is the outcome of PublishBatch. Callers branch on Status.
type PublishResult struct {
	Status PublishStatus
	// IDs are the stream ids assigned to the batch, in order. Empty unless Status is PublishOK.
	IDs []string
	Err error
}

// OK reports whether the batch was appended.
func (r PublishResult) OK() bool {
	return r.Status == PublishOK
}

// PublisherOptions configures a Publisher.
type PublisherOptions struct {
	// MaxLen trims the stream to roughly this many entries. Zero disables trimming.
	MaxLen int64
}

// Publisher appends batches of analytics messages to one stream.
type Publisher struct {
	rdb     redis.UniversalClient
	stream  string
	maxLen  int64
	metrics PublishMetrics

	mu sync.Mutex
}

// NewPublisher creates a Publisher for stream.
func NewPublisher(client *Client, stream string, opts PublisherOptions, metrics PublishMetrics) *Publisher {
	return &Publisher{
		rdb:     client.Redis(),
		stream:  stream,
		maxLen:  opts.MaxLen,
		metrics: metrics,
	}
}

// Stream returns the target stream name.
func (p *Publisher) Stream() string {
	return p.stream
}

// PublishBatch appends msgs inside a single MULTI/EXEC transaction, so either the whole batch
// becomes visible to readers or none of it. Only one batch is in flight at a time.
func (p *Publisher) PublishBatch(ctx context.Context, msgs []model.AnalyticsMessage) (res PublishResult) {
	started := time.Now()
	defer func() {
		p.metrics.ObservePublish(res.Err, len(msgs), started)
	}()

	if len(msgs) == 0 {
		return PublishResult{Status: PublishOK}
	}

	bodies := make([][]byte, 0, len(msgs))
	for _, msg := range msgs {
		body, err := json.Marshal(msg)
		if err != nil {
			return PublishResult{Status: PublishEncodeError, Err: fmt.Errorf("encode message %s: %w", msg.BlockHash, err)}
		}
		bodies = append(bodies, body)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	cmds, err := p.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, body := range bodies {
			pipe.XAdd(ctx, p.addArgs(body))
		}
		return nil
	})
	if err != nil {
		return PublishResult{Status: PublishBrokerError, Err: fmt.Errorf("publish batch to %s: %w", p.stream, err)}
	}

	ids := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		if xadd, ok := cmd.(*redis.StringCmd); ok {
			ids = append(ids, xadd.Val())
		}
	}
	return PublishResult{Status: PublishOK, IDs: ids}
}

func (p *Publisher) addArgs(body []byte) *redis.XAddArgs {
	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{BodyField: body},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	return args
}
