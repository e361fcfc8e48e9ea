package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"go.uber.org/zap"
)

// Notifier publishes short operational notices on the notifications stream.
type Notifier struct {
	pub   message.Publisher
	topic string
	now   func() time.Time
}

// NewNotifier creates a watermill backed notifier for topic.
func NewNotifier(client *Client, topic string, maxLen int64, logger *zap.Logger) (*Notifier, error) {
	cfg := redisstream.PublisherConfig{
		Client: client.Redis(),
	}
	if maxLen > 0 {
		cfg.Maxlens = map[string]int64{topic: maxLen}
	}
	pub, err := redisstream.NewPublisher(cfg, NewWatermillLogger(logger.Named("notifier")))
	if err != nil {
		return nil, fmt.Errorf("create notifications publisher: %w", err)
	}
	return &Notifier{pub: pub, topic: topic, now: time.Now}, nil
}

// Notify publishes text as a model.Notification.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	payload, err := json.Marshal(model.Notification{
		Message:   text,
		Timestamp: uint64(n.now().Unix()),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := n.pub.Publish(n.topic, msg); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Close closes the underlying publisher.
func (n *Notifier) Close() error {
	return n.pub.Close()
}
