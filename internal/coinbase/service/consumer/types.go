package consumer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/stream"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Reader interface {
		Read(ctx context.Context) ([]stream.Record, error)
	}
	Store interface {
		SaveAnalytics(ctx context.Context, msg model.AnalyticsMessage) error
	}
	Mirror interface {
		InsertAnalytics(ctx context.Context, msgs []model.AnalyticsMessage) error
	}
	Metrics interface {
		ObserveRecord(outcome string)
		ObservePersist(err error, started time.Time)
		SetQueueDepth(depth int)
	}
)
