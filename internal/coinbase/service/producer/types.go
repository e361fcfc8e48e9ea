package producer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/stream"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockSource interface {
		LatestBlocks(ctx context.Context) ([]model.Block, error)
		CoinbaseTxID(ctx context.Context, blockHash string) (string, error)
		CoinbaseTx(ctx context.Context, txid string) (model.Transaction, error)
	}
	MessageBuilder interface {
		Build(block model.Block, tx model.Transaction, guessedMiner string) model.AnalyticsMessage
	}
	HalvingSchedule interface {
		IsHalvingBlock(height uint64) bool
		NextHalving(height uint64) (uint64, uint64)
	}
	Publisher interface {
		PublishBatch(ctx context.Context, msgs []model.AnalyticsMessage) stream.PublishResult
	}
	Notifier interface {
		Notify(ctx context.Context, text string) error
	}
	Metrics interface {
		ObserveCycle(err error, started time.Time)
		ObserveBlock(outcome string)
		ObserveBatch(err error, size int)
	}
)
