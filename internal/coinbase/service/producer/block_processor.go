package producer

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/scriptsig"
	"go.uber.org/zap"
)

// stageError tags a block failure with the metrics outcome of the stage that failed.
type stageError struct {
	outcome string
	err     error
}

func (e *stageError) Error() string {
	return e.err.Error()
}

func (e *stageError) Unwrap() error {
	return e.err
}

func outcomeOf(err error) string {
	var se *stageError
	if errors.As(err, &se) {
		return se.outcome
	}
	return outcomeFetchTx
}

type blockProcessor struct {
	source   BlockSource
	builder  MessageBuilder
	halvings HalvingSchedule
	logger   *zap.Logger
}

// Process fetches the coinbase of block, decodes its scriptSig and builds the analytics message.
func (p *blockProcessor) Process(ctx context.Context, block model.Block) (model.AnalyticsMessage, error) {
	txid, err := p.source.CoinbaseTxID(ctx, block.ID)
	if err != nil {
		return model.AnalyticsMessage{}, &stageError{
			outcome: outcomeFetchTxID,
			err:     fmt.Errorf("fetch coinbase txid of %s: %w", block.ID, err),
		}
	}

	tx, err := p.source.CoinbaseTx(ctx, txid)
	if err != nil {
		outcome := outcomeFetchTx
		if errors.Is(err, model.ErrNotCoinbase) {
			outcome = outcomeNotCoinbase
		}
		return model.AnalyticsMessage{}, &stageError{
			outcome: outcome,
			err:     fmt.Errorf("fetch coinbase tx %s: %w", txid, err),
		}
	}

	script, _ := tx.CoinbaseScriptSig()
	parsed, err := scriptsig.DecodeHex(script)
	if err != nil {
		return model.AnalyticsMessage{}, &stageError{
			outcome: outcomeDecode,
			err:     fmt.Errorf("decode scriptsig of %s: %w", txid, err),
		}
	}
	if uint64(parsed.BlockHeight) != block.Height {
		p.logger.Warn("scriptsig height differs from block height",
			zap.String("hash", block.ID),
			zap.Uint64("height", block.Height),
			zap.Uint32("scriptsig_height", parsed.BlockHeight),
		)
	}

	msg := p.builder.Build(block, tx, parsed.GuessedMiner)
	p.logger.Debug("analytics message built",
		zap.Uint64("height", msg.Height),
		zap.String("hash", msg.BlockHash),
		zap.Time("mined_at", block.Time()),
		zap.String("miner", msg.CoinbaseInfo.GuessedMiner),
		zap.Stringer("reward", btcutil.Amount(int64(msg.CoinbaseInfo.FullReward))),
	)
	p.logHalving(block)
	return msg, nil
}

func (p *blockProcessor) logHalving(block model.Block) {
	if p.halvings == nil {
		return
	}
	if p.halvings.IsHalvingBlock(block.Height) {
		p.logger.Info("halving block observed",
			zap.Uint64("height", block.Height),
			zap.String("hash", block.ID),
			zap.Time("mined_at", block.Time()),
		)
		return
	}
	next, left := p.halvings.NextHalving(block.Height)
	p.logger.Debug("blocks until next halving", zap.Uint64("next", next), zap.Uint64("left", left))
}
