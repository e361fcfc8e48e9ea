// Package analytics assembles the analytics record published for every observed block.
package analytics

import (
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/reward"
)

// Builder turns a block and its coinbase transaction into an AnalyticsMessage.
type Builder struct {
	calc reward.Calculator
}

// NewBuilder constructs a Builder over the given subsidy schedule.
func NewBuilder(calc reward.Calculator) *Builder {
	return &Builder{calc: calc}
}

// Rewards summarises the payouts of the coinbase transaction of the block at height.
func (b *Builder) Rewards(tx model.Transaction, height uint64) model.RewardInfo {
	info := model.RewardInfo{
		ExpectedSubsidy: b.calc.SubsidyAt(height),
		FullReward:      tx.FullRewardValue(),
		MainReward:      tx.MainRewardValue(),
		MinerAddress:    tx.MainRewardAddress(),
		Shares:          tx.RewardShares(),
	}
	if fee, ok := b.calc.FeeFor(tx); ok {
		info.Fee = &fee
	}
	return info
}

// Build assembles the message for block. guessedMiner is the tag recovered from the coinbase
// scriptSig and is carried as is.
func (b *Builder) Build(block model.Block, tx model.Transaction, guessedMiner string) model.AnalyticsMessage {
	rewards := b.Rewards(tx, block.Height)
	return model.AnalyticsMessage{
		Height:           block.Height,
		BlockHash:        block.ID,
		Timestamp:        block.Timestamp,
		Size:             block.Size,
		MerkleRoot:       block.MerkleRoot,
		Difficulty:       block.Difficulty,
		TransactionCount: block.TxCount,
		CoinbaseInfo: model.CoinbaseInfo{
			MainReward:          rewards.MainReward,
			MinerAddress:        rewards.MinerAddress,
			FullReward:          rewards.FullReward,
			Fee:                 rewards.Fee,
			GuessedMiner:        guessedMiner,
			RewardsAndAddresses: rewards.Shares,
			Size:                tx.Size,
		},
	}
}
