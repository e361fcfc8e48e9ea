package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
)

const insertAnalyticsQuery = `
INSERT INTO coinbase_analytics (
	block_hash,
	height,
	timestamp,
	size,
	merkle_root,
	difficulty,
	transaction_count,
	main_reward,
	miner_address,
	full_reward,
	fee,
	guessed_miner,
	reward_values,
	reward_addresses,
	coinbase_size
) VALUES`

// InsertAnalytics appends msgs to the archive. Replayed messages collapse on merge.
func (r *Repository) InsertAnalytics(ctx context.Context, msgs []model.AnalyticsMessage) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_analytics", len(msgs), err, start)
	}()

	if len(msgs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertAnalyticsQuery)
	if err != nil {
		return fmt.Errorf("prepare analytics batch: %w", err)
	}

	for _, msg := range msgs {
		info := msg.CoinbaseInfo
		values, addresses := splitShares(info.RewardsAndAddresses)
		if err = batch.Append(
			msg.BlockHash,
			msg.Height,
			time.Unix(int64(msg.Timestamp), 0).UTC(),
			msg.Size,
			msg.MerkleRoot,
			msg.Difficulty,
			msg.TransactionCount,
			info.MainReward,
			info.MinerAddress,
			info.FullReward,
			info.Fee,
			info.GuessedMiner,
			values,
			addresses,
			info.Size,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append analytics %s: %w", msg.BlockHash, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert analytics: %w", err)
	}
	return nil
}

func splitShares(shares []model.RewardShare) ([]uint64, []string) {
	values := make([]uint64, 0, len(shares))
	addresses := make([]string, 0, len(shares))
	for _, s := range shares {
		values = append(values, s.Value)
		addresses = append(addresses, s.Address)
	}
	return values, addresses
}
