package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/pkg/safe"
	"go.uber.org/zap"
)

const (
	upsertBlockQuery = `
INSERT INTO blocks (
	hash,
	height,
	timestamp,
	size,
	merkle_root,
	difficulty,
	transactions_count
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (hash) DO UPDATE SET
	height = EXCLUDED.height,
	timestamp = EXCLUDED.timestamp,
	size = EXCLUDED.size,
	merkle_root = EXCLUDED.merkle_root,
	difficulty = EXCLUDED.difficulty,
	transactions_count = EXCLUDED.transactions_count,
	updated_at = now()`

	upsertCoinbaseQuery = `
INSERT INTO transactions (
	txid,
	block_hash,
	fee,
	size,
	is_coinbase,
	main_reward,
	miner_address,
	full_reward,
	guessed_miner
) VALUES ($1, $2, $3, $4, TRUE, $5, $6, $7, $8)
ON CONFLICT (txid) DO UPDATE SET
	block_hash = EXCLUDED.block_hash,
	fee = EXCLUDED.fee,
	size = EXCLUDED.size,
	main_reward = EXCLUDED.main_reward,
	miner_address = EXCLUDED.miner_address,
	full_reward = EXCLUDED.full_reward,
	guessed_miner = EXCLUDED.guessed_miner,
	updated_at = now()`
)

// Store writes analytics messages as one block row and one coinbase transaction row.
// Both rows are keyed on values derived from the block hash, so replays update in place.
type Store struct {
	db        TxBeginner
	opTimeout time.Duration
	metrics   Metrics
	logger    *zap.Logger
}

// NewStore creates a Store. opTimeout bounds every statement and the commit; zero disables it.
func NewStore(db TxBeginner, opTimeout time.Duration, metrics Metrics, logger *zap.Logger) *Store {
	return &Store{
		db:        db,
		opTimeout: opTimeout,
		metrics:   metrics,
		logger:    logger.Named("postgres_store"),
	}
}

// SaveAnalytics upserts msg inside a single transaction. Any failure rolls the transaction back.
func (s *Store) SaveAnalytics(ctx context.Context, msg model.AnalyticsMessage) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("save_analytics", err, started)
	}()

	if err = msg.Validate(); err != nil {
		return err
	}
	block, err := blockArgs(msg)
	if err != nil {
		return err
	}
	coinbase, err := coinbaseArgs(msg)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			s.logger.Warn("rollback failed", zap.String("hash", msg.BlockHash), zap.Error(rbErr))
		}
	}()

	if err = s.exec(ctx, tx, upsertBlockQuery, block...); err != nil {
		return fmt.Errorf("upsert block %s: %w", msg.BlockHash, err)
	}
	if err = s.exec(ctx, tx, upsertCoinbaseQuery, coinbase...); err != nil {
		return fmt.Errorf("upsert coinbase transaction %s: %w", msg.BlockHash, err)
	}

	commitCtx, cancel := s.opContext(ctx)
	defer cancel()
	if err = tx.Commit(commitCtx); err != nil {
		return fmt.Errorf("commit %s: %w", msg.BlockHash, err)
	}
	return nil
}

func (s *Store) exec(ctx context.Context, tx Tx, query string, args ...any) error {
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	_, err := tx.Exec(opCtx, query, args...)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return fmt.Errorf("statement timed out after %s: %w", s.opTimeout, err)
	}
	return err
}

func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

func blockArgs(msg model.AnalyticsMessage) ([]any, error) {
	height, err := safe.Int64(msg.Height)
	if err != nil {
		return nil, fmt.Errorf("block height: %w", err)
	}
	ts, err := safe.Int64(msg.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("block timestamp: %w", err)
	}
	size, err := safe.Int64(msg.Size)
	if err != nil {
		return nil, fmt.Errorf("block size: %w", err)
	}
	txCount, err := safe.Int64(msg.TransactionCount)
	if err != nil {
		return nil, fmt.Errorf("transaction count: %w", err)
	}
	return []any{
		msg.BlockHash,
		height,
		time.Unix(ts, 0).UTC(),
		size,
		msg.MerkleRoot,
		msg.Difficulty,
		txCount,
	}, nil
}

func coinbaseArgs(msg model.AnalyticsMessage) ([]any, error) {
	info := msg.CoinbaseInfo

	fee, err := optionalInt64(info.Fee)
	if err != nil {
		return nil, fmt.Errorf("fee: %w", err)
	}
	mainReward, err := optionalInt64(info.MainReward)
	if err != nil {
		return nil, fmt.Errorf("main reward: %w", err)
	}
	fullReward, err := safe.Int64(info.FullReward)
	if err != nil {
		return nil, fmt.Errorf("full reward: %w", err)
	}
	return []any{
		model.CoinbaseTxID(msg.BlockHash),
		msg.BlockHash,
		fee,
		int64(info.Size),
		mainReward,
		info.MinerAddress,
		fullReward,
		info.GuessedMiner,
	}, nil
}

func optionalInt64(v *uint64) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	out, err := safe.Int64(*v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
