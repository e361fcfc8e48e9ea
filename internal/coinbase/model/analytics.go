package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

const coinbaseTxIDPrefix = "coinbase_"

// CoinbaseTxID derives the persisted id of a block's coinbase row from the block hash,
// so redelivered messages map onto the same row.
func CoinbaseTxID(blockHash string) string {
	return coinbaseTxIDPrefix + blockHash
}

// RewardShare is one (value, address) payout of a coinbase transaction.
// It is encoded on the wire as a two element array `[value, "address"]`.
type RewardShare struct {
	Value   uint64
	Address string
}

func (s RewardShare) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{s.Value, s.Address})
}

func (s *RewardShare) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("reward share: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("reward share: expected 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &s.Value); err != nil {
		return fmt.Errorf("reward share value: %w", err)
	}
	if err := json.Unmarshal(raw[1], &s.Address); err != nil {
		return fmt.Errorf("reward share address: %w", err)
	}
	return nil
}

// RewardInfo summarises the economics of a coinbase transaction.
type RewardInfo struct {
	ExpectedSubsidy uint64
	FullReward      uint64
	MainReward      *uint64
	MinerAddress    *string
	Shares          []RewardShare
	// Fee is nil when the transaction is not a confirmed coinbase.
	Fee *uint64
}

// CoinbaseInfo is the coinbase part of an AnalyticsMessage.
type CoinbaseInfo struct {
	MainReward          *uint64       `json:"main_reward"`
	MinerAddress        *string       `json:"miner_address"`
	FullReward          uint64        `json:"full_reward"`
	Fee                 *uint64       `json:"fee"`
	GuessedMiner        string        `json:"guessed_miner"`
	RewardsAndAddresses []RewardShare `json:"rewards_and_addresses"`
	Size                uint32        `json:"size,omitempty"`
}

// AnalyticsMessage is the self-contained record published for every observed block.
// Its natural key is BlockHash.
type AnalyticsMessage struct {
	Height           uint64       `json:"height"`
	BlockHash        string       `json:"block_hash"`
	Timestamp        uint64       `json:"timestamp"`
	Size             uint64       `json:"size"`
	MerkleRoot       string       `json:"merkle_root"`
	Difficulty       float64      `json:"difficulty"`
	TransactionCount uint64       `json:"transaction_count"`
	CoinbaseInfo     CoinbaseInfo `json:"coinbase_info"`
}

// Validate checks the fields the persistence layer keys on.
func (m AnalyticsMessage) Validate() error {
	if m.BlockHash == "" {
		return errors.New("analytics message without block hash")
	}
	return nil
}

// Notification is published on the notifications stream.
type Notification struct {
	Message   string `json:"message"`
	Timestamp uint64 `json:"timestamp"`
}
