// Package model defines domain models for coinbase analytics.
package model

import "time"

// Block is a block header summary as returned by the explorer `/blocks/` endpoint.
type Block struct {
	ID                string  `json:"id"`
	Height            uint64  `json:"height"`
	Version           uint64  `json:"version"`
	Timestamp         uint64  `json:"timestamp"`
	TxCount           uint64  `json:"tx_count"`
	Size              uint64  `json:"size"`
	Weight            uint64  `json:"weight"`
	MerkleRoot        string  `json:"merkle_root"`
	PreviousBlockHash string  `json:"previousblockhash"`
	MedianTime        uint64  `json:"mediantime"`
	Nonce             uint64  `json:"nonce"`
	Bits              uint64  `json:"bits"`
	Difficulty        float64 `json:"difficulty"`
}

// Time returns the block timestamp in UTC.
func (b Block) Time() time.Time {
	return time.Unix(int64(b.Timestamp), 0).UTC()
}
