// Package reward computes block subsidy and coinbase fee economics under the halving schedule.
package reward

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
)

const (
	// InitialSubsidy is the genesis era subsidy in satoshis.
	InitialSubsidy = 50 * btcutil.SatoshiPerBitcoin
	// HalvingInterval is the mainnet subsidy reduction interval in blocks.
	HalvingInterval = 210_000

	maxHalvings = 64
)

// Calculator evaluates the subsidy schedule of one network.
type Calculator struct {
	initialSubsidy  uint64
	halvingInterval uint64
}

// Default returns the mainnet schedule: 50 BTC halved every 210 000 blocks.
func Default() Calculator {
	return Calculator{initialSubsidy: InitialSubsidy, halvingInterval: HalvingInterval}
}

// NewCalculator builds a calculator for the reduction interval of params.
func NewCalculator(params *chaincfg.Params) Calculator {
	interval := uint64(HalvingInterval)
	if params != nil && params.SubsidyReductionInterval > 0 {
		interval = uint64(params.SubsidyReductionInterval)
	}
	return Calculator{initialSubsidy: InitialSubsidy, halvingInterval: interval}
}

// HalvingNumber returns how many halvings happened before height.
func (c Calculator) HalvingNumber(height uint64) uint64 {
	return height / c.halvingInterval
}

// SubsidyAt returns the subsidy in satoshis paid at height.
func (c Calculator) SubsidyAt(height uint64) uint64 {
	halvings := c.HalvingNumber(height)
	if halvings >= maxHalvings {
		return 0
	}
	return c.initialSubsidy >> halvings
}

// IsHalvingBlock reports whether height opens a new subsidy era.
func (c Calculator) IsHalvingBlock(height uint64) bool {
	return height%c.halvingInterval == 0
}

// NextHalving returns the height of the next halving and the number of blocks left until it.
func (c Calculator) NextHalving(height uint64) (uint64, uint64) {
	next := (c.HalvingNumber(height) + 1) * c.halvingInterval
	return next, next - height
}

// FeeFor returns the fees collected by a coinbase transaction: the output total above the subsidy
// at its confirmation height, floored at zero. It reports false unless tx is a confirmed coinbase.
func (c Calculator) FeeFor(tx model.Transaction) (uint64, bool) {
	if !tx.IsCoinbase() || !tx.Status.Confirmed {
		return 0, false
	}
	total := tx.FullRewardValue()
	subsidy := c.SubsidyAt(tx.Status.BlockHeight)
	if total <= subsidy {
		return 0, true
	}
	return total - subsidy, true
}
