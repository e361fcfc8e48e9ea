// Package bitcoin implements the block source on top of a bitcoind JSON-RPC node.
package bitcoin

import (
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/pkg/safe"
)

// BtcToSatoshis converts BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// ParseBits parses a compact target hex string.
func ParseBits(value string) (uint32, error) {
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(parsed), nil
}

// BlockFromVerbose maps a verbose block result into a model.Block.
func BlockFromVerbose(src btcjson.GetBlockVerboseResult) (model.Block, error) {
	bits, err := ParseBits(src.Bits)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d bits parse: %w", src.Height, err)
	}
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block height %d overflow: %w", src.Height, err)
	}
	version, err := safe.Uint64(src.Version)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d version overflow: %w", src.Height, err)
	}
	timestamp, err := safe.Uint64(src.Time)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d time overflow: %w", src.Height, err)
	}
	size, err := safe.Uint64(src.Size)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d size overflow: %w", src.Height, err)
	}
	weight, err := safe.Uint64(src.Weight)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d weight overflow: %w", src.Height, err)
	}

	return model.Block{
		ID:                src.Hash,
		Height:            height,
		Version:           version,
		Timestamp:         timestamp,
		TxCount:           uint64(len(src.Tx)),
		Size:              size,
		Weight:            weight,
		MerkleRoot:        src.MerkleRoot,
		PreviousBlockHash: src.PreviousHash,
		Nonce:             uint64(src.Nonce),
		Bits:              uint64(bits),
		Difficulty:        src.Difficulty,
	}, nil
}

// transactionFromRaw maps a verbose transaction into a model.Transaction. The status is left
// to the caller.
func transactionFromRaw(src btcjson.TxRawResult, decoder *scriptDecoder) (model.Transaction, error) {
	size, err := safe.Uint32(src.Size)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s size overflow: %w", src.Txid, err)
	}
	weight, err := safe.Uint32(src.Weight)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s weight overflow: %w", src.Txid, err)
	}
	version, err := safe.Uint32(src.Version)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s version overflow: %w", src.Txid, err)
	}

	inputs := make([]model.TxInput, 0, len(src.Vin))
	for _, vin := range src.Vin {
		input := model.TxInput{
			TxID:       vin.Txid,
			Vout:       uint64(vin.Vout),
			Witness:    vin.Witness,
			IsCoinbase: vin.IsCoinBase(),
			Sequence:   uint64(vin.Sequence),
		}
		switch {
		case input.IsCoinbase:
			input.ScriptSig = vin.Coinbase
		case vin.ScriptSig != nil:
			input.ScriptSig = vin.ScriptSig.Hex
			input.ScriptSigAsm = vin.ScriptSig.Asm
		}
		inputs = append(inputs, input)
	}

	outputs := make([]model.TxOutput, 0, len(src.Vout))
	for idx, vout := range src.Vout {
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s output %d value: %w", src.Txid, idx, err)
		}
		addr, err := decoder.decodeAddress(vout)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("decode address for tx %s output %d: %w", src.Txid, idx, err)
		}
		outputs = append(outputs, model.TxOutput{
			ScriptPubKey:        vout.ScriptPubKey.Hex,
			ScriptPubKeyAsm:     vout.ScriptPubKey.Asm,
			ScriptPubKeyType:    vout.ScriptPubKey.Type,
			ScriptPubKeyAddress: addr,
			Value:               value,
		})
	}

	return model.Transaction{
		TxID:     src.Txid,
		Version:  version,
		LockTime: src.LockTime,
		Vin:      inputs,
		Vout:     outputs,
		Size:     size,
		Weight:   weight,
	}, nil
}
