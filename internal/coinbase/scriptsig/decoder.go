// Package scriptsig recovers block height, miner tag and extra-nonce from coinbase scriptSigs.
//
// The decoder follows the BIP34 convention loosely and never evaluates the script: only data
// pushes are collected and every other opcode is skipped.
package scriptsig

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
)

const (
	heightSize    = 4
	timestampSize = 8
	minPushes     = 2
)

var (
	// ErrTooFewPushes is returned when the script carries fewer than two data pushes.
	ErrTooFewPushes = errors.New("scriptsig: too few data pushes")
	// ErrMissingLabel is returned when no push is left for the miner tag.
	ErrMissingLabel = errors.New("scriptsig: missing miner label push")
	// ErrHeightOverflow is returned when the height push does not fit into 32 bits.
	ErrHeightOverflow = errors.New("scriptsig: height push longer than 4 bytes")
)

// DecodeHex decodes a hex encoded scriptSig, as served by block explorers.
func DecodeHex(script string) (model.ParsedScriptSig, error) {
	raw, err := hex.DecodeString(script)
	if err != nil {
		return model.ParsedScriptSig{}, fmt.Errorf("decode scriptsig hex: %w", err)
	}
	return Decode(raw)
}

// Decode parses the data pushes of a coinbase scriptSig.
//
// Push 0 is the little-endian block height. Push 1 is read as a little-endian unix timestamp
// when it is at most 8 bytes long. The next push holds the miner tag: its printable ASCII
// prefix is the tag, the rest is the extra-nonce.
func Decode(raw []byte) (model.ParsedScriptSig, error) {
	pushes := Pushes(raw)
	if len(pushes) < minPushes {
		return model.ParsedScriptSig{}, fmt.Errorf("%w: got %d", ErrTooFewPushes, len(pushes))
	}

	height, err := decodeHeight(pushes[0])
	if err != nil {
		return model.ParsedScriptSig{}, err
	}

	labelIdx := 1
	var timestamp *uint64
	if len(pushes[1]) <= timestampSize {
		ts := littleEndian(pushes[1], timestampSize)
		timestamp = &ts
		labelIdx = 2
	}
	if labelIdx >= len(pushes) {
		return model.ParsedScriptSig{}, ErrMissingLabel
	}

	tag, extraNonce := splitLabel(pushes[labelIdx])

	return model.ParsedScriptSig{
		BlockHeight:  height,
		GuessedMiner: tag,
		TimestampSec: timestamp,
		ExtraNonce:   extraNonce,
		CoinbaseRaw:  append([]byte(nil), raw...),
		RawPushes:    pushes,
	}, nil
}

// Pushes returns the data of every push opcode in script order. A malformed push ends the scan
// and the pushes read so far are returned.
func Pushes(raw []byte) [][]byte {
	var pushes [][]byte
	tokenizer := txscript.MakeScriptTokenizer(0, raw)
	for tokenizer.Next() {
		if tokenizer.Opcode() > txscript.OP_PUSHDATA4 {
			continue
		}
		pushes = append(pushes, append([]byte{}, tokenizer.Data()...))
	}
	return pushes
}

func decodeHeight(push []byte) (uint32, error) {
	if len(push) > heightSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrHeightOverflow, len(push))
	}
	return uint32(littleEndian(push, heightSize)), nil
}

func littleEndian(push []byte, width int) uint64 {
	padded := make([]byte, timestampSize)
	copy(padded[:width], push)
	return binary.LittleEndian.Uint64(padded)
}

func splitLabel(push []byte) (string, []byte) {
	split := len(push)
	for i, b := range push {
		if !isPrintable(b) {
			split = i
			break
		}
	}
	return strings.TrimSpace(string(push[:split])), append([]byte{}, push[split:]...)
}

func isPrintable(b byte) bool {
	return b == ' ' || (b >= 0x21 && b <= 0x7e)
}
