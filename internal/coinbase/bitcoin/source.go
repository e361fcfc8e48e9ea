package bitcoin

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/internal/coinbase/model"
	"github.com/goodnatureofminers/blockinsight7000-coinbase/pkg/safe"
)

// DefaultDepth matches the number of blocks returned by the explorer /blocks/ endpoint.
const DefaultDepth = 10

// RPCSource serves blocks and coinbase transactions from a bitcoind node.
type RPCSource struct {
	rpc     NodeClient
	decoder *scriptDecoder
	depth   int
}

// NewRPCSource creates a source returning the latest depth blocks on every poll.
func NewRPCSource(rpc NodeClient, params *chaincfg.Params, depth int) *RPCSource {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &RPCSource{
		rpc:     rpc,
		decoder: &scriptDecoder{params: params},
		depth:   depth,
	}
}

// LatestBlocks returns the tip and its ancestors, newest first.
func (s *RPCSource) LatestBlocks(ctx context.Context) ([]model.Block, error) {
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return nil, fmt.Errorf("get block count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("negative block count %d", count)
	}

	blocks := make([]model.Block, 0, s.depth)
	for height := count; height >= 0 && len(blocks) < s.depth; height-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hash, err := s.rpc.GetBlockHash(height)
		if err != nil {
			return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
		}
		src, err := s.rpc.GetBlockVerbose(hash)
		if err != nil {
			return nil, fmt.Errorf("get block %s: %w", hash, err)
		}
		block, err := BlockFromVerbose(*src)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// CoinbaseTxID returns the first transaction id of the block.
func (s *RPCSource) CoinbaseTxID(ctx context.Context, blockHash string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	hash, err := chainhash.NewHashFromStr(blockHash)
	if err != nil {
		return "", fmt.Errorf("block hash %q: %w", blockHash, err)
	}
	src, err := s.rpc.GetBlockVerbose(hash)
	if err != nil {
		return "", fmt.Errorf("get block %s: %w", blockHash, err)
	}
	if len(src.Tx) == 0 {
		return "", fmt.Errorf("block %s: %w", blockHash, model.ErrEmptyBlock)
	}
	return src.Tx[0], nil
}

// CoinbaseTx fetches a transaction, checks that it is a coinbase and resolves its confirmation
// height.
func (s *RPCSource) CoinbaseTx(ctx context.Context, txid string) (model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return model.Transaction{}, err
	}
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("txid %q: %w", txid, err)
	}
	src, err := s.rpc.GetRawTransactionVerbose(hash)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("get transaction %s: %w", txid, err)
	}
	tx, err := transactionFromRaw(*src, s.decoder)
	if err != nil {
		return model.Transaction{}, err
	}
	if !tx.IsCoinbase() {
		return model.Transaction{}, fmt.Errorf("tx %s: %w", txid, model.ErrNotCoinbase)
	}

	status, err := s.status(*src)
	if err != nil {
		return model.Transaction{}, err
	}
	tx.Status = status
	return tx, nil
}

func (s *RPCSource) status(src btcjson.TxRawResult) (model.TxStatus, error) {
	if src.BlockHash == "" || src.Confirmations == 0 {
		return model.TxStatus{}, nil
	}
	hash, err := chainhash.NewHashFromStr(src.BlockHash)
	if err != nil {
		return model.TxStatus{}, fmt.Errorf("tx %s block hash: %w", src.Txid, err)
	}
	header, err := s.rpc.GetBlockHeaderVerbose(hash)
	if err != nil {
		return model.TxStatus{}, fmt.Errorf("get block header %s: %w", src.BlockHash, err)
	}
	height, err := safe.Uint64(header.Height)
	if err != nil {
		return model.TxStatus{}, fmt.Errorf("block %s height overflow: %w", src.BlockHash, err)
	}
	blockTime, err := safe.Uint64(src.Blocktime)
	if err != nil {
		return model.TxStatus{}, fmt.Errorf("tx %s block time overflow: %w", src.Txid, err)
	}
	return model.TxStatus{
		Confirmed:   true,
		BlockHeight: height,
		BlockHash:   src.BlockHash,
		BlockTime:   blockTime,
	}, nil
}
