package bitcoin

import (
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// rpcClient wraps a node client with metrics instrumentation.
type rpcClient struct {
	client     NodeClient
	rpcMetrics RPCMetrics
}

// NewRPCClient constructs an instrumented RPC client. *rpcclient.Client satisfies NodeClient.
func NewRPCClient(client NodeClient, rpcMetrics RPCMetrics) NodeClient {
	return &rpcClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

// GetBlockCount returns the latest block count.
func (r *rpcClient) GetBlockCount() (count int64, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_count", err, started)
	}()
	return r.client.GetBlockCount()
}

// GetBlockHash returns the block hash for a height.
func (r *rpcClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	return r.client.GetBlockHash(blockHeight)
}

// GetBlockVerbose returns a block with its transaction ids.
func (r *rpcClient) GetBlockVerbose(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_verbose", err, started)
	}()
	return r.client.GetBlockVerbose(blockHash)
}

// GetBlockHeaderVerbose returns the header of a block.
func (r *rpcClient) GetBlockHeaderVerbose(blockHash *chainhash.Hash) (res *btcjson.GetBlockHeaderVerboseResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_header_verbose", err, started)
	}()
	return r.client.GetBlockHeaderVerbose(blockHash)
}

// GetRawTransactionVerbose returns a decoded transaction. The node needs -txindex for
// transactions outside its wallet and mempool.
func (r *rpcClient) GetRawTransactionVerbose(txHash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_raw_transaction_verbose", err, started)
	}()
	return r.client.GetRawTransactionVerbose(txHash)
}
