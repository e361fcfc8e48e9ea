package model

// Network names a bitcoin network understood by the block sources.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)

// Source selects the upstream that feeds the producer.
type Source string

var (
	// SourceEsplora reads blocks from an Esplora-compatible explorer HTTP API.
	SourceEsplora Source = "esplora"
	// SourceRPC reads blocks from a bitcoind JSON-RPC endpoint.
	SourceRPC Source = "rpc"
)
