package producer

import "time"

const (
	defaultPollInterval = time.Minute
	defaultFetchWorkers = 4

	queueCapacity = 1000
	batchSize     = 10

	recentCapacity = 1000
)

// Block outcomes reported to Metrics.ObserveBlock.
const (
	outcomeBuilt       = "built"
	outcomeSeen        = "seen"
	outcomeFetchTxID   = "fetch_txid_failed"
	outcomeFetchTx     = "fetch_tx_failed"
	outcomeNotCoinbase = "not_coinbase"
	outcomeDecode      = "decode_failed"
)
