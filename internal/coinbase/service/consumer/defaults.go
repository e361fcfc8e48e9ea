package consumer

import "time"

const (
	queueCapacity = 1000

	readErrorBackoff = time.Second

	mirrorFlushSize     = 100
	mirrorQueueSize     = 1000
	mirrorFlushInterval = 5 * time.Second

	// ClickHouse favours few large inserts.
	mirrorInsertsPerSecond = 1
)

// Record outcomes reported to Metrics.ObserveRecord.
const (
	outcomeDecoded = "decoded"
	outcomeInvalid = "invalid"
)
