package archive

import "time"

const (
	transactionFlushThreshold = 1000

	blockBatcherCapacity      = 100
	blockBatcherFlushInterval = 5 * time.Second
	blockBatcherFlushesPerSec = 20
)
