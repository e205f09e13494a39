package service

import "time"

const (
	produceInterval = 5 * time.Second
	retryInterval   = 2 * time.Second
	inboxInterval   = 1 * time.Second

	inboxBatchLimit = 500
)
