package snapshot

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveSave(err error, size int, started time.Time)
		ObserveLoad(err error, started time.Time)
	}
)
