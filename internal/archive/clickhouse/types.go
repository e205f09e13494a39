package clickhouse

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, rows int, err error, started time.Time)
	}

	// Conn is the subset of the ClickHouse driver the repository uses.
	Conn interface {
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Query(ctx context.Context, query string, args ...any) (Rows, error)
		Close() error
	}

	Batch interface {
		Append(v ...any) error
		Send() error
		Abort() error
	}

	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close() error
	}
)
