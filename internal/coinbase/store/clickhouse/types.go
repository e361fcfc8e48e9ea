package clickhouse

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"
	"time"
)

type (
	// Metrics records repository operations.
	Metrics interface {
		Observe(operation string, rows int, err error, started time.Time)
	}

	// Batch is the subset of driver.Batch the repository appends to.
	Batch interface {
		Append(v ...any) error
		Send() error
		Abort() error
	}

	// Conn prepares insert batches.
	Conn interface {
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Ping(ctx context.Context) error
		Close() error
	}
)
