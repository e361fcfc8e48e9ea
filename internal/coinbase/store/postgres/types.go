package postgres

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

type (
	// Metrics records store operations.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// Tx is the subset of pgx.Tx the store needs.
	Tx interface {
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TxBeginner opens transactions.
	TxBeginner interface {
		Begin(ctx context.Context) (Tx, error)
	}
)
