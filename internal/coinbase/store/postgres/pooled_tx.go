package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pooledTx returns its connection to the pool once the transaction ends.
type pooledTx struct {
	pgx.Tx
	conn     *pgxpool.Conn
	released bool
}

func (t *pooledTx) Commit(ctx context.Context) error {
	err := t.Tx.Commit(ctx)
	t.release()
	return err
}

func (t *pooledTx) Rollback(ctx context.Context) error {
	err := t.Tx.Rollback(ctx)
	t.release()
	return err
}

func (t *pooledTx) release() {
	if t.released {
		return
	}
	t.released = true
	t.conn.Release()
}
