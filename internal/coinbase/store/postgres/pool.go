// Package postgres persists analytics messages into the relational store.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions bound the shared connection pool.
type PoolOptions struct {
	MaxConns       int32
	AcquireTimeout time.Duration
}

// Pool wraps pgxpool.Pool and applies the acquire timeout to every transaction start.
type Pool struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

// Connect creates a connection pool and checks that the database answers.
func Connect(ctx context.Context, dsn string, opts PoolOptions) (*Pool, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	p := &Pool{pool: pool, acquireTimeout: opts.AcquireTimeout}

	pingCtx, cancel := p.acquireContext(ctx)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return p, nil
}

// Begin acquires a connection within the acquire timeout and starts a transaction on it.
func (p *Pool) Begin(ctx context.Context) (Tx, error) {
	acquireCtx, cancel := p.acquireContext(ctx)
	defer cancel()

	conn, err := p.pool.Acquire(acquireCtx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	tx, err := conn.Begin(ctx)
	if err != nil {
		conn.Release()
		return nil, fmt.Errorf("begin: %w", err)
	}
	return &pooledTx{Tx: tx, conn: conn}, nil
}

// Close closes every connection in the pool.
func (p *Pool) Close() {
	p.pool.Close()
}

func (p *Pool) acquireContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.acquireTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.acquireTimeout)
}
