package repository

import (
	"context"

	"leadflow_backend/platform/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the pool-backed repository that can also open a transaction.
type Store struct {
	*Repo
	pool *pgxpool.Pool
}

// NewStore returns a Store on pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Repo: New(pool), pool: pool}
}

// WithTx runs fn with a repository bound to one transaction.
func (s *Store) WithTx(ctx context.Context, fn func(repo Repository) error) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(New(tx))
	})
}
