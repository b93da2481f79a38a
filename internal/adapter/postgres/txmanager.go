package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager runs a function inside a single database transaction, carried
// down to the repositories through the context. Calls must not nest:
// RunInTx inside a RunInTx callback opens a second, independent
// transaction.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a TxManager on the given pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// RunInTx begins a transaction at the PostgreSQL default isolation level
// (Read Committed), runs fn with the transaction in its context, and
// commits. An error from fn aborts the transaction and comes back
// unwrapped so callers can match domain sentinels; a panic in fn also
// rolls back, then propagates.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// No-op after a successful commit; covers error and panic paths.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(txToCtx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
