package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

// TxManager runs units of work in REPEATABLE READ transactions and retries
// them on serialization failures and deadlocks.
type TxManager struct {
	pool        *pgxpool.Pool
	maxAttempts int
	backoff     time.Duration
	logger      *zap.Logger
}

// NewTxManager creates a transaction manager. maxAttempts below 1 is treated as 1.
func NewTxManager(pool *pgxpool.Pool, maxAttempts int, logger *zap.Logger) repository.TxManager {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TxManager{
		pool:        pool,
		maxAttempts: maxAttempts,
		backoff:     20 * time.Millisecond,
		logger:      logger,
	}
}

// WithinTx runs fn in a transaction. A ctx that already carries a transaction is joined, not nested.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err = m.run(ctx, fn)
		if !domainErrors.IsConcurrentModification(err) {
			return err
		}
		if attempt == m.maxAttempts {
			break
		}

		m.logger.Warn("retrying transaction after conflict",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.backoff * time.Duration(attempt)):
		}
	}
	return err
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return mapError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return mapError(err)
	}
	return mapError(tx.Commit(ctx))
}
