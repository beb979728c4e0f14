package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// La espera por bloqueos de fila está acotada por lock_timeout; si vence (o hay deadlock)
// la transacción completa se reintenta con backoff exponencial hasta retries veces.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
	retries     int
	log         zerolog.Logger
}

// NewTxRunner construye el runner con el pool. lockTimeout <= 0 deja el default del servidor.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration, retries int, log zerolog.Logger) *TxRunner {
	if retries < 0 {
		retries = 0
	}
	return &TxRunner{pool: pool, lockTimeout: lockTimeout, retries: retries, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.Tx) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(r.retries)), ctx)

	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		err := r.runOnce(ctx, fn)
		if err == nil || isLockConflict(err) {
			return err
		}
		return backoff.Permanent(err)
	}, policy, func(err error, wait time.Duration) {
		r.log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("lock conflict, retrying transaction")
	})
	if err != nil && isLockConflict(err) {
		return &domain.StockError{
			Kind:    domain.ErrLockTimeout,
			Message: fmt.Sprintf("could not acquire stock row lock after %d attempts: %v", attempt, err),
		}
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		// SET no admite parámetros ($1)
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(Repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repositories arma el set de repos sobre q (pool o tx).
func Repositories(q Querier) repository.Tx {
	return repository.Tx{
		StockItems: NewStockItemRepository(q),
		Movements:  NewStockMovementRepository(q),
		Locations:  NewLocationRepository(q),
		Orders:     NewOrderRepository(q),
		Outbox:     NewOutboxRepository(q),
	}
}
