package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo outbox_events y outbox_dead_letters sobre PostgreSQL.
type OutboxRepo struct {
	q Querier
}

// NewOutboxRepository construye el adaptador.
func NewOutboxRepository(q Querier) *OutboxRepo {
	return &OutboxRepo{q: q}
}

// Append inserta un evento pendiente (en la transacción de negocio).
func (r *OutboxRepo) Append(ctx context.Context, e *entity.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (id, event_type, event_data, occurred_on, tenant_id, is_processed, retry_count, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, 0, '', $6)`
	if _, err := r.q.Exec(ctx, query, e.ID, e.EventType, e.EventData, e.OccurredOn, e.TenantID, e.CreatedAt); err != nil {
		return fmt.Errorf("append outbox event: %w", err)
	}
	return nil
}

// FetchPending bloquea hasta limit filas pendientes; otros workers saltan las bloqueadas.
func (r *OutboxRepo) FetchPending(ctx context.Context, limit int) ([]*entity.OutboxEvent, error) {
	query := `
		SELECT id, event_type, event_data, occurred_on, tenant_id, is_processed, processed_on, retry_count, error_message, created_at
		FROM outbox_events
		WHERE NOT is_processed
		ORDER BY occurred_on, created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch pending outbox: %w", err)
	}
	defer rows.Close()
	var out []*entity.OutboxEvent
	for rows.Next() {
		var e entity.OutboxEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.EventData, &e.OccurredOn, &e.TenantID,
			&e.IsProcessed, &e.ProcessedOn, &e.RetryCount, &e.ErrorMessage, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// MarkProcessed publicación exitosa.
func (r *OutboxRepo) MarkProcessed(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE outbox_events SET is_processed = TRUE, processed_on = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark outbox processed: %w", err)
	}
	return nil
}

// MarkFailed guarda el intento fallido (y el cierre si agotó reintentos).
func (r *OutboxRepo) MarkFailed(ctx context.Context, e *entity.OutboxEvent) error {
	_, err := r.q.Exec(ctx, `
		UPDATE outbox_events
		SET retry_count = $2, error_message = $3, is_processed = $4, processed_on = $5
		WHERE id = $1`,
		e.ID, e.RetryCount, e.ErrorMessage, e.IsProcessed, e.ProcessedOn,
	)
	if err != nil {
		return fmt.Errorf("mark outbox failed: %w", err)
	}
	return nil
}

// InsertDeadLetter copia el evento agotado a outbox_dead_letters.
func (r *OutboxRepo) InsertDeadLetter(ctx context.Context, dl *entity.OutboxDeadLetter) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO outbox_dead_letters (id, outbox_event_id, event_type, event_data, occurred_on, tenant_id, retry_count, last_error, failed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		dl.ID, dl.OutboxEventID, dl.EventType, dl.EventData, dl.OccurredOn, dl.TenantID, dl.RetryCount, dl.LastError, dl.FailedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dead letter: %w", err)
	}
	return nil
}

const deadLetterColumns = `id, outbox_event_id, event_type, event_data, occurred_on, tenant_id, retry_count, last_error, failed_at, replayed_at`

func scanDeadLetter(row pgx.Row) (*entity.OutboxDeadLetter, error) {
	var dl entity.OutboxDeadLetter
	err := row.Scan(&dl.ID, &dl.OutboxEventID, &dl.EventType, &dl.EventData, &dl.OccurredOn, &dl.TenantID,
		&dl.RetryCount, &dl.LastError, &dl.FailedAt, &dl.ReplayedAt)
	if err != nil {
		return nil, err
	}
	return &dl, nil
}

// ListDeadLetters más recientes primero.
func (r *OutboxRepo) ListDeadLetters(ctx context.Context, limit, offset int) ([]*entity.OutboxDeadLetter, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+deadLetterColumns+` FROM outbox_dead_letters
		ORDER BY failed_at DESC, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list dead letters: %w", err)
	}
	defer rows.Close()
	var out []*entity.OutboxDeadLetter
	for rows.Next() {
		dl, err := scanDeadLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dead letter: %w", err)
		}
		out = append(out, dl)
	}
	return out, rows.Err()
}

// GetDeadLetterForUpdate bloquea el dead letter para reencolarlo una sola vez.
func (r *OutboxRepo) GetDeadLetterForUpdate(ctx context.Context, id string) (*entity.OutboxDeadLetter, error) {
	dl, err := scanDeadLetter(r.q.QueryRow(ctx, `SELECT `+deadLetterColumns+` FROM outbox_dead_letters WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("dead letter", id)
		}
		return nil, fmt.Errorf("get dead letter: %w", err)
	}
	return dl, nil
}

// MarkReplayed sella replayed_at.
func (r *OutboxRepo) MarkReplayed(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE outbox_dead_letters SET replayed_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark dead letter replayed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("dead letter", id)
	}
	return nil
}
