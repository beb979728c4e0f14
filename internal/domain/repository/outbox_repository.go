package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// OutboxRepository puerto de la bandeja de salida y su tabla de dead letters.
type OutboxRepository interface {
	Append(ctx context.Context, e *entity.OutboxEvent) error
	// FetchPending filas no procesadas, más antiguas primero, bloqueadas con SKIP LOCKED.
	FetchPending(ctx context.Context, limit int) ([]*entity.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id string, at time.Time) error
	// MarkFailed guarda RetryCount, ErrorMessage, IsProcessed y ProcessedOn del evento.
	MarkFailed(ctx context.Context, e *entity.OutboxEvent) error
	InsertDeadLetter(ctx context.Context, dl *entity.OutboxDeadLetter) error
	ListDeadLetters(ctx context.Context, limit, offset int) ([]*entity.OutboxDeadLetter, error)
	GetDeadLetterForUpdate(ctx context.Context, id string) (*entity.OutboxDeadLetter, error)
	MarkReplayed(ctx context.Context, id string, at time.Time) error
}
