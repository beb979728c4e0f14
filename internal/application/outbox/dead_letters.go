package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// DeadLetterService consulta y reencola eventos que agotaron reintentos.
type DeadLetterService struct {
	txRunner repository.TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewDeadLetterService construye el servicio.
func NewDeadLetterService(txRunner repository.TxRunner, log zerolog.Logger) *DeadLetterService {
	return &DeadLetterService{txRunner: txRunner, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// List dead letters, más recientes primero.
func (s *DeadLetterService) List(ctx context.Context, page dto.PageRequest) ([]dto.DeadLetterResponse, error) {
	page.Normalize()
	var out []dto.DeadLetterResponse
	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		list, err := tx.Outbox.ListDeadLetters(ctx, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		out = make([]dto.DeadLetterResponse, 0, len(list))
		for _, dl := range list {
			out = append(out, toDeadLetterResponse(dl))
		}
		return nil
	})
	return out, err
}

// Replay reencola el payload como una fila nueva de outbox (retry_count = 0) y marca replayed_at.
// Un dead letter ya reencolado no se vuelve a reencolar: si vuelve a fallar genera su propio dead letter.
func (s *DeadLetterService) Replay(ctx context.Context, id string) (*dto.DeadLetterResponse, error) {
	var out dto.DeadLetterResponse
	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		dl, err := tx.Outbox.GetDeadLetterForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if dl.ReplayedAt != nil {
			return domain.InvalidInput("dead letter %s was already replayed at %s", id, dl.ReplayedAt.Format(time.RFC3339))
		}
		now := s.now()
		if err := tx.Outbox.Append(ctx, &entity.OutboxEvent{
			ID:         uuid.New().String(),
			EventType:  dl.EventType,
			EventData:  dl.EventData,
			OccurredOn: dl.OccurredOn,
			TenantID:   dl.TenantID,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		if err := tx.Outbox.MarkReplayed(ctx, id, now); err != nil {
			return err
		}
		dl.ReplayedAt = &now
		out = toDeadLetterResponse(dl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("dead_letter_id", id).Str("event_type", out.EventType).Msg("dead letter replayed")
	return &out, nil
}

func toDeadLetterResponse(dl *entity.OutboxDeadLetter) dto.DeadLetterResponse {
	return dto.DeadLetterResponse{
		ID:            dl.ID,
		OutboxEventID: dl.OutboxEventID,
		EventType:     dl.EventType,
		EventData:     dl.EventData,
		OccurredOn:    dl.OccurredOn,
		TenantID:      dl.TenantID,
		RetryCount:    dl.RetryCount,
		LastError:     dl.LastError,
		FailedAt:      dl.FailedAt,
		ReplayedAt:    dl.ReplayedAt,
	}
}
