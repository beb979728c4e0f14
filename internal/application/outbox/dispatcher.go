// Package outbox implementa el patrón transactional outbox: captura de eventos de
// integración en la transacción de negocio y publicación asíncrona hacia el broker.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// DefaultMaxDepth límite de encadenamiento de eventos de seguimiento.
const DefaultMaxDepth = 4

// Handler atiende uno o más eventos de dominio.
// MapToIntegrationEvent decide qué se publica; HandleInternal ejecuta reacciones dentro
// de la misma transacción y puede devolver eventos de seguimiento.
type Handler interface {
	EventNames() []string
	MapToIntegrationEvent(e event.DomainEvent) (event.IntegrationEvent, bool)
	HandleInternal(ctx context.Context, tx repository.Tx, e event.DomainEvent) ([]event.DomainEvent, error)
}

// Dispatcher entrega eventos de dominio a los handlers registrados y escribe en outbox
// los eventos de integración resultantes, siempre sobre la transacción recibida.
type Dispatcher struct {
	handlers map[string][]Handler
	maxDepth int
	now      func() time.Time
	log      zerolog.Logger
}

// NewDispatcher crea un dispatcher sin handlers.
func NewDispatcher(log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: map[string][]Handler{},
		maxDepth: DefaultMaxDepth,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

// Register asocia h a cada evento que declara. Se llama en el arranque, antes de despachar.
func (d *Dispatcher) Register(h Handler) {
	for _, name := range h.EventNames() {
		d.handlers[name] = append(d.handlers[name], h)
	}
}

// Dispatch procesa events en orden. Cualquier error se devuelve tal cual para que la
// transacción haga rollback: sin commit no queda ni el cambio de negocio ni la fila de outbox.
func (d *Dispatcher) Dispatch(ctx context.Context, tx repository.Tx, events ...event.DomainEvent) error {
	return d.dispatch(ctx, tx, events, 0)
}

func (d *Dispatcher) dispatch(ctx context.Context, tx repository.Tx, events []event.DomainEvent, depth int) error {
	if len(events) == 0 {
		return nil
	}
	if depth > d.maxDepth {
		return fmt.Errorf("dispatch: follow-up events nested deeper than %d (last: %s)", d.maxDepth, events[0].EventName())
	}
	for _, e := range events {
		handlers := d.handlers[e.EventName()]
		if len(handlers) == 0 {
			d.log.Debug().Str("event", e.EventName()).Msg("no handlers registered")
			continue
		}
		for _, h := range handlers {
			if ie, ok := h.MapToIntegrationEvent(e); ok {
				if err := d.enqueue(ctx, tx, ie); err != nil {
					return err
				}
			}
			followUps, err := h.HandleInternal(ctx, tx, e)
			if err != nil {
				return fmt.Errorf("handle %s: %w", e.EventName(), err)
			}
			if err := d.dispatch(ctx, tx, followUps, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dispatcher) enqueue(ctx context.Context, tx repository.Tx, ie event.IntegrationEvent) error {
	row, err := NewOutboxEvent(ie, d.now())
	if err != nil {
		return err
	}
	if err := tx.Outbox.Append(ctx, row); err != nil {
		return fmt.Errorf("append outbox event %s: %w", row.EventType, err)
	}
	return nil
}

// NewOutboxEvent serializa ie a JSON (decimales como string, fechas RFC 3339) en una fila pendiente.
func NewOutboxEvent(ie event.IntegrationEvent, now time.Time) (*entity.OutboxEvent, error) {
	data, err := json.Marshal(ie)
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", ie.EventType(), err)
	}
	occurred := ie.OccurredOn()
	if occurred.IsZero() {
		occurred = now
	}
	return &entity.OutboxEvent{
		ID:         uuid.New().String(),
		EventType:  ie.EventType(),
		EventData:  data,
		OccurredOn: occurred,
		TenantID:   ie.TenantID(),
		CreatedAt:  now,
	}, nil
}
