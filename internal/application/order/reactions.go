package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// SystemUserID autor de los movimientos generados por reacciones automáticas.
const SystemUserID = "system"

// ReservationPolicy qué hacer cuando un pedido confirmado no se puede reservar completo.
type ReservationPolicy string

const (
	// PolicyPartial conserva lo reservado e informa partial/failed por línea.
	PolicyPartial ReservationPolicy = "partial"
	// PolicyAllOrNothing libera todo lo reservado en la reacción e informa failed.
	PolicyAllOrNothing ReservationPolicy = "all_or_nothing"
)

// StockReactions reacciones de stock a eventos de pedido y de compra.
// Corren dentro de la transacción que originó el evento.
type StockReactions struct {
	ledger    *stock.Ledger
	policy    ReservationPolicy
	log       zerolog.Logger
	now       func() time.Time
	shortfall metric.Int64Counter
}

// NewStockReactions construye las reacciones; policy vacía = PolicyPartial.
func NewStockReactions(ledger *stock.Ledger, policy ReservationPolicy, log zerolog.Logger) *StockReactions {
	if policy == "" {
		policy = PolicyPartial
	}
	shortfall, _ := otel.Meter(instrumentationName).Int64Counter("stock.reservation.shortfall",
		metric.WithDescription("Order confirmations that could not reserve every line in full"))
	return &StockReactions{
		ledger:    ledger,
		policy:    policy,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		shortfall: shortfall,
	}
}

// EventNames eventos atendidos.
func (h *StockReactions) EventNames() []string {
	return []string{
		entity.OrderConfirmedEvent{}.EventName(),
		entity.OrderCanceledEvent{}.EventName(),
		entity.OrderShippedEvent{}.EventName(),
		entity.OrderStockReserved{}.EventName(),
		entity.OrderStockReleased{}.EventName(),
		entity.OrderStockFulfilled{}.EventName(),
		entity.PurchaseOrderReceived{}.EventName(),
		entity.PurchaseReceiptValidated{}.EventName(),
	}
}

// HandleInternal ejecuta la reacción que corresponde al evento.
func (h *StockReactions) HandleInternal(ctx context.Context, tx repository.Tx, e event.DomainEvent) ([]event.DomainEvent, error) {
	switch ev := e.(type) {
	case entity.OrderConfirmedEvent:
		return h.onConfirmed(ctx, tx, ev)
	case entity.OrderCanceledEvent:
		return h.onCanceled(ctx, tx, ev)
	case entity.OrderShippedEvent:
		return h.onShipped(ctx, tx, ev)
	case entity.PurchaseOrderReceived:
		return h.receive(ctx, tx, ev.LocationID, ev.Lines, stock.MovementMeta{
			UserID:              ev.UserID,
			Reason:              "purchase order received",
			RelatedDocumentType: entity.DocumentPurchaseOrder,
			RelatedDocumentID:   ev.PurchaseOrderID,
		})
	case entity.PurchaseReceiptValidated:
		return h.receive(ctx, tx, ev.LocationID, ev.Lines, stock.MovementMeta{
			UserID:              ev.UserID,
			Reason:              "purchase receipt validated",
			RelatedDocumentType: entity.DocumentPurchaseReceipt,
			RelatedDocumentID:   ev.ReceiptID,
		})
	}
	return nil, nil
}

// onConfirmed reserva cada línea. Si el pedido ya tiene reservas vigentes no hace nada
// (despacho duplicado). Con all_or_nothing, un faltante libera todo lo reservado aquí.
func (h *StockReactions) onConfirmed(ctx context.Context, tx repository.Tx, ev entity.OrderConfirmedEvent) ([]event.DomainEvent, error) {
	o, err := tx.Orders.GetByIDForUpdate(ctx, ev.OrderID)
	if err != nil {
		return nil, err
	}
	if len(o.ActiveReservations()) > 0 {
		h.log.Debug().Str("order_id", o.ID).Msg("order already holds reservations, skipping")
		return nil, nil
	}

	var (
		events []event.DomainEvent
		lines  []entity.LineReservation
	)
	for _, line := range o.Lines {
		res, err := h.ledger.ReserveLine(ctx, tx, o, line, o.PreferredLocationID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, res.Line)
		events = append(events, res.Events...)
	}

	outcome := overallOutcome(lines)
	if outcome != entity.OutcomeReserved {
		h.shortfall.Add(ctx, 1, metric.WithAttributes(
			attribute.String("policy", string(h.policy)), attribute.String("outcome", string(outcome))))
		h.log.Warn().Str("order_id", o.ID).Str("outcome", string(outcome)).Str("policy", string(h.policy)).
			Msg("order could not be fully reserved")
	}
	if outcome != entity.OutcomeReserved && h.policy == PolicyAllOrNothing {
		for i := range lines {
			for _, p := range lines[i].Portions {
				_, relEvents, err := h.ledger.ReleaseClamped(ctx, tx, p.StockItemID, p.Quantity)
				if err != nil {
					return nil, err
				}
				events = append(events, relEvents...)
				o.DropReservation(p.ReservationID)
			}
			lines[i].Portions = nil
			lines[i].Reserved = decimal.Zero
			lines[i].Outcome = entity.OutcomeFailed
		}
		outcome = entity.OutcomeFailed
	}

	if err := tx.Orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return append(events, entity.OrderStockReserved{
		Base:    h.base(o),
		OrderID: o.ID,
		Outcome: outcome,
		Lines:   lines,
	}), nil
}

// onCanceled libera cada reserva vigente; si el ítem ya tiene menos reservado, libera lo que haya.
func (h *StockReactions) onCanceled(ctx context.Context, tx repository.Tx, ev entity.OrderCanceledEvent) ([]event.DomainEvent, error) {
	o, err := tx.Orders.GetByIDForUpdate(ctx, ev.OrderID)
	if err != nil {
		return nil, err
	}
	active := o.ActiveReservations()
	if len(active) == 0 {
		return nil, nil
	}
	var (
		events   []event.DomainEvent
		portions []entity.ReservationPortion
	)
	now := h.now()
	for _, r := range active {
		released, relEvents, err := h.ledger.ReleaseClamped(ctx, tx, r.StockItemID, r.Quantity)
		if err != nil {
			return nil, err
		}
		if released.LessThan(r.Quantity) {
			h.log.Warn().Str("order_id", o.ID).Str("reservation_id", r.ID).
				Str("expected", r.Quantity.String()).Str("released", released.String()).
				Msg("reservation released partially, item held less than reserved")
		}
		events = append(events, relEvents...)
		portions = append(portions, entity.ReservationPortion{
			ReservationID: r.ID, StockItemID: r.StockItemID, LocationID: r.LocationID, Quantity: released,
		})
		if err := o.ReleaseReservation(r.ID, now); err != nil {
			return nil, err
		}
	}
	if err := tx.Orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return append(events, entity.OrderStockReleased{Base: h.base(o), OrderID: o.ID, Portions: portions}), nil
}

// onShipped convierte cada reserva vigente en salida física.
func (h *StockReactions) onShipped(ctx context.Context, tx repository.Tx, ev entity.OrderShippedEvent) ([]event.DomainEvent, error) {
	o, err := tx.Orders.GetByIDForUpdate(ctx, ev.OrderID)
	if err != nil {
		return nil, err
	}
	active := o.ActiveReservations()
	if len(active) == 0 {
		return nil, nil
	}
	var (
		events   []event.DomainEvent
		portions []entity.ReservationPortion
	)
	now := h.now()
	for _, r := range active {
		_, fEvents, err := h.ledger.Fulfill(ctx, tx, r.StockItemID, r.Quantity, stock.MovementMeta{
			UserID:              SystemUserID,
			Reason:              "order " + o.Number + " shipped",
			RelatedDocumentType: entity.DocumentOrder,
			RelatedDocumentID:   o.ID,
		})
		if err != nil {
			return nil, err
		}
		events = append(events, fEvents...)
		portions = append(portions, entity.ReservationPortion{
			ReservationID: r.ID, StockItemID: r.StockItemID, LocationID: r.LocationID, Quantity: r.Quantity,
		})
		if err := o.FulfillReservation(r.ID, now); err != nil {
			return nil, err
		}
	}
	if err := tx.Orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return append(events, entity.OrderStockFulfilled{Base: h.base(o), OrderID: o.ID, Portions: portions}), nil
}

func (h *StockReactions) receive(ctx context.Context, tx repository.Tx, locationID string, lines []entity.PurchaseLine, meta stock.MovementMeta) ([]event.DomainEvent, error) {
	if locationID == "" {
		return nil, domain.InvalidInput("purchase %s has no destination location", meta.RelatedDocumentID)
	}
	var events []event.DomainEvent
	for _, l := range lines {
		key := entity.StockKey{ProductID: l.ProductID, VariantID: l.VariantID, LocationID: locationID}
		_, _, recEvents, err := h.ledger.Receive(ctx, tx, key, l.Quantity, meta)
		if err != nil {
			return nil, err
		}
		events = append(events, recEvents...)
	}
	return events, nil
}

func (h *StockReactions) base(o *entity.Order) event.Base {
	return event.Base{ID: uuid.New().String(), Occurred: h.now(), Tenant: o.TenantID}
}

func overallOutcome(lines []entity.LineReservation) entity.ReservationOutcome {
	full, some := true, false
	for _, l := range lines {
		if l.Outcome != entity.OutcomeReserved {
			full = false
		}
		if l.Reserved.IsPositive() {
			some = true
		}
	}
	switch {
	case full:
		return entity.OutcomeReserved
	case some:
		return entity.OutcomePartial
	}
	return entity.OutcomeFailed
}
