package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
)

// OrderStatus estado del ciclo de vida de un pedido.
type OrderStatus string

const (
	OrderDraft         OrderStatus = "draft"
	OrderConfirmed     OrderStatus = "confirmed"
	OrderInPreparation OrderStatus = "in_preparation"
	OrderReady         OrderStatus = "ready"
	OrderShipped       OrderStatus = "shipped"
	OrderDelivered     OrderStatus = "delivered"
	OrderInvoiced      OrderStatus = "invoiced"
	OrderCanceled      OrderStatus = "canceled"
)

// orderFlow avance lineal; canceled se permite desde cualquier estado no terminal.
var orderFlow = map[OrderStatus]OrderStatus{
	OrderDraft:         OrderConfirmed,
	OrderConfirmed:     OrderInPreparation,
	OrderInPreparation: OrderReady,
	OrderReady:         OrderShipped,
	OrderShipped:       OrderDelivered,
	OrderDelivered:     OrderInvoiced,
}

// IsTerminal invoiced y canceled no admiten más transiciones.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderInvoiced || s == OrderCanceled
}

// CanTransitionTo valida una transición de estado.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if to == OrderCanceled {
		return true
	}
	return orderFlow[s] == to
}

// OrderLine línea de pedido (producto, variante opcional y cantidad).
type OrderLine struct {
	ID        string
	ProductID string
	VariantID string
	Quantity  decimal.Decimal
}

// Order agregado de pedido. Aquí solo se modela lo que toca stock: estado, líneas y reservas.
type Order struct {
	ID                  string
	Number              string
	TenantID            string
	Status              OrderStatus
	PreferredLocationID string
	Lines               []OrderLine
	Reservations        []StockReservation
	CancelReason        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Line busca una línea por ID.
func (o *Order) Line(lineID string) (*OrderLine, bool) {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i], true
		}
	}
	return nil, false
}

func (o *Order) transition(to OrderStatus, now time.Time) error {
	if !o.Status.CanTransitionTo(to) {
		return &domain.StockError{
			Kind:    domain.ErrInvalidTransition,
			Message: fmt.Sprintf("order %s cannot move from %s to %s", o.Number, o.Status, to),
		}
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}

// Confirm draft → confirmed. Dispara la reserva de stock vía OrderConfirmed.
func (o *Order) Confirm(now time.Time) ([]event.DomainEvent, error) {
	if len(o.Lines) == 0 {
		return nil, domain.InvalidInput("order %s has no lines", o.Number)
	}
	if err := o.transition(OrderConfirmed, now); err != nil {
		return nil, err
	}
	return []event.DomainEvent{OrderConfirmedEvent{Base: o.eventBase(now), OrderID: o.ID}}, nil
}

// StartPreparation confirmed → in_preparation.
func (o *Order) StartPreparation(now time.Time) ([]event.DomainEvent, error) {
	return nil, o.transition(OrderInPreparation, now)
}

// MarkReady in_preparation → ready.
func (o *Order) MarkReady(now time.Time) ([]event.DomainEvent, error) {
	return nil, o.transition(OrderReady, now)
}

// Ship ready → shipped. Dispara la salida física de lo reservado.
func (o *Order) Ship(now time.Time) ([]event.DomainEvent, error) {
	if err := o.transition(OrderShipped, now); err != nil {
		return nil, err
	}
	return []event.DomainEvent{OrderShippedEvent{Base: o.eventBase(now), OrderID: o.ID}}, nil
}

// Deliver shipped → delivered.
func (o *Order) Deliver(now time.Time) ([]event.DomainEvent, error) {
	return nil, o.transition(OrderDelivered, now)
}

// MarkInvoiced delivered → invoiced.
func (o *Order) MarkInvoiced(now time.Time) ([]event.DomainEvent, error) {
	return nil, o.transition(OrderInvoiced, now)
}

// Cancel cualquier estado no terminal → canceled. Dispara la liberación de reservas.
func (o *Order) Cancel(reason string, now time.Time) ([]event.DomainEvent, error) {
	if err := o.transition(OrderCanceled, now); err != nil {
		return nil, err
	}
	o.CancelReason = reason
	return []event.DomainEvent{OrderCanceledEvent{Base: o.eventBase(now), OrderID: o.ID, Reason: reason}}, nil
}

// AddStockReservation registra una reserva para una línea de este pedido.
func (o *Order) AddStockReservation(lineID, stockItemID, locationID string, qty decimal.Decimal, now time.Time) (*StockReservation, error) {
	if _, ok := o.Line(lineID); !ok {
		return nil, domain.InvalidInput("line %s does not belong to order %s", lineID, o.Number)
	}
	if !qty.IsPositive() {
		return nil, domain.InvalidInput("reservation quantity must be greater than zero")
	}
	o.Reservations = append(o.Reservations, StockReservation{
		ID:          uuid.New().String(),
		OrderID:     o.ID,
		OrderLineID: lineID,
		StockItemID: stockItemID,
		LocationID:  locationID,
		Quantity:    qty,
		Status:      ReservationReserved,
		ReservedAt:  now,
		UpdatedAt:   now,
	})
	return &o.Reservations[len(o.Reservations)-1], nil
}

// ActiveReservations reservas en estado reserved.
func (o *Order) ActiveReservations() []*StockReservation {
	var out []*StockReservation
	for i := range o.Reservations {
		if o.Reservations[i].IsActive() {
			out = append(out, &o.Reservations[i])
		}
	}
	return out
}

// ReleaseReservation marca una reserva como liberada.
func (o *Order) ReleaseReservation(id string, now time.Time) error {
	return o.closeReservation(id, ReservationReleased, now)
}

// FulfillReservation marca una reserva como consumida por el despacho.
func (o *Order) FulfillReservation(id string, now time.Time) error {
	return o.closeReservation(id, ReservationFulfilled, now)
}

func (o *Order) closeReservation(id string, status ReservationStatus, now time.Time) error {
	for i := range o.Reservations {
		r := &o.Reservations[i]
		if r.ID != id {
			continue
		}
		if !r.IsActive() {
			return domain.InvalidInput("reservation %s is already %s", id, r.Status)
		}
		t := now
		r.Status = status
		r.ReleasedAt = &t
		r.UpdatedAt = now
		return nil
	}
	return domain.NotFound("reservation", id)
}

// DropReservation quita una reserva recién creada (compensación dentro de la misma transacción).
func (o *Order) DropReservation(id string) {
	for i := range o.Reservations {
		if o.Reservations[i].ID == id {
			o.Reservations = append(o.Reservations[:i], o.Reservations[i+1:]...)
			return
		}
	}
}

func (o *Order) eventBase(now time.Time) event.Base {
	return event.Base{ID: uuid.New().String(), Occurred: now, Tenant: o.TenantID}
}
