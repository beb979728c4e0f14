package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/event"
)

// OrderConfirmedEvent el pedido pasó a confirmed; dispara la reserva de stock.
type OrderConfirmedEvent struct {
	event.Base
	OrderID string
}

func (e OrderConfirmedEvent) EventName() string   { return "OrderConfirmedDomainEvent" }
func (e OrderConfirmedEvent) AggregateID() string { return e.OrderID }

// OrderCanceledEvent el pedido se canceló; dispara la liberación de reservas.
type OrderCanceledEvent struct {
	event.Base
	OrderID string
	Reason  string
}

func (e OrderCanceledEvent) EventName() string   { return "OrderCanceledDomainEvent" }
func (e OrderCanceledEvent) AggregateID() string { return e.OrderID }

// OrderShippedEvent el pedido se despachó; dispara la salida física de lo reservado.
type OrderShippedEvent struct {
	event.Base
	OrderID string
}

func (e OrderShippedEvent) EventName() string   { return "OrderShippedDomainEvent" }
func (e OrderShippedEvent) AggregateID() string { return e.OrderID }

// ReservationOutcome resultado de reservar una línea o un pedido completo.
type ReservationOutcome string

const (
	OutcomeReserved ReservationOutcome = "reserved"
	OutcomePartial  ReservationOutcome = "partial"
	OutcomeFailed   ReservationOutcome = "failed"
)

// LineReservation detalle por línea de lo que se pudo reservar.
type LineReservation struct {
	OrderLineID string
	ProductID   string
	VariantID   string
	Requested   decimal.Decimal
	Reserved    decimal.Decimal
	Outcome     ReservationOutcome
	Portions    []ReservationPortion
}

// ReservationPortion cantidad apartada en una ubicación concreta.
type ReservationPortion struct {
	ReservationID string
	StockItemID   string
	LocationID    string
	Quantity      decimal.Decimal
}

// OrderStockReserved resultado de la reacción a OrderConfirmed.
type OrderStockReserved struct {
	event.Base
	OrderID string
	Outcome ReservationOutcome
	Lines   []LineReservation
}

func (e OrderStockReserved) EventName() string   { return "OrderStockReservedDomainEvent" }
func (e OrderStockReserved) AggregateID() string { return e.OrderID }

// OrderStockReleased reservas liberadas por cancelación (o compensación).
type OrderStockReleased struct {
	event.Base
	OrderID  string
	Portions []ReservationPortion
}

func (e OrderStockReleased) EventName() string   { return "OrderStockReleasedDomainEvent" }
func (e OrderStockReleased) AggregateID() string { return e.OrderID }

// OrderStockFulfilled reservas consumidas por el despacho.
type OrderStockFulfilled struct {
	event.Base
	OrderID  string
	Portions []ReservationPortion
}

func (e OrderStockFulfilled) EventName() string   { return "OrderStockFulfilledDomainEvent" }
func (e OrderStockFulfilled) AggregateID() string { return e.OrderID }

// StockTransferred traslado completado entre dos ubicaciones.
type StockTransferred struct {
	event.Base
	CorrelationID  string
	ProductID      string
	VariantID      string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
	Reason         string
}

func (e StockTransferred) EventName() string   { return "StockTransferredDomainEvent" }
func (e StockTransferred) AggregateID() string { return e.CorrelationID }
