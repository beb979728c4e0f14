package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus estado de una reserva de stock.
type ReservationStatus string

const (
	ReservationReserved  ReservationStatus = "reserved"
	ReservationFulfilled ReservationStatus = "fulfilled"
	ReservationReleased  ReservationStatus = "released"
)

// StockReservation vincula una línea de pedido con la reserva hecha sobre un StockItem.
// Solo se crea vía Order.AddStockReservation, así siempre es trazable a una línea del pedido.
type StockReservation struct {
	ID          string
	OrderID     string
	OrderLineID string
	StockItemID string
	LocationID  string
	Quantity    decimal.Decimal
	Status      ReservationStatus
	ReservedAt  time.Time
	ReleasedAt  *time.Time
	UpdatedAt   time.Time
}

// IsActive reserva vigente (ni liberada ni consumida).
func (r *StockReservation) IsActive() bool {
	return r.Status == ReservationReserved
}
