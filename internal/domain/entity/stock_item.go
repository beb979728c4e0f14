package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
)

// ValuationMethod método de valorización declarado para el ítem.
type ValuationMethod string

const (
	ValuationStandard ValuationMethod = "standard"
	ValuationFIFO     ValuationMethod = "fifo"
	ValuationAVCO     ValuationMethod = "avco"
)

// Valid indica si el método pertenece al catálogo.
func (m ValuationMethod) Valid() bool {
	return m == ValuationStandard || m == ValuationFIFO || m == ValuationAVCO
}

// StockKey identifica un StockItem: producto × variante × ubicación.
// VariantID vacío = producto sin variantes.
type StockKey struct {
	ProductID  string
	VariantID  string
	LocationID string
}

// Less orden total de claves; se usa para bloquear filas siempre en el mismo orden.
func (k StockKey) Less(o StockKey) bool {
	if k.LocationID != o.LocationID {
		return k.LocationID < o.LocationID
	}
	if k.ProductID != o.ProductID {
		return k.ProductID < o.ProductID
	}
	return k.VariantID < o.VariantID
}

// StockItem stock de un producto (y variante) en una ubicación.
// Invariantes: PhysicalQuantity >= 0 y 0 <= ReservedQuantity <= PhysicalQuantity.
// Solo se muta vía Reserve/Release/Adjust o los cambios físicos que dispara un StockMovement.
type StockItem struct {
	ID               string
	ProductID        string
	VariantID        string
	LocationID       string
	PhysicalQuantity decimal.Decimal
	ReservedQuantity decimal.Decimal
	MinStock         decimal.NullDecimal
	MaxStock         decimal.NullDecimal
	ReorderPoint     decimal.NullDecimal
	ReorderQuantity  decimal.NullDecimal
	ValuationMethod  ValuationMethod
	LastMovementAt   *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewStockItem crea un ítem vacío (se usa al recibir o trasladar por primera vez a una ubicación).
func NewStockItem(key StockKey, now time.Time) *StockItem {
	return &StockItem{
		ID:               uuid.New().String(),
		ProductID:        key.ProductID,
		VariantID:        key.VariantID,
		LocationID:       key.LocationID,
		PhysicalQuantity: decimal.Zero,
		ReservedQuantity: decimal.Zero,
		ValuationMethod:  ValuationStandard,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Key devuelve la clave única del ítem.
func (s *StockItem) Key() StockKey {
	return StockKey{ProductID: s.ProductID, VariantID: s.VariantID, LocationID: s.LocationID}
}

// Available cantidad física no reservada.
func (s *StockItem) Available() decimal.Decimal {
	return s.PhysicalQuantity.Sub(s.ReservedQuantity)
}

// CheckInvariants RG-STOCK-001 y RG-STOCK-002.
func (s *StockItem) CheckInvariants() error {
	if s.PhysicalQuantity.IsNegative() {
		return domain.InvariantViolation("RG-STOCK-001", "physical quantity "+s.PhysicalQuantity.String()+" is negative")
	}
	if s.ReservedQuantity.IsNegative() {
		return domain.InvariantViolation("RG-STOCK-002", "reserved quantity "+s.ReservedQuantity.String()+" is negative")
	}
	if s.ReservedQuantity.GreaterThan(s.PhysicalQuantity) {
		return domain.InvariantViolation("RG-STOCK-002",
			"reserved quantity "+s.ReservedQuantity.String()+" exceeds physical quantity "+s.PhysicalQuantity.String())
	}
	return nil
}

// Reserve aparta stock disponible. No genera movimiento: es una retención, no un cambio físico.
func (s *StockItem) Reserve(qty decimal.Decimal, now time.Time) ([]event.DomainEvent, error) {
	if err := requirePositive(qty); err != nil {
		return nil, err
	}
	if s.Available().LessThan(qty) {
		return nil, domain.InsufficientStock(s.Available(), qty)
	}
	return s.mutate(StockOpReserved, qty, now, false, func() {
		s.ReservedQuantity = s.ReservedQuantity.Add(qty)
	})
}

// Release devuelve a disponible una cantidad reservada.
func (s *StockItem) Release(qty decimal.Decimal, now time.Time) ([]event.DomainEvent, error) {
	if err := requirePositive(qty); err != nil {
		return nil, err
	}
	if s.ReservedQuantity.LessThan(qty) {
		return nil, domain.InsufficientReservation(s.ReservedQuantity, qty)
	}
	return s.mutate(StockOpReleased, qty, now, false, func() {
		s.ReservedQuantity = s.ReservedQuantity.Sub(qty)
	})
}

// ReleaseClamped libera hasta qty sin fallar si lo reservado ya bajó por otra vía.
// Devuelve la cantidad efectivamente liberada.
func (s *StockItem) ReleaseClamped(qty decimal.Decimal, now time.Time) (decimal.Decimal, []event.DomainEvent, error) {
	if err := requirePositive(qty); err != nil {
		return decimal.Zero, nil, err
	}
	released := decimal.Min(qty, s.ReservedQuantity)
	if !released.IsPositive() {
		return decimal.Zero, nil, nil
	}
	events, err := s.Release(released, now)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return released, events, nil
}

// Adjust aplica un ajuste con signo al stock físico (conteos, mermas, correcciones).
func (s *StockItem) Adjust(delta decimal.Decimal, now time.Time) ([]event.DomainEvent, error) {
	if delta.IsZero() {
		return nil, domain.InvalidInput("adjustment quantity must not be zero")
	}
	newPhysical := s.PhysicalQuantity.Add(delta)
	if newPhysical.IsNegative() {
		return nil, domain.NegativeStock(s.PhysicalQuantity, delta)
	}
	if newPhysical.LessThan(s.ReservedQuantity) {
		return nil, domain.ReservedExceedsPhysical(newPhysical, s.ReservedQuantity)
	}
	return s.mutate(StockOpAdjusted, delta, now, true, func() {
		s.PhysicalQuantity = newPhysical
	})
}

// Receive entrada física (compra, traslado entrante).
func (s *StockItem) Receive(qty decimal.Decimal, now time.Time) ([]event.DomainEvent, error) {
	if err := requirePositive(qty); err != nil {
		return nil, err
	}
	return s.mutate(StockOpReceived, qty, now, true, func() {
		s.PhysicalQuantity = s.PhysicalQuantity.Add(qty)
	})
}

// Withdraw salida física de stock disponible; lo reservado no se puede sacar por esta vía.
func (s *StockItem) Withdraw(qty decimal.Decimal, now time.Time) ([]event.DomainEvent, error) {
	if err := requirePositive(qty); err != nil {
		return nil, err
	}
	if s.Available().LessThan(qty) {
		return nil, domain.InsufficientStock(s.Available(), qty)
	}
	return s.mutate(StockOpWithdrawn, qty.Neg(), now, true, func() {
		s.PhysicalQuantity = s.PhysicalQuantity.Sub(qty)
	})
}

// Fulfill consume una reserva al despachar: baja físico y reservado en la misma cantidad.
func (s *StockItem) Fulfill(qty decimal.Decimal, now time.Time) ([]event.DomainEvent, error) {
	if err := requirePositive(qty); err != nil {
		return nil, err
	}
	if s.ReservedQuantity.LessThan(qty) {
		return nil, domain.InsufficientReservation(s.ReservedQuantity, qty)
	}
	return s.mutate(StockOpFulfilled, qty.Neg(), now, true, func() {
		s.PhysicalQuantity = s.PhysicalQuantity.Sub(qty)
		s.ReservedQuantity = s.ReservedQuantity.Sub(qty)
	})
}

// NeedsReorder disponible en o por debajo del punto de reorden.
func (s *StockItem) NeedsReorder() bool {
	return s.ReorderPoint.Valid && s.Available().LessThanOrEqual(s.ReorderPoint.Decimal)
}

// mutate aplica fn, re-valida invariantes y revierte si fallan. physical indica si
// hubo cambio físico (estampa LastMovementAt).
func (s *StockItem) mutate(op StockOperation, qty decimal.Decimal, now time.Time, physical bool, fn func()) ([]event.DomainEvent, error) {
	before := *s
	wasAboveReorder := !s.NeedsReorder()

	fn()
	if err := s.CheckInvariants(); err != nil {
		*s = before
		return nil, err
	}
	s.UpdatedAt = now
	if physical {
		t := now
		s.LastMovementAt = &t
	}

	events := []event.DomainEvent{newStockLevelChanged(s, op, qty, now)}
	if wasAboveReorder && s.NeedsReorder() {
		events = append(events, newStockReorderPointReached(s, now))
	}
	return events, nil
}

func requirePositive(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return domain.InvalidInput("quantity must be greater than zero, got %s", qty.String())
	}
	return nil
}
