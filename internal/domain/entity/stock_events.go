package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/event"
)

// StockOperation operación que cambió los contadores de un StockItem.
type StockOperation string

const (
	StockOpReserved  StockOperation = "reserved"
	StockOpReleased  StockOperation = "released"
	StockOpAdjusted  StockOperation = "adjusted"
	StockOpReceived  StockOperation = "received"
	StockOpWithdrawn StockOperation = "withdrawn"
	StockOpFulfilled StockOperation = "fulfilled"
)

// StockLevelChanged se emite tras cada mutación exitosa de un StockItem.
type StockLevelChanged struct {
	event.Base
	StockItemID string
	ProductID   string
	VariantID   string
	LocationID  string
	Operation   StockOperation
	Quantity    decimal.Decimal // con signo para cambios físicos
	Physical    decimal.Decimal
	Reserved    decimal.Decimal
	Available   decimal.Decimal
}

func (e StockLevelChanged) EventName() string   { return "StockLevelChangedDomainEvent" }
func (e StockLevelChanged) AggregateID() string { return e.StockItemID }

func newStockLevelChanged(s *StockItem, op StockOperation, qty decimal.Decimal, now time.Time) StockLevelChanged {
	return StockLevelChanged{
		Base:        event.Base{ID: uuid.New().String(), Occurred: now},
		StockItemID: s.ID,
		ProductID:   s.ProductID,
		VariantID:   s.VariantID,
		LocationID:  s.LocationID,
		Operation:   op,
		Quantity:    qty,
		Physical:    s.PhysicalQuantity,
		Reserved:    s.ReservedQuantity,
		Available:   s.Available(),
	}
}

// StockReorderPointReached el disponible cruzó hacia abajo el punto de reorden.
type StockReorderPointReached struct {
	event.Base
	StockItemID     string
	ProductID       string
	VariantID       string
	LocationID      string
	Available       decimal.Decimal
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.NullDecimal
}

func (e StockReorderPointReached) EventName() string   { return "StockReorderPointReachedDomainEvent" }
func (e StockReorderPointReached) AggregateID() string { return e.StockItemID }

func newStockReorderPointReached(s *StockItem, now time.Time) StockReorderPointReached {
	return StockReorderPointReached{
		Base:            event.Base{ID: uuid.New().String(), Occurred: now},
		StockItemID:     s.ID,
		ProductID:       s.ProductID,
		VariantID:       s.VariantID,
		LocationID:      s.LocationID,
		Available:       s.Available(),
		ReorderPoint:    s.ReorderPoint.Decimal,
		ReorderQuantity: s.ReorderQuantity,
	}
}
