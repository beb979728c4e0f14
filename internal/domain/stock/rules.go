// Package stock reúne las reglas de negocio que se validan después de cada mutación de stock.
package stock

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// RuleInventoryLock código de la regla de bloqueo por inventario físico abierto.
const RuleInventoryLock = "RG-STOCK-005"

// InventoryLock indica si una ubicación tiene un conteo de inventario abierto.
type InventoryLock interface {
	IsLocked(ctx context.Context, locationID string) (bool, error)
}

// NoInventoryLock nunca bloquea.
type NoInventoryLock struct{}

func (NoInventoryLock) IsLocked(context.Context, string) (bool, error) { return false, nil }

// Rules valida RG-STOCK-001, RG-STOCK-002 y RG-STOCK-005 sobre un ítem ya mutado.
type Rules struct {
	lock InventoryLock
}

// NewRules construye las reglas; lock nil equivale a NoInventoryLock.
func NewRules(lock InventoryLock) *Rules {
	if lock == nil {
		lock = NoInventoryLock{}
	}
	return &Rules{lock: lock}
}

// Validate re-chequea invariantes del ítem y el bloqueo de su ubicación.
func (r *Rules) Validate(ctx context.Context, item *entity.StockItem) error {
	if err := item.CheckInvariants(); err != nil {
		return err
	}
	locked, err := r.lock.IsLocked(ctx, item.LocationID)
	if err != nil {
		return err
	}
	if locked {
		return domain.InvariantViolation(RuleInventoryLock, "location "+item.LocationID+" has an open inventory count")
	}
	return nil
}
