package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockItemRepository define el puerto para consultar/actualizar StockItems.
// Los métodos ForUpdate bloquean la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
type StockItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	// GetByKeyForUpdate devuelve domain.ErrNotFound si no existe la combinación producto/variante/ubicación.
	GetByKeyForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockItem, error)
	// Create devuelve domain.ErrDuplicate si la clave ya existe.
	Create(ctx context.Context, item *entity.StockItem) error
	Update(ctx context.Context, item *entity.StockItem) error
	ListByProduct(ctx context.Context, productID, variantID string) ([]*entity.StockItem, error)
	// ListAvailableForUpdate ítems con disponible > 0, de mayor a menor disponible, bloqueados.
	ListAvailableForUpdate(ctx context.Context, productID, variantID, excludeLocationID string) ([]*entity.StockItem, error)
	// ListBelowReorderPoint ítems con punto de reorden y disponible <= punto. locationID vacío = todas.
	ListBelowReorderPoint(ctx context.Context, locationID string) ([]*entity.StockItem, error)
}
