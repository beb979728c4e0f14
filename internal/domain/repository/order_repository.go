package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// OrderRepository carga y guarda el agregado Order (estado, líneas y reservas).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByIDForUpdate bloquea la cabecera del pedido y carga líneas y reservas.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// Save persiste estado y reservas (inserta las nuevas, actualiza las existentes).
	Save(ctx context.Context, order *entity.Order) error
}
