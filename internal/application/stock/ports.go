package stock

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/event"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Dispatcher entrega eventos de dominio a sus handlers dentro de la transacción activa
// (escritura en outbox + reacciones internas).
type Dispatcher interface {
	Dispatch(ctx context.Context, tx repository.Tx, events ...event.DomainEvent) error
}
