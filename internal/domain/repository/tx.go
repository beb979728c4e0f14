package repository

import "context"

// Tx repositorios atados a una misma transacción.
type Tx struct {
	StockItems StockItemRepository
	Movements  StockMovementRepository
	Locations  LocationRepository
	Orders     OrderRepository
	Outbox     OutboxRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback si no.
// fn puede ejecutarse más de una vez si la transacción se reintenta por timeout de bloqueo,
// así que no debe acumular estado fuera de la transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Tx) error) error
}
