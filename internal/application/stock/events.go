package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// EventHandler publica hacia afuera los eventos propios del ledger; no tiene reacciones internas.
type EventHandler struct{}

// NewEventHandler construye el handler de eventos de stock.
func NewEventHandler() *EventHandler { return &EventHandler{} }

// EventNames eventos de dominio que este handler atiende.
func (h *EventHandler) EventNames() []string {
	return []string{
		entity.StockLevelChanged{}.EventName(),
		entity.StockReorderPointReached{}.EventName(),
		entity.StockTransferred{}.EventName(),
	}
}

// MapToIntegrationEvent traduce el evento de dominio al contrato publicado.
func (h *EventHandler) MapToIntegrationEvent(e event.DomainEvent) (event.IntegrationEvent, bool) {
	switch ev := e.(type) {
	case entity.StockLevelChanged:
		return event.StockLevelChangedIntegrationEvent{
			Base:        ev.Base,
			StockItemID: ev.StockItemID,
			ProductID:   ev.ProductID,
			VariantID:   ev.VariantID,
			LocationID:  ev.LocationID,
			Operation:   string(ev.Operation),
			Quantity:    ev.Quantity,
			Physical:    ev.Physical,
			Reserved:    ev.Reserved,
			Available:   ev.Available,
		}, true
	case entity.StockReorderPointReached:
		var qty *decimal.Decimal
		if ev.ReorderQuantity.Valid {
			q := ev.ReorderQuantity.Decimal
			qty = &q
		}
		return event.StockReorderPointReachedIntegrationEvent{
			Base:            ev.Base,
			StockItemID:     ev.StockItemID,
			ProductID:       ev.ProductID,
			VariantID:       ev.VariantID,
			LocationID:      ev.LocationID,
			Available:       ev.Available,
			ReorderPoint:    ev.ReorderPoint,
			ReorderQuantity: qty,
		}, true
	case entity.StockTransferred:
		return event.StockTransferredIntegrationEvent{
			Base:           ev.Base,
			CorrelationID:  ev.CorrelationID,
			ProductID:      ev.ProductID,
			VariantID:      ev.VariantID,
			FromLocationID: ev.FromLocationID,
			ToLocationID:   ev.ToLocationID,
			Quantity:       ev.Quantity,
			Reason:         ev.Reason,
		}, true
	}
	return nil, false
}

// HandleInternal sin reacciones internas.
func (h *EventHandler) HandleInternal(context.Context, repository.Tx, event.DomainEvent) ([]event.DomainEvent, error) {
	return nil, nil
}
