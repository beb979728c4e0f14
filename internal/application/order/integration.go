package order

import (
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
)

// MapToIntegrationEvent publica el resultado de cada reacción; los eventos de entrada
// (pedido confirmado/cancelado/despachado, compras) no se republican.
func (h *StockReactions) MapToIntegrationEvent(e event.DomainEvent) (event.IntegrationEvent, bool) {
	switch ev := e.(type) {
	case entity.OrderStockReserved:
		lines := make([]event.LineReservationPayload, 0, len(ev.Lines))
		for _, l := range ev.Lines {
			lines = append(lines, event.LineReservationPayload{
				OrderLineID: l.OrderLineID,
				ProductID:   l.ProductID,
				VariantID:   l.VariantID,
				Requested:   l.Requested,
				Reserved:    l.Reserved,
				Outcome:     string(l.Outcome),
				Portions:    portionPayloads(l.Portions),
			})
		}
		return event.OrderStockReservedIntegrationEvent{
			Base: ev.Base, OrderID: ev.OrderID, Outcome: string(ev.Outcome), Lines: lines,
		}, true
	case entity.OrderStockReleased:
		return event.OrderStockReleasedIntegrationEvent{
			Base: ev.Base, OrderID: ev.OrderID, Portions: portionPayloads(ev.Portions),
		}, true
	case entity.OrderStockFulfilled:
		return event.OrderStockFulfilledIntegrationEvent{
			Base: ev.Base, OrderID: ev.OrderID, Portions: portionPayloads(ev.Portions),
		}, true
	}
	return nil, false
}

func portionPayloads(in []entity.ReservationPortion) []event.ReservationPortionPayload {
	out := make([]event.ReservationPortionPayload, 0, len(in))
	for _, p := range in {
		out = append(out, event.ReservationPortionPayload{
			ReservationID: p.ReservationID,
			StockItemID:   p.StockItemID,
			LocationID:    p.LocationID,
			Quantity:      p.Quantity,
		})
	}
	return out
}
