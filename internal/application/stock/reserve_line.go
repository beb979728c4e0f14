package stock

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// LineReservationResult lo que se reservó para una línea y los eventos que produjo.
type LineReservationResult struct {
	Line   entity.LineReservation
	Events []event.DomainEvent
}

// ReserveLine reserva la cantidad de una línea de pedido: primero en la ubicación preferida,
// luego en las demás con disponible > 0, de mayor a menor disponible, hasta cubrir la línea
// o agotar el stock. Cada porción queda registrada en el pedido vía AddStockReservation.
// Un faltante no es error: se informa en el Outcome de la línea.
func (l *Ledger) ReserveLine(ctx context.Context, tx repository.Tx, order *entity.Order, line entity.OrderLine, preferredLocationID string) (*LineReservationResult, error) {
	res := &LineReservationResult{Line: entity.LineReservation{
		OrderLineID: line.ID,
		ProductID:   line.ProductID,
		VariantID:   line.VariantID,
		Requested:   line.Quantity,
		Reserved:    decimal.Zero,
	}}
	remaining := line.Quantity

	take := func(item *entity.StockItem) error {
		qty := decimal.Min(remaining, item.Available())
		if !qty.IsPositive() {
			return nil
		}
		events, err := item.Reserve(qty, l.now())
		if err != nil {
			return err
		}
		if err := l.persist(ctx, tx, item); err != nil {
			return err
		}
		r, err := order.AddStockReservation(line.ID, item.ID, item.LocationID, qty, l.now())
		if err != nil {
			return err
		}
		remaining = remaining.Sub(qty)
		res.Line.Reserved = res.Line.Reserved.Add(qty)
		res.Line.Portions = append(res.Line.Portions, entity.ReservationPortion{
			ReservationID: r.ID,
			StockItemID:   item.ID,
			LocationID:    item.LocationID,
			Quantity:      qty,
		})
		res.Events = append(res.Events, events...)
		return nil
	}

	if preferredLocationID != "" {
		item, err := tx.StockItems.GetByKeyForUpdate(ctx, entity.StockKey{
			ProductID: line.ProductID, VariantID: line.VariantID, LocationID: preferredLocationID,
		})
		switch {
		case err == nil:
			if err := take(item); err != nil {
				return nil, err
			}
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	if remaining.IsPositive() {
		candidates, err := tx.StockItems.ListAvailableForUpdate(ctx, line.ProductID, line.VariantID, preferredLocationID)
		if err != nil {
			return nil, err
		}
		for _, item := range candidates {
			if !remaining.IsPositive() {
				break
			}
			if err := take(item); err != nil {
				return nil, err
			}
		}
	}

	switch {
	case !remaining.IsPositive():
		res.Line.Outcome = entity.OutcomeReserved
	case res.Line.Reserved.IsPositive():
		res.Line.Outcome = entity.OutcomePartial
	default:
		res.Line.Outcome = entity.OutcomeFailed
	}
	return res, nil
}
