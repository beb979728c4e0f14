package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TransferInput entrada de un traslado entre ubicaciones.
type TransferInput struct {
	ProductID      string
	VariantID      string
	FromLocationID string
	ToLocationID   string
	Quantity       decimal.Decimal
	UserID         string
	Reason         string
}

// Transfer mueve stock físico de una ubicación a otra: dos movimientos type=transfer
// (salida −q en origen, entrada +q en destino) enlazados por CorrelationID.
// Las dos filas se bloquean en orden de StockKey para que traslados opuestos no se bloqueen mutuamente.
func (l *Ledger) Transfer(ctx context.Context, tx repository.Tx, in TransferInput) (*dto.TransferResult, []event.DomainEvent, error) {
	shape := entity.StockMovement{
		Type:           entity.MovementTransfer,
		Quantity:       in.Quantity,
		LocationFromID: in.FromLocationID,
		LocationToID:   in.ToLocationID,
	}
	if err := shape.ValidateShape(); err != nil {
		return nil, nil, err
	}
	if !in.Quantity.IsPositive() {
		return nil, nil, domain.InvalidInput("transfer quantity must be greater than zero, got %s", in.Quantity.String())
	}

	srcKey := entity.StockKey{ProductID: in.ProductID, VariantID: in.VariantID, LocationID: in.FromLocationID}
	dstKey := entity.StockKey{ProductID: in.ProductID, VariantID: in.VariantID, LocationID: in.ToLocationID}

	var (
		src, dst *entity.StockItem
		created  bool
		err      error
	)
	lockSource := func() error {
		src, err = tx.StockItems.GetByKeyForUpdate(ctx, srcKey)
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.StockError{
				Kind:    domain.ErrSourceNotFound,
				Message: "no stock for product " + in.ProductID + " at location " + in.FromLocationID,
			}
		}
		return err
	}
	lockDestination := func() error {
		dst, created, err = l.loadOrCreate(ctx, tx, dstKey)
		return err
	}
	first, second := lockSource, lockDestination
	if dstKey.Less(srcKey) {
		first, second = lockDestination, lockSource
	}
	if err := first(); err != nil {
		return nil, nil, err
	}
	if err := second(); err != nil {
		return nil, nil, err
	}

	now := l.now()
	outEvents, err := src.Withdraw(in.Quantity, now)
	if err != nil {
		return nil, nil, err
	}
	inEvents, err := dst.Receive(in.Quantity, now)
	if err != nil {
		return nil, nil, err
	}
	if err := l.persist(ctx, tx, src); err != nil {
		return nil, nil, err
	}
	if err := l.persist(ctx, tx, dst); err != nil {
		return nil, nil, err
	}

	correlationID := uuid.New().String()
	meta := MovementMeta{UserID: in.UserID, Reason: in.Reason}
	exit := newMovement(src, in.Quantity.Neg(), entity.MovementTransfer, meta, now)
	entry := newMovement(dst, in.Quantity, entity.MovementTransfer, meta, now)
	for _, mv := range []*entity.StockMovement{exit, entry} {
		mv.LocationFromID = in.FromLocationID
		mv.LocationToID = in.ToLocationID
		mv.CorrelationID = correlationID
		if err := l.record(ctx, tx, mv); err != nil {
			return nil, nil, err
		}
	}

	events := append(outEvents, inEvents...)
	events = append(events, entity.StockTransferred{
		Base:           event.Base{ID: uuid.New().String(), Occurred: now},
		CorrelationID:  correlationID,
		ProductID:      in.ProductID,
		VariantID:      in.VariantID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
	})

	return &dto.TransferResult{
		CorrelationID:          correlationID,
		ProductID:              in.ProductID,
		VariantID:              in.VariantID,
		FromLocationID:         in.FromLocationID,
		ToLocationID:           in.ToLocationID,
		Quantity:               in.Quantity,
		SourceStockItemID:      src.ID,
		DestinationStockItemID: dst.ID,
		SourcePhysical:         src.PhysicalQuantity,
		DestinationPhysical:    dst.PhysicalQuantity,
		DestinationCreated:     created,
		MovementIDs:            []string{exit.ID, entry.ID},
	}, events, nil
}
