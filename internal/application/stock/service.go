package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var tracer = otel.Tracer("github.com/jhoicas/stock-ledger/internal/application/stock")

// Service casos de uso del ledger: cada comando abre su propia transacción, aplica el
// motor y entrega los eventos resultantes al dispatcher antes del commit.
type Service struct {
	txRunner   repository.TxRunner
	ledger     *Ledger
	dispatcher Dispatcher
	log        zerolog.Logger
}

// NewService construye el servicio de stock.
func NewService(txRunner repository.TxRunner, ledger *Ledger, dispatcher Dispatcher, log zerolog.Logger) *Service {
	return &Service{txRunner: txRunner, ledger: ledger, dispatcher: dispatcher, log: log}
}

// CreateLocation registra una ubicación (dato de referencia del ledger).
func (s *Service) CreateLocation(ctx context.Context, loc *entity.Location) error {
	if loc.ID == "" || loc.Code == "" {
		return domain.InvalidInput("location id and code are required")
	}
	if !loc.Type.Valid() {
		return domain.InvalidInput("unknown location type %q", string(loc.Type))
	}
	now := s.ledger.now()
	if loc.CreatedAt.IsZero() {
		loc.CreatedAt = now
	}
	loc.UpdatedAt = now
	return s.txRunner.Run(ctx, func(tx repository.Tx) error {
		if loc.ParentID != "" {
			if _, err := tx.Locations.GetByID(ctx, loc.ParentID); err != nil {
				return err
			}
		}
		return tx.Locations.Create(ctx, loc)
	})
}

// CreateStockItem crea un StockItem; si trae cantidad inicial se registra como entrada.
func (s *Service) CreateStockItem(ctx context.Context, userID string, in dto.CreateStockItemRequest) (_ *dto.StockItemResponse, err error) {
	ctx, span := startSpan(ctx, "stock.CreateStockItem",
		attribute.String("product_id", in.ProductID), attribute.String("location_id", in.LocationID))
	defer func() { endSpan(span, err) }()

	if in.ProductID == "" || in.LocationID == "" {
		return nil, domain.InvalidInput("product_id and location_id are required")
	}
	if in.PhysicalQuantity.IsNegative() {
		return nil, domain.InvalidInput("physical_quantity must not be negative")
	}
	method := entity.ValuationMethod(in.ValuationMethod)
	if method == "" {
		method = entity.ValuationStandard
	}
	if !method.Valid() {
		return nil, domain.InvalidInput("unknown valuation method %q", in.ValuationMethod)
	}
	if in.MinStock != nil && in.MaxStock != nil && in.MinStock.GreaterThan(*in.MaxStock) {
		return nil, domain.InvalidInput("min_stock %s is greater than max_stock %s", in.MinStock.String(), in.MaxStock.String())
	}
	for name, v := range map[string]*decimal.Decimal{
		"min_stock": in.MinStock, "max_stock": in.MaxStock,
		"reorder_point": in.ReorderPoint, "reorder_quantity": in.ReorderQuantity,
	} {
		if v != nil && v.IsNegative() {
			return nil, domain.InvalidInput("%s must not be negative", name)
		}
	}

	key := entity.StockKey{ProductID: in.ProductID, VariantID: in.VariantID, LocationID: in.LocationID}
	var out *entity.StockItem
	err = s.txRunner.Run(ctx, func(tx repository.Tx) error {
		if _, err := tx.Locations.GetByID(ctx, in.LocationID); err != nil {
			return err
		}
		item := entity.NewStockItem(key, s.ledger.now())
		item.MinStock = nullable(in.MinStock)
		item.MaxStock = nullable(in.MaxStock)
		item.ReorderPoint = nullable(in.ReorderPoint)
		item.ReorderQuantity = nullable(in.ReorderQuantity)
		item.ValuationMethod = method
		if err := tx.StockItems.Create(ctx, item); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("stock item for product %s at location %s: %w", in.ProductID, in.LocationID, domain.ErrDuplicate)
			}
			return err
		}
		out = item
		if !in.PhysicalQuantity.IsPositive() {
			return nil
		}
		received, _, events, err := s.ledger.Receive(ctx, tx, key, in.PhysicalQuantity, MovementMeta{
			UserID: userID,
			Reason: "initial stock",
		})
		if err != nil {
			return err
		}
		out = received
		return s.dispatcher.Dispatch(ctx, tx, events...)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("stock_item_id", out.ID).Str("product_id", out.ProductID).
		Str("location_id", out.LocationID).Msg("stock item created")
	return toStockItemResponse(out), nil
}

// CreateStockMovement registra un movimiento entry/exit/adjustment y aplica su cambio físico.
func (s *Service) CreateStockMovement(ctx context.Context, userID string, in dto.CreateStockMovementRequest) (_ *dto.StockMovementResponse, err error) {
	ctx, span := startSpan(ctx, "stock.CreateStockMovement",
		attribute.String("stock_item_id", in.StockItemID), attribute.String("movement_type", in.MovementType))
	defer func() { endSpan(span, err) }()

	var out *entity.StockMovement
	err = s.txRunner.Run(ctx, func(tx repository.Tx) error {
		mv := &entity.StockMovement{
			StockItemID:         in.StockItemID,
			ProductID:           in.ProductID,
			Quantity:            in.Quantity,
			Type:                entity.MovementType(in.MovementType),
			LocationFromID:      in.LocationFromID,
			LocationToID:        in.LocationToID,
			UserID:              userID,
			Reason:              in.Reason,
			RelatedDocumentType: in.RelatedDocumentType,
			RelatedDocumentID:   in.RelatedDocumentID,
		}
		_, events, err := s.ledger.ApplyMovement(ctx, tx, mv)
		if err != nil {
			return err
		}
		out = mv
		return s.dispatcher.Dispatch(ctx, tx, events...)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(out), nil
}

// Reserve aparta stock disponible en una ubicación.
func (s *Service) Reserve(ctx context.Context, userID string, in dto.StockOperationRequest) (_ *dto.ReservationResult, err error) {
	ctx, span := startSpan(ctx, "stock.Reserve", operationAttrs(in)...)
	defer func() { endSpan(span, err) }()

	var item *entity.StockItem
	err = s.txRunner.Run(ctx, func(tx repository.Tx) error {
		var events []event.DomainEvent
		item, events, err = s.ledger.Reserve(ctx, tx, keyOf(in), in.Quantity)
		if err != nil {
			return err
		}
		return s.dispatcher.Dispatch(ctx, tx, events...)
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("stock_item_id", item.ID).Str("user_id", userID).
		Str("quantity", in.Quantity.String()).Msg("stock reserved")
	return &dto.ReservationResult{
		StockItemID:      item.ID,
		LocationID:       item.LocationID,
		QuantityReserved: in.Quantity,
		Success:          true,
		Message:          fmt.Sprintf("Reserved %s. Available: %s", in.Quantity.String(), item.Available().String()),
	}, nil
}

// Release devuelve a disponible una cantidad reservada.
func (s *Service) Release(ctx context.Context, userID string, in dto.StockOperationRequest) (_ *dto.StockItemResponse, err error) {
	ctx, span := startSpan(ctx, "stock.Release", operationAttrs(in)...)
	defer func() { endSpan(span, err) }()

	var item *entity.StockItem
	err = s.txRunner.Run(ctx, func(tx repository.Tx) error {
		var events []event.DomainEvent
		item, events, err = s.ledger.Release(ctx, tx, keyOf(in), in.Quantity)
		if err != nil {
			return err
		}
		return s.dispatcher.Dispatch(ctx, tx, events...)
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("stock_item_id", item.ID).Str("user_id", userID).
		Str("quantity", in.Quantity.String()).Msg("stock released")
	return toStockItemResponse(item), nil
}

// Adjust aplica un ajuste con signo y deja el movimiento de auditoría.
func (s *Service) Adjust(ctx context.Context, userID string, in dto.StockOperationRequest) (_ *dto.StockMovementResponse, err error) {
	ctx, span := startSpan(ctx, "stock.Adjust", operationAttrs(in)...)
	defer func() { endSpan(span, err) }()

	var mv *entity.StockMovement
	err = s.txRunner.Run(ctx, func(tx repository.Tx) error {
		var events []event.DomainEvent
		_, mv, events, err = s.ledger.Adjust(ctx, tx, keyOf(in), in.Quantity, MovementMeta{UserID: userID, Reason: in.Reason})
		if err != nil {
			return err
		}
		return s.dispatcher.Dispatch(ctx, tx, events...)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("stock_item_id", mv.StockItemID).Str("quantity", in.Quantity.String()).
		Str("reason", in.Reason).Msg("stock adjusted")
	return toMovementResponse(mv), nil
}

// Transfer traslada stock entre dos ubicaciones en una sola transacción.
func (s *Service) Transfer(ctx context.Context, userID string, in dto.TransferRequest) (_ *dto.TransferResult, err error) {
	ctx, span := startSpan(ctx, "stock.Transfer",
		attribute.String("product_id", in.ProductID),
		attribute.String("from_location_id", in.FromLocationID),
		attribute.String("to_location_id", in.ToLocationID))
	defer func() { endSpan(span, err) }()

	var out *dto.TransferResult
	err = s.txRunner.Run(ctx, func(tx repository.Tx) error {
		var events []event.DomainEvent
		out, events, err = s.ledger.Transfer(ctx, tx, TransferInput{
			ProductID:      in.ProductID,
			VariantID:      in.VariantID,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			Quantity:       in.Quantity,
			UserID:         userID,
			Reason:         in.Reason,
		})
		if err != nil {
			return err
		}
		return s.dispatcher.Dispatch(ctx, tx, events...)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("correlation_id", out.CorrelationID).Str("product_id", in.ProductID).
		Str("from", in.FromLocationID).Str("to", in.ToLocationID).Str("quantity", in.Quantity.String()).
		Msg("stock transferred")
	return out, nil
}

// ListMovements movimientos de un StockItem en orden de registro.
func (s *Service) ListMovements(ctx context.Context, stockItemID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	page.Normalize()
	var out []dto.StockMovementResponse
	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		if _, err := tx.StockItems.GetByID(ctx, stockItemID); err != nil {
			return err
		}
		list, err := tx.Movements.ListByStockItem(ctx, stockItemID, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		out = make([]dto.StockMovementResponse, 0, len(list))
		for _, mv := range list {
			out = append(out, *toMovementResponse(mv))
		}
		return nil
	})
	return out, err
}

func keyOf(in dto.StockOperationRequest) entity.StockKey {
	return entity.StockKey{ProductID: in.ProductID, VariantID: in.VariantID, LocationID: in.LocationID}
}

func operationAttrs(in dto.StockOperationRequest) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("product_id", in.ProductID),
		attribute.String("location_id", in.LocationID),
		attribute.String("quantity", in.Quantity.String()),
	}
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func nullable(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*v)
}

func optional(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}

func toStockItemResponse(it *entity.StockItem) *dto.StockItemResponse {
	return &dto.StockItemResponse{
		ID:                it.ID,
		ProductID:         it.ProductID,
		VariantID:         it.VariantID,
		LocationID:        it.LocationID,
		PhysicalQuantity:  it.PhysicalQuantity,
		ReservedQuantity:  it.ReservedQuantity,
		AvailableQuantity: it.Available(),
		MinStock:          optional(it.MinStock),
		MaxStock:          optional(it.MaxStock),
		ReorderPoint:      optional(it.ReorderPoint),
		ReorderQuantity:   optional(it.ReorderQuantity),
		ValuationMethod:   string(it.ValuationMethod),
		LastMovementAt:    it.LastMovementAt,
		UpdatedAt:         it.UpdatedAt,
	}
}

func toMovementResponse(mv *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:                  mv.ID,
		StockItemID:         mv.StockItemID,
		ProductID:           mv.ProductID,
		VariantID:           mv.VariantID,
		Quantity:            mv.Quantity,
		MovementType:        string(mv.Type),
		LocationFromID:      mv.LocationFromID,
		LocationToID:        mv.LocationToID,
		UserID:              mv.UserID,
		Reason:              mv.Reason,
		RelatedDocumentType: mv.RelatedDocumentType,
		RelatedDocumentID:   mv.RelatedDocumentID,
		CreatedAt:           mv.CreatedAt,
	}
}
