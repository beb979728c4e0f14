// Package order orquesta las transiciones de estado del pedido y las reacciones de stock
// que esas transiciones disparan (reservar, liberar, despachar), más las entradas por compras.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

const instrumentationName = "github.com/jhoicas/stock-ledger/internal/application/order"

var tracer = otel.Tracer(instrumentationName)

// Action transición solicitada sobre un pedido.
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionPrepare Action = "prepare"
	ActionReady   Action = "ready"
	ActionShip    Action = "ship"
	ActionDeliver Action = "deliver"
	ActionInvoice Action = "invoice"
	ActionCancel  Action = "cancel"
)

// Service aplica transiciones de pedido; las reacciones de stock corren en la misma transacción
// vía el dispatcher.
type Service struct {
	txRunner   repository.TxRunner
	dispatcher stock.Dispatcher
	log        zerolog.Logger
	now        func() time.Time
}

// NewService construye el servicio de pedidos.
func NewService(txRunner repository.TxRunner, dispatcher stock.Dispatcher, log zerolog.Logger) *Service {
	return &Service{
		txRunner:   txRunner,
		dispatcher: dispatcher,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Transition aplica action al pedido orderID. reason solo aplica a cancel.
func (s *Service) Transition(ctx context.Context, orderID string, action Action, reason string) (_ *dto.OrderResponse, err error) {
	ctx, span := tracer.Start(ctx, "order.Transition", trace.WithAttributes(
		attribute.String("order_id", orderID), attribute.String("action", string(action))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var out *entity.Order
	err = s.txRunner.Run(ctx, func(tx repository.Tx) error {
		o, err := tx.Orders.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		events, err := apply(o, action, reason, s.now())
		if err != nil {
			return err
		}
		if err := tx.Orders.Save(ctx, o); err != nil {
			return err
		}
		if err := s.dispatcher.Dispatch(ctx, tx, events...); err != nil {
			return err
		}
		// las reacciones guardan sus propios cambios; se relee el estado final
		out, err = tx.Orders.GetByIDForUpdate(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(out)
	if action == ActionConfirm {
		outcome, results := reservationResults(out)
		resp.ReservationOutcome = string(outcome)
		resp.ReservationResults = results
	}
	s.log.Info().Str("order_id", orderID).Str("action", string(action)).Str("status", string(out.Status)).Msg("order transitioned")
	return resp, nil
}

// CreateOrder registra un pedido en draft con sus líneas.
func (s *Service) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Number == "" || len(in.Lines) == 0 {
		return nil, domain.InvalidInput("order number and at least one line are required")
	}
	now := s.now()
	o := &entity.Order{
		ID:                  in.ID,
		Number:              in.Number,
		TenantID:            in.TenantID,
		Status:              entity.OrderDraft,
		PreferredLocationID: in.PreferredLocationID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	for _, l := range in.Lines {
		if l.ProductID == "" || !l.Quantity.IsPositive() {
			return nil, domain.InvalidInput("order line requires product_id and a quantity greater than zero")
		}
		id := l.ID
		if id == "" {
			id = uuid.New().String()
		}
		o.Lines = append(o.Lines, entity.OrderLine{ID: id, ProductID: l.ProductID, VariantID: l.VariantID, Quantity: l.Quantity})
	}
	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		if o.PreferredLocationID != "" {
			if _, err := tx.Locations.GetByID(ctx, o.PreferredLocationID); err != nil {
				return err
			}
		}
		return tx.Orders.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", o.ID).Str("number", o.Number).Int("lines", len(o.Lines)).Msg("order created")
	return toOrderResponse(o), nil
}

func apply(o *entity.Order, action Action, reason string, now time.Time) ([]event.DomainEvent, error) {
	switch action {
	case ActionConfirm:
		return o.Confirm(now)
	case ActionPrepare:
		return o.StartPreparation(now)
	case ActionReady:
		return o.MarkReady(now)
	case ActionShip:
		return o.Ship(now)
	case ActionDeliver:
		return o.Deliver(now)
	case ActionInvoice:
		return o.MarkInvoiced(now)
	case ActionCancel:
		return o.Cancel(reason, now)
	}
	return nil, domain.InvalidInput("unknown order action %q", string(action))
}

// RecordPurchase recibe el evento de compra de un colaborador y lo procesa en una transacción:
// cada línea genera un movimiento de entrada en la ubicación indicada.
func (s *Service) RecordPurchase(ctx context.Context, userID string, in dto.PurchaseReceiptRequest) error {
	if len(in.Lines) == 0 {
		return domain.InvalidInput("purchase %s has no lines", in.DocumentID)
	}
	lines := make([]entity.PurchaseLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if !l.Quantity.IsPositive() {
			return domain.InvalidInput("received quantity for product %s must be greater than zero", l.ProductID)
		}
		lines = append(lines, entity.PurchaseLine{ProductID: l.ProductID, VariantID: l.VariantID, Quantity: l.Quantity})
	}
	base := event.Base{ID: uuid.New().String(), Occurred: s.now(), Tenant: in.TenantID}

	var e event.DomainEvent
	switch in.DocumentType {
	case entity.DocumentPurchaseOrder:
		e = entity.PurchaseOrderReceived{Base: base, PurchaseOrderID: in.DocumentID, LocationID: in.LocationID, UserID: userID, Lines: lines}
	case entity.DocumentPurchaseReceipt:
		e = entity.PurchaseReceiptValidated{Base: base, ReceiptID: in.DocumentID, LocationID: in.LocationID, UserID: userID, Lines: lines}
	default:
		return domain.InvalidInput("unknown purchase document type %q", in.DocumentType)
	}

	if err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		return s.dispatcher.Dispatch(ctx, tx, e)
	}); err != nil {
		return err
	}
	s.log.Info().Str("document_type", in.DocumentType).Str("document_id", in.DocumentID).
		Int("lines", len(lines)).Msg("purchase received")
	return nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		Status:       string(o.Status),
		CancelReason: o.CancelReason,
		Reservations: make([]dto.ReservationResponse, 0, len(o.Reservations)),
		UpdatedAt:    o.UpdatedAt,
	}
	for _, r := range o.Reservations {
		out.Reservations = append(out.Reservations, dto.ReservationResponse{
			ID:          r.ID,
			OrderLineID: r.OrderLineID,
			StockItemID: r.StockItemID,
			LocationID:  r.LocationID,
			Quantity:    r.Quantity,
			Status:      string(r.Status),
			ReservedAt:  r.ReservedAt,
			ReleasedAt:  r.ReleasedAt,
		})
	}
	return out
}

// reservationResults una entrada por reserva vigente y una de fallo por cada línea que quedó corta.
func reservationResults(o *entity.Order) (entity.ReservationOutcome, []dto.ReservationResult) {
	results := make([]dto.ReservationResult, 0, len(o.Reservations))
	lines := make([]entity.LineReservation, 0, len(o.Lines))
	for _, line := range o.Lines {
		reserved := decimal.Zero
		for _, r := range o.ActiveReservations() {
			if r.OrderLineID != line.ID {
				continue
			}
			reserved = reserved.Add(r.Quantity)
			results = append(results, dto.ReservationResult{
				StockItemID:      r.StockItemID,
				LocationID:       r.LocationID,
				QuantityReserved: r.Quantity,
				Success:          true,
				Message:          fmt.Sprintf("Reserved %s of product %s at location %s", r.Quantity.String(), line.ProductID, r.LocationID),
			})
		}
		lr := entity.LineReservation{OrderLineID: line.ID, Requested: line.Quantity, Reserved: reserved, Outcome: entity.OutcomeReserved}
		if reserved.LessThan(line.Quantity) {
			lr.Outcome = entity.OutcomeFailed
			if reserved.IsPositive() {
				lr.Outcome = entity.OutcomePartial
			}
			results = append(results, dto.ReservationResult{
				QuantityReserved: decimal.Zero,
				Success:          false,
				Message: fmt.Sprintf("Insufficient available stock for product %s. Reserved: %s of Requested: %s",
					line.ProductID, reserved.String(), line.Quantity.String()),
			})
		}
		lines = append(lines, lr)
	}
	return overallOutcome(lines), results
}
