package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	stockrules "github.com/jhoicas/stock-ledger/internal/domain/stock"
)

// Ledger operaciones del motor de stock sobre una transacción ya abierta.
// Cada operación: bloquear fila → leer → validar → mutar → re-validar reglas → persistir.
// El commit (y la liberación de los bloqueos) lo hace quien abrió la transacción.
type Ledger struct {
	rules *stockrules.Rules
	now   func() time.Time
}

// NewLedger construye el motor. rules nil usa las reglas por defecto.
func NewLedger(rules *stockrules.Rules) *Ledger {
	if rules == nil {
		rules = stockrules.NewRules(nil)
	}
	return &Ledger{rules: rules, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock reemplaza el reloj (tests).
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// MovementMeta datos de auditoría comunes a los movimientos generados por una operación.
type MovementMeta struct {
	UserID              string
	Reason              string
	RelatedDocumentType string
	RelatedDocumentID   string
}

// Reserve aparta qty en el ítem de key.
func (l *Ledger) Reserve(ctx context.Context, tx repository.Tx, key entity.StockKey, qty decimal.Decimal) (*entity.StockItem, []event.DomainEvent, error) {
	item, err := tx.StockItems.GetByKeyForUpdate(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	events, err := item.Reserve(qty, l.now())
	if err != nil {
		return nil, nil, err
	}
	if err := l.persist(ctx, tx, item); err != nil {
		return nil, nil, err
	}
	return item, events, nil
}

// Release devuelve qty reservada del ítem de key.
func (l *Ledger) Release(ctx context.Context, tx repository.Tx, key entity.StockKey, qty decimal.Decimal) (*entity.StockItem, []event.DomainEvent, error) {
	item, err := tx.StockItems.GetByKeyForUpdate(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	events, err := item.Release(qty, l.now())
	if err != nil {
		return nil, nil, err
	}
	if err := l.persist(ctx, tx, item); err != nil {
		return nil, nil, err
	}
	return item, events, nil
}

// ReleaseClamped libera hasta qty del ítem stockItemID sin fallar por subflujo.
func (l *Ledger) ReleaseClamped(ctx context.Context, tx repository.Tx, stockItemID string, qty decimal.Decimal) (decimal.Decimal, []event.DomainEvent, error) {
	item, err := tx.StockItems.GetByIDForUpdate(ctx, stockItemID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	released, events, err := item.ReleaseClamped(qty, l.now())
	if err != nil {
		return decimal.Zero, nil, err
	}
	if released.IsZero() {
		return released, nil, nil
	}
	if err := l.persist(ctx, tx, item); err != nil {
		return decimal.Zero, nil, err
	}
	return released, events, nil
}

// Adjust aplica delta al físico y registra un movimiento de tipo adjustment.
func (l *Ledger) Adjust(ctx context.Context, tx repository.Tx, key entity.StockKey, delta decimal.Decimal, meta MovementMeta) (*entity.StockItem, *entity.StockMovement, []event.DomainEvent, error) {
	item, err := tx.StockItems.GetByKeyForUpdate(ctx, key)
	if err != nil {
		return nil, nil, nil, err
	}
	now := l.now()
	events, err := item.Adjust(delta, now)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := l.persist(ctx, tx, item); err != nil {
		return nil, nil, nil, err
	}
	mv := newMovement(item, delta, entity.MovementAdjustment, meta, now)
	if delta.IsPositive() {
		mv.LocationToID = item.LocationID
	} else {
		mv.LocationFromID = item.LocationID
	}
	if err := l.record(ctx, tx, mv); err != nil {
		return nil, nil, nil, err
	}
	return item, mv, events, nil
}

// Receive entrada física en key; crea el StockItem si la ubicación aún no lo tiene.
func (l *Ledger) Receive(ctx context.Context, tx repository.Tx, key entity.StockKey, qty decimal.Decimal, meta MovementMeta) (*entity.StockItem, *entity.StockMovement, []event.DomainEvent, error) {
	item, _, err := l.loadOrCreate(ctx, tx, key)
	if err != nil {
		return nil, nil, nil, err
	}
	now := l.now()
	events, err := item.Receive(qty, now)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := l.persist(ctx, tx, item); err != nil {
		return nil, nil, nil, err
	}
	mv := newMovement(item, qty, entity.MovementEntry, meta, now)
	mv.LocationToID = item.LocationID
	if err := l.record(ctx, tx, mv); err != nil {
		return nil, nil, nil, err
	}
	return item, mv, events, nil
}

// Fulfill consume qty reservada del ítem y registra la salida física.
func (l *Ledger) Fulfill(ctx context.Context, tx repository.Tx, stockItemID string, qty decimal.Decimal, meta MovementMeta) (*entity.StockMovement, []event.DomainEvent, error) {
	item, err := tx.StockItems.GetByIDForUpdate(ctx, stockItemID)
	if err != nil {
		return nil, nil, err
	}
	now := l.now()
	events, err := item.Fulfill(qty, now)
	if err != nil {
		return nil, nil, err
	}
	if err := l.persist(ctx, tx, item); err != nil {
		return nil, nil, err
	}
	mv := newMovement(item, qty.Neg(), entity.MovementExit, meta, now)
	mv.LocationFromID = item.LocationID
	if err := l.record(ctx, tx, mv); err != nil {
		return nil, nil, err
	}
	return mv, events, nil
}

// ApplyMovement registra un movimiento explícito sobre su StockItem y aplica el cambio físico.
// Los traslados no pasan por aquí: requieren dos filas y dos bloqueos (ver Transfer).
func (l *Ledger) ApplyMovement(ctx context.Context, tx repository.Tx, mv *entity.StockMovement) (*entity.StockItem, []event.DomainEvent, error) {
	if err := mv.ValidateShape(); err != nil {
		return nil, nil, err
	}
	if mv.Type == entity.MovementTransfer {
		return nil, nil, domain.InvalidInput("transfer movements are created through the transfer operation")
	}
	item, err := tx.StockItems.GetByIDForUpdate(ctx, mv.StockItemID)
	if err != nil {
		return nil, nil, err
	}
	if item.ProductID != mv.ProductID {
		return nil, nil, domain.InvalidInput("stock item %s does not hold product %s", item.ID, mv.ProductID)
	}
	now := l.now()
	var events []event.DomainEvent
	switch mv.Type {
	case entity.MovementEntry:
		if mv.LocationToID != item.LocationID {
			return nil, nil, domain.InvalidMovementShape("entry location_to %s does not match stock item location %s", mv.LocationToID, item.LocationID)
		}
		events, err = item.Receive(mv.Quantity, now)
	case entity.MovementExit:
		if mv.LocationFromID != item.LocationID {
			return nil, nil, domain.InvalidMovementShape("exit location_from %s does not match stock item location %s", mv.LocationFromID, item.LocationID)
		}
		events, err = item.Withdraw(mv.Quantity.Neg(), now)
	case entity.MovementAdjustment:
		if mv.LocationFromID != item.LocationID && mv.LocationToID != item.LocationID {
			return nil, nil, domain.InvalidMovementShape("adjustment location does not match stock item location %s", item.LocationID)
		}
		events, err = item.Adjust(mv.Quantity, now)
	}
	if err != nil {
		return nil, nil, err
	}
	if err := l.persist(ctx, tx, item); err != nil {
		return nil, nil, err
	}
	if mv.ID == "" {
		mv.ID = uuid.New().String()
	}
	mv.VariantID = item.VariantID
	mv.CreatedAt = now
	if err := l.record(ctx, tx, mv); err != nil {
		return nil, nil, err
	}
	return item, events, nil
}

// loadOrCreate bloquea el ítem de key o lo crea vacío si la ubicación existe.
func (l *Ledger) loadOrCreate(ctx context.Context, tx repository.Tx, key entity.StockKey) (*entity.StockItem, bool, error) {
	item, err := tx.StockItems.GetByKeyForUpdate(ctx, key)
	if err == nil {
		return item, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	if _, err := tx.Locations.GetByID(ctx, key.LocationID); err != nil {
		return nil, false, err
	}
	item = entity.NewStockItem(key, l.now())
	if err := tx.StockItems.Create(ctx, item); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, false, err
		}
		// otra transacción lo creó primero
		item, err = tx.StockItems.GetByKeyForUpdate(ctx, key)
		return item, false, err
	}
	return item, true, nil
}

func (l *Ledger) persist(ctx context.Context, tx repository.Tx, item *entity.StockItem) error {
	if err := l.rules.Validate(ctx, item); err != nil {
		return err
	}
	return tx.StockItems.Update(ctx, item)
}

func (l *Ledger) record(ctx context.Context, tx repository.Tx, mv *entity.StockMovement) error {
	if err := mv.ValidateShape(); err != nil {
		return err
	}
	return tx.Movements.Create(ctx, mv)
}

func newMovement(item *entity.StockItem, qty decimal.Decimal, typ entity.MovementType, meta MovementMeta, now time.Time) *entity.StockMovement {
	return &entity.StockMovement{
		ID:                  uuid.New().String(),
		StockItemID:         item.ID,
		ProductID:           item.ProductID,
		VariantID:           item.VariantID,
		Quantity:            qty,
		Type:                typ,
		UserID:              meta.UserID,
		Reason:              meta.Reason,
		RelatedDocumentType: meta.RelatedDocumentType,
		RelatedDocumentID:   meta.RelatedDocumentID,
		CreatedAt:           now,
	}
}
