package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo agregado Order (cabecera, líneas y reservas) sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta cabecera, líneas y reservas. Usar dentro de una tx.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, number, tenant_id, status, preferred_location_id, cancel_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Number, o.TenantID, string(o.Status), nullIfEmpty(o.PreferredLocationID), o.CancelReason, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create order: %w", err)
	}
	for i, l := range o.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_lines (id, order_id, position, product_id, variant_id, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			l.ID, o.ID, i+1, l.ProductID, l.VariantID, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("create order line: %w", err)
		}
	}
	return r.saveReservations(ctx, o)
}

// GetByIDForUpdate bloquea la cabecera y carga líneas y reservas.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	var status string
	err := r.q.QueryRow(ctx, `
		SELECT id, number, tenant_id, status, COALESCE(preferred_location_id, ''), cancel_reason, created_at, updated_at
		FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(
		&o.ID, &o.Number, &o.TenantID, &status, &o.PreferredLocationID, &o.CancelReason, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("order", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.Status = entity.OrderStatus(status)

	lines, err := r.q.Query(ctx, `
		SELECT id, product_id, variant_id, quantity
		FROM order_lines WHERE order_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	for lines.Next() {
		var l entity.OrderLine
		if err := lines.Scan(&l.ID, &l.ProductID, &l.VariantID, &l.Quantity); err != nil {
			lines.Close()
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	lines.Close()
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}

	res, err := r.q.Query(ctx, `
		SELECT id, order_id, order_line_id, stock_item_id, location_id, quantity, status, reserved_at, released_at, updated_at
		FROM stock_reservations WHERE order_id = $1 ORDER BY reserved_at, id`, id)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer res.Close()
	for res.Next() {
		var sr entity.StockReservation
		var st string
		if err := res.Scan(&sr.ID, &sr.OrderID, &sr.OrderLineID, &sr.StockItemID, &sr.LocationID,
			&sr.Quantity, &st, &sr.ReservedAt, &sr.ReleasedAt, &sr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		sr.Status = entity.ReservationStatus(st)
		o.Reservations = append(o.Reservations, sr)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return &o, nil
}

// Save actualiza estado de la cabecera e inserta/actualiza reservas.
func (r *OrderRepo) Save(ctx context.Context, o *entity.Order) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $2, cancel_reason = $3, updated_at = $4 WHERE id = $1`,
		o.ID, string(o.Status), o.CancelReason, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("order", o.ID)
	}
	return r.saveReservations(ctx, o)
}

func (r *OrderRepo) saveReservations(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO stock_reservations (
			id, order_id, order_line_id, stock_item_id, location_id, quantity, status, reserved_at, released_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status, released_at = EXCLUDED.released_at, updated_at = EXCLUDED.updated_at`
	for _, sr := range o.Reservations {
		if _, err := r.q.Exec(ctx, query,
			sr.ID, o.ID, sr.OrderLineID, sr.StockItemID, sr.LocationID, sr.Quantity,
			string(sr.Status), sr.ReservedAt, sr.ReleasedAt, sr.UpdatedAt,
		); err != nil {
			return fmt.Errorf("save reservation %s: %w", sr.ID, err)
		}
	}
	return nil
}
