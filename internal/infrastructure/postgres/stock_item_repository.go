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

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

const stockItemColumns = `id, product_id, variant_id, location_id, physical_quantity, reserved_quantity,
	min_stock, max_stock, reorder_point, reorder_quantity, valuation_method, last_movement_at, created_at, updated_at`

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	var method string
	err := row.Scan(
		&s.ID, &s.ProductID, &s.VariantID, &s.LocationID, &s.PhysicalQuantity, &s.ReservedQuantity,
		&s.MinStock, &s.MaxStock, &s.ReorderPoint, &s.ReorderQuantity, &method, &s.LastMovementAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.ValuationMethod = entity.ValuationMethod(method)
	return &s, nil
}

func (r *StockItemRepo) getOne(ctx context.Context, what, query string, args ...any) (*entity.StockItem, error) {
	s, err := scanStockItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("stock item", what)
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return s, nil
}

// GetByID obtiene un StockItem sin bloquear.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.getOne(ctx, id, `SELECT `+stockItemColumns+` FROM stock_items WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el StockItem y bloquea la fila (SELECT FOR UPDATE).
func (r *StockItemRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.getOne(ctx, id, `SELECT `+stockItemColumns+` FROM stock_items WHERE id = $1 FOR UPDATE`, id)
}

// GetByKeyForUpdate bloquea la fila de producto/variante/ubicación.
func (r *StockItemRepo) GetByKeyForUpdate(ctx context.Context, key entity.StockKey) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items
		WHERE product_id = $1 AND variant_id = $2 AND location_id = $3
		FOR UPDATE`
	return r.getOne(ctx, key.ProductID+"@"+key.LocationID, query, key.ProductID, key.VariantID, key.LocationID)
}

// Create inserta el ítem. ON CONFLICT DO NOTHING evita abortar la transacción si otra lo creó antes.
func (r *StockItemRepo) Create(ctx context.Context, s *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (product_id, variant_id, location_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.ProductID, s.VariantID, s.LocationID, s.PhysicalQuantity, s.ReservedQuantity,
		s.MinStock, s.MaxStock, s.ReorderPoint, s.ReorderQuantity, string(s.ValuationMethod), s.LastMovementAt,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// Update persiste contadores, parámetros de reposición y sellos de tiempo.
func (r *StockItemRepo) Update(ctx context.Context, s *entity.StockItem) error {
	query := `
		UPDATE stock_items SET
			physical_quantity = $2, reserved_quantity = $3,
			min_stock = $4, max_stock = $5, reorder_point = $6, reorder_quantity = $7,
			valuation_method = $8, last_movement_at = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.PhysicalQuantity, s.ReservedQuantity,
		s.MinStock, s.MaxStock, s.ReorderPoint, s.ReorderQuantity,
		string(s.ValuationMethod), s.LastMovementAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("stock item", s.ID)
	}
	return nil
}

// ListByProduct ítems del producto/variante en todas las ubicaciones.
func (r *StockItemRepo) ListByProduct(ctx context.Context, productID, variantID string) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items
		WHERE product_id = $1 AND variant_id = $2
		ORDER BY location_id`
	return r.list(ctx, query, productID, variantID)
}

// ListAvailableForUpdate ítems con disponible > 0 fuera de excludeLocationID, mayor disponible primero.
func (r *StockItemRepo) ListAvailableForUpdate(ctx context.Context, productID, variantID, excludeLocationID string) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items
		WHERE product_id = $1 AND variant_id = $2 AND location_id <> $3
		  AND physical_quantity - reserved_quantity > 0
		ORDER BY physical_quantity - reserved_quantity DESC, location_id
		FOR UPDATE`
	return r.list(ctx, query, productID, variantID, excludeLocationID)
}

// ListBelowReorderPoint ítems con disponible en o bajo el punto de reorden.
func (r *StockItemRepo) ListBelowReorderPoint(ctx context.Context, locationID string) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items
		WHERE reorder_point IS NOT NULL
		  AND physical_quantity - reserved_quantity <= reorder_point
		  AND ($1 = '' OR location_id = $1)
		ORDER BY location_id, product_id, variant_id`
	return r.list(ctx, query, locationID)
}

func (r *StockItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockItem
	for rows.Next() {
		s, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
