package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo log de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (
			id, stock_item_id, product_id, variant_id, quantity, movement_type,
			location_from_id, location_to_id, user_id, reason,
			related_document_type, related_document_id, correlation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.StockItemID, m.ProductID, m.VariantID, m.Quantity, string(m.Type),
		nullIfEmpty(m.LocationFromID), nullIfEmpty(m.LocationToID), m.UserID, m.Reason,
		m.RelatedDocumentType, m.RelatedDocumentID, m.CorrelationID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByStockItem movimientos de un ítem en orden de registro.
func (r *StockMovementRepo) ListByStockItem(ctx context.Context, stockItemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, stock_item_id, product_id, variant_id, quantity, movement_type,
			COALESCE(location_from_id, ''), COALESCE(location_to_id, ''), user_id, reason,
			related_document_type, related_document_id, correlation_id, created_at
		FROM stock_movements
		WHERE stock_item_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, stockItemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var typ string
		if err := rows.Scan(
			&m.ID, &m.StockItemID, &m.ProductID, &m.VariantID, &m.Quantity, &typ,
			&m.LocationFromID, &m.LocationToID, &m.UserID, &m.Reason,
			&m.RelatedDocumentType, &m.RelatedDocumentID, &m.CorrelationID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		out = append(out, &m)
	}
	return out, rows.Err()
}
