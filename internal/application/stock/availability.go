package stock

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// GetAvailability totaliza físico, reservado y disponible de un producto en todas sus ubicaciones.
func (s *Service) GetAvailability(ctx context.Context, productID, variantID string) (*dto.AvailabilitySummary, error) {
	if productID == "" {
		return nil, domain.InvalidInput("product_id is required")
	}
	out := &dto.AvailabilitySummary{
		ProductID:      productID,
		VariantID:      variantID,
		TotalPhysical:  decimal.Zero,
		TotalReserved:  decimal.Zero,
		TotalAvailable: decimal.Zero,
		ByLocation:     []dto.LocationAvailability{},
	}
	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		items, err := tx.StockItems.ListByProduct(ctx, productID, variantID)
		if err != nil {
			return err
		}
		out.TotalPhysical, out.TotalReserved, out.TotalAvailable = decimal.Zero, decimal.Zero, decimal.Zero
		out.ByLocation = make([]dto.LocationAvailability, 0, len(items))
		for _, it := range items {
			out.TotalPhysical = out.TotalPhysical.Add(it.PhysicalQuantity)
			out.TotalReserved = out.TotalReserved.Add(it.ReservedQuantity)
			out.TotalAvailable = out.TotalAvailable.Add(it.Available())
			out.ByLocation = append(out.ByLocation, dto.LocationAvailability{
				LocationID:        it.LocationID,
				StockItemID:       it.ID,
				PhysicalQuantity:  it.PhysicalQuantity,
				ReservedQuantity:  it.ReservedQuantity,
				AvailableQuantity: it.Available(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CheckReorderNeeds lista los ítems en o bajo su punto de reorden con urgencia y cantidad sugerida.
// locationID vacío considera todas las ubicaciones.
//
// Urgencia: disponible <= 0 critical; <= min_stock high; si no, medium.
// Cantidad sugerida: reorder_quantity si existe; si no, max_stock − físico; si no,
// reorder_point × 1.5 − disponible (stock ideal).
func (s *Service) CheckReorderNeeds(ctx context.Context, locationID string) ([]dto.ReorderNeed, error) {
	var items []*entity.StockItem
	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		var err error
		items, err = tx.StockItems.ListBelowReorderPoint(ctx, locationID)
		return err
	})
	if err != nil {
		return nil, err
	}

	needs := make([]dto.ReorderNeed, 0, len(items))
	for _, it := range items {
		needs = append(needs, reorderNeed(it))
	}
	rank := map[string]int{dto.UrgencyCritical: 0, dto.UrgencyHigh: 1, dto.UrgencyMedium: 2}
	sort.SliceStable(needs, func(i, j int) bool {
		a, b := needs[i], needs[j]
		if rank[a.Urgency] != rank[b.Urgency] {
			return rank[a.Urgency] < rank[b.Urgency]
		}
		return a.AvailableQuantity.LessThan(b.AvailableQuantity)
	})
	return needs, nil
}

func reorderNeed(it *entity.StockItem) dto.ReorderNeed {
	available := it.Available()

	urgency := dto.UrgencyMedium
	switch {
	case !available.IsPositive():
		urgency = dto.UrgencyCritical
	case it.MinStock.Valid && available.LessThanOrEqual(it.MinStock.Decimal):
		urgency = dto.UrgencyHigh
	}

	var suggested decimal.Decimal
	switch {
	case it.ReorderQuantity.Valid && it.ReorderQuantity.Decimal.IsPositive():
		suggested = it.ReorderQuantity.Decimal
	case it.MaxStock.Valid:
		suggested = it.MaxStock.Decimal.Sub(it.PhysicalQuantity)
	default:
		ideal := it.ReorderPoint.Decimal.Mul(decimal.NewFromFloat(1.5))
		suggested = ideal.Sub(available)
	}
	if suggested.IsNegative() {
		suggested = decimal.Zero
	}

	return dto.ReorderNeed{
		StockItemID:       it.ID,
		ProductID:         it.ProductID,
		VariantID:         it.VariantID,
		LocationID:        it.LocationID,
		PhysicalQuantity:  it.PhysicalQuantity,
		AvailableQuantity: available,
		ReorderPoint:      it.ReorderPoint.Decimal,
		MinStock:          optional(it.MinStock),
		Urgency:           urgency,
		SuggestedQuantity: suggested,
	}
}
