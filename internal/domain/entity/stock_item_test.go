package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newItem(physical, reserved int64) *entity.StockItem {
	it := entity.NewStockItem(entity.StockKey{ProductID: "P", LocationID: "A"}, t0)
	it.PhysicalQuantity = d(physical)
	it.ReservedQuantity = d(reserved)
	return it
}

func TestStockItem_ReservaYLiberaVuelveAlEstadoInicial(t *testing.T) {
	it := newItem(10, 2)

	_, err := it.Reserve(d(5), t0)
	require.NoError(t, err)
	assert.True(t, it.ReservedQuantity.Equal(d(7)))
	assert.True(t, it.Available().Equal(d(3)))

	_, err = it.Release(d(5), t0)
	require.NoError(t, err)
	assert.True(t, it.PhysicalQuantity.Equal(d(10)))
	assert.True(t, it.ReservedQuantity.Equal(d(2)))
}

func TestStockItem_ReservaMayorAlDisponibleFallaSinCambios(t *testing.T) {
	it := newItem(10, 8)

	_, err := it.Reserve(d(3), t0)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Insufficient available stock. Available: 2, Requested: 3", err.Error())
	assert.True(t, it.ReservedQuantity.Equal(d(8)))
}

func TestStockItem_CantidadNoPositivaEsInvalida(t *testing.T) {
	it := newItem(10, 0)
	for _, q := range []decimal.Decimal{d(0), d(-1)} {
		_, err := it.Reserve(q, t0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = it.Release(q, t0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = it.Receive(q, t0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestStockItem_LiberarMasDeLoReservadoFalla(t *testing.T) {
	it := newItem(10, 2)
	_, err := it.Release(d(3), t0)
	assert.ErrorIs(t, err, domain.ErrInsufficientReservation)
	assert.True(t, it.ReservedQuantity.Equal(d(2)))
}

func TestStockItem_ReleaseClampedLiberaSoloLoQueHay(t *testing.T) {
	it := newItem(10, 2)

	released, events, err := it.ReleaseClamped(d(5), t0)
	require.NoError(t, err)
	assert.True(t, released.Equal(d(2)))
	assert.True(t, it.ReservedQuantity.IsZero())
	assert.Len(t, events, 1)

	released, events, err = it.ReleaseClamped(d(5), t0)
	require.NoError(t, err)
	assert.True(t, released.IsZero())
	assert.Empty(t, events)
}

func TestStockItem_AjusteNegativoBajoCeroEsNegativeStock(t *testing.T) {
	it := newItem(4, 0)
	_, err := it.Adjust(d(-5), t0)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.True(t, it.PhysicalQuantity.Equal(d(4)))
}

func TestStockItem_AjusteBajoLoReservadoEsReservedExceedsPhysical(t *testing.T) {
	it := newItem(10, 8)
	_, err := it.Adjust(d(-3), t0)
	assert.ErrorIs(t, err, domain.ErrReservedExceedsPhysical)
	assert.True(t, it.PhysicalQuantity.Equal(d(10)))
}

func TestStockItem_AjusteCeroEsInvalido(t *testing.T) {
	it := newItem(10, 0)
	_, err := it.Adjust(d(0), t0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockItem_AjusteFisicoEstampaUltimoMovimiento(t *testing.T) {
	it := newItem(10, 0)
	events, err := it.Adjust(d(-2), t0)
	require.NoError(t, err)
	require.NotNil(t, it.LastMovementAt)
	assert.Equal(t, t0, *it.LastMovementAt)

	require.Len(t, events, 1)
	changed, ok := events[0].(entity.StockLevelChanged)
	require.True(t, ok)
	assert.Equal(t, entity.StockOpAdjusted, changed.Operation)
	assert.True(t, changed.Quantity.Equal(d(-2)))
	assert.True(t, changed.Available.Equal(d(8)))
}

func TestStockItem_ReservaNoEsMovimientoFisico(t *testing.T) {
	it := newItem(10, 0)
	_, err := it.Reserve(d(1), t0)
	require.NoError(t, err)
	assert.Nil(t, it.LastMovementAt)
}

func TestStockItem_FulfillBajaFisicoYReservado(t *testing.T) {
	it := newItem(10, 4)
	_, err := it.Fulfill(d(4), t0)
	require.NoError(t, err)
	assert.True(t, it.PhysicalQuantity.Equal(d(6)))
	assert.True(t, it.ReservedQuantity.IsZero())

	_, err = it.Fulfill(d(1), t0)
	assert.ErrorIs(t, err, domain.ErrInsufficientReservation)
}

func TestStockItem_WithdrawNoTocaLoReservado(t *testing.T) {
	it := newItem(10, 8)
	_, err := it.Withdraw(d(3), t0)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = it.Withdraw(d(2), t0)
	require.NoError(t, err)
	assert.True(t, it.PhysicalQuantity.Equal(d(8)))
}

func TestStockItem_CruzarPuntoDeReordenEmiteEventoUnaVez(t *testing.T) {
	it := newItem(10, 0)
	it.ReorderPoint = decimal.NewNullDecimal(d(5))

	events, err := it.Reserve(d(4), t0)
	require.NoError(t, err)
	assert.Len(t, events, 1, "disponible 6 sigue sobre el punto de reorden")

	events, err = it.Reserve(d(1), t0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	reached, ok := events[1].(entity.StockReorderPointReached)
	require.True(t, ok)
	assert.True(t, reached.Available.Equal(d(5)))

	events, err = it.Reserve(d(1), t0)
	require.NoError(t, err)
	assert.Len(t, events, 1, "ya estaba bajo el punto de reorden")
}

func TestStockItem_CheckInvariantsCodigosDeRegla(t *testing.T) {
	it := newItem(1, 0)
	it.PhysicalQuantity = d(-1)
	err := it.CheckInvariants()
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
	var se *domain.StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "RG-STOCK-001", se.Rule)

	it = newItem(1, 2)
	err = it.CheckInvariants()
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "RG-STOCK-002", se.Rule)
}

func TestStockKey_LessOrdenTotal(t *testing.T) {
	a := entity.StockKey{ProductID: "P", LocationID: "A"}
	b := entity.StockKey{ProductID: "P", LocationID: "B"}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))

	v1 := entity.StockKey{ProductID: "P", VariantID: "1", LocationID: "A"}
	assert.True(t, a.Less(v1))
}
