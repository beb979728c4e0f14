package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/stock"
)

type lockMock struct{ mock.Mock }

func (m *lockMock) IsLocked(ctx context.Context, locationID string) (bool, error) {
	args := m.Called(ctx, locationID)
	return args.Bool(0), args.Error(1)
}

func item(location string) *entity.StockItem {
	it := entity.NewStockItem(entity.StockKey{ProductID: "P", LocationID: location}, time.Now())
	it.PhysicalQuantity = decimal.NewFromInt(5)
	return it
}

func TestRules_UbicacionConConteoAbiertoBloquea(t *testing.T) {
	lock := &lockMock{}
	lock.On("IsLocked", mock.Anything, "A").Return(true, nil)

	err := stock.NewRules(lock).Validate(context.Background(), item("A"))
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
	var se *domain.StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, stock.RuleInventoryLock, se.Rule)
	lock.AssertExpectations(t)
}

func TestRules_SinBloqueoPasa(t *testing.T) {
	assert.NoError(t, stock.NewRules(nil).Validate(context.Background(), item("A")))
}

func TestRules_InvarianteSeEvaluaAntesDelBloqueo(t *testing.T) {
	lock := &lockMock{}
	it := item("A")
	it.ReservedQuantity = decimal.NewFromInt(9)

	err := stock.NewRules(lock).Validate(context.Background(), it)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	lock.AssertNotCalled(t, "IsLocked", mock.Anything, mock.Anything)
}

func TestRules_ErrorDelBloqueoSePropaga(t *testing.T) {
	lock := &lockMock{}
	boom := errors.New("lock store down")
	lock.On("IsLocked", mock.Anything, "A").Return(false, boom)

	err := stock.NewRules(lock).Validate(context.Background(), item("A"))
	assert.ErrorIs(t, err, boom)
}
