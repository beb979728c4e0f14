package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

var key = entity.StockKey{ProductID: "P", LocationID: "A"}

func seed(t *testing.T, s *memory.Store) *entity.StockItem {
	t.Helper()
	it := entity.NewStockItem(key, time.Now())
	it.PhysicalQuantity = decimal.NewFromInt(10)
	require.NoError(t, s.Run(context.Background(), func(tx repository.Tx) error {
		if err := tx.Locations.Create(context.Background(), &entity.Location{ID: "A", Code: "A", Type: entity.LocationWarehouse}); err != nil {
			return err
		}
		return tx.StockItems.Create(context.Background(), it)
	}))
	return it
}

func TestStore_RollbackDescartaCambios(t *testing.T) {
	s := memory.NewStore(time.Second)
	it := seed(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(tx repository.Tx) error {
		got, err := tx.StockItems.GetByIDForUpdate(ctx, it.ID)
		if err != nil {
			return err
		}
		got.ReservedQuantity = decimal.NewFromInt(4)
		if err := tx.StockItems.Update(ctx, got); err != nil {
			return err
		}
		if err := tx.Outbox.Append(ctx, &entity.OutboxEvent{ID: "e-1", EventType: "X"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.Run(ctx, func(tx repository.Tx) error {
		got, err := tx.StockItems.GetByID(ctx, it.ID)
		require.NoError(t, err)
		assert.True(t, got.ReservedQuantity.IsZero())
		pending, err := tx.Outbox.FetchPending(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
		return nil
	}))
}

func TestStore_LosReposDevuelvenCopias(t *testing.T) {
	s := memory.NewStore(time.Second)
	it := seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.Run(ctx, func(tx repository.Tx) error {
		got, err := tx.StockItems.GetByID(ctx, it.ID)
		require.NoError(t, err)
		got.PhysicalQuantity = decimal.NewFromInt(99)
		return nil
	}))
	require.NoError(t, s.Run(ctx, func(tx repository.Tx) error {
		got, err := tx.StockItems.GetByKeyForUpdate(ctx, key)
		require.NoError(t, err)
		assert.True(t, got.PhysicalQuantity.Equal(decimal.NewFromInt(10)))
		return nil
	}))
}

func TestStore_ClaveDuplicada(t *testing.T) {
	s := memory.NewStore(time.Second)
	seed(t, s)
	err := s.Run(context.Background(), func(tx repository.Tx) error {
		return tx.StockItems.Create(context.Background(), entity.NewStockItem(key, time.Now()))
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStore_TimeoutDeBloqueo(t *testing.T) {
	s := memory.NewStore(20 * time.Millisecond)
	ctx := context.Background()

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, func(repository.Tx) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	err := s.Run(ctx, func(repository.Tx) error { return nil })
	assert.ErrorIs(t, err, domain.ErrLockTimeout)

	close(release)
	require.NoError(t, <-done)
}

func TestStore_ContextoCanceladoNoEspera(t *testing.T) {
	s := memory.NewStore(0)
	ctx, cancel := context.WithCancel(context.Background())

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.Run(context.Background(), func(repository.Tx) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	cancel()

	err := s.Run(ctx, func(repository.Tx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	close(release)
}

func TestStore_PendientesOrdenadosYDeadLettersRecientesPrimero(t *testing.T) {
	s := memory.NewStore(time.Second)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Run(ctx, func(tx repository.Tx) error {
		for _, id := range []string{"c", "a", "b"} {
			offset := map[string]int{"a": 0, "b": 1, "c": 2}[id]
			if err := tx.Outbox.Append(ctx, &entity.OutboxEvent{ID: id, OccurredOn: base.Add(time.Duration(offset) * time.Minute)}); err != nil {
				return err
			}
		}
		for _, id := range []string{"dl-1", "dl-2"} {
			if err := tx.Outbox.InsertDeadLetter(ctx, &entity.OutboxDeadLetter{ID: id}); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, s.Run(ctx, func(tx repository.Tx) error {
		pending, err := tx.Outbox.FetchPending(ctx, 2)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, "a", pending[0].ID)
		assert.Equal(t, "b", pending[1].ID)

		dls, err := tx.Outbox.ListDeadLetters(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, dls, 2)
		assert.Equal(t, "dl-2", dls[0].ID)
		return nil
	}))
}
