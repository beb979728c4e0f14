package broker_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/outbox"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/broker"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

// 127.0.0.1:1 rechaza la conexión de inmediato.
const unreachable = "127.0.0.1:1"

func TestKafka_ConnectFallaSiNingunBrokerResponde(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	b := broker.NewKafka([]string{unreachable}, "stock-events")
	defer b.Close()

	ch, err := b.Connect(ctx)
	require.Error(t, err)
	assert.Nil(t, ch)
	assert.Contains(t, err.Error(), "kafka unreachable")
}

func TestKafka_SinBrokersConfigurados(t *testing.T) {
	_, err := broker.NewKafka(nil, "stock-events").Connect(context.Background())
	assert.Error(t, err)
}

func TestKafka_CaidaDelBrokerNoConsumeReintentos(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := memory.NewStore(time.Second)
	require.NoError(t, store.Run(ctx, func(tx repository.Tx) error {
		return tx.Outbox.Append(ctx, &entity.OutboxEvent{
			ID: "evt-1", EventType: "StockReservedIntegrationEvent", EventData: []byte(`{}`), OccurredOn: time.Now().UTC(),
		})
	}))

	b := broker.NewKafka([]string{unreachable}, "stock-events")
	defer b.Close()
	w := outbox.NewWorker(store, b, outbox.WorkerConfig{BatchSize: 10, MaxRetries: 3}, zerolog.Nop())

	for i := 0; i < 3; i++ {
		_, err := w.ProcessBatch(ctx)
		require.Error(t, err)
	}

	var rows []*entity.OutboxEvent
	require.NoError(t, store.Run(ctx, func(tx repository.Tx) error {
		var err error
		rows, err = tx.Outbox.FetchPending(ctx, 10)
		return err
	}))
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].RetryCount)
	assert.Empty(t, rows[0].ErrorMessage)

	dls, err := outbox.NewDeadLetterService(store, zerolog.Nop()).List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, dls)
}
