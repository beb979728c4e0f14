package outbox_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/outbox"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/event"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

type brokerMock struct{ mock.Mock }

func (m *brokerMock) Connect(ctx context.Context) (outbox.Channel, error) {
	args := m.Called(ctx)
	if ch, ok := args.Get(0).(outbox.Channel); ok {
		return ch, args.Error(1)
	}
	return nil, args.Error(1)
}

type channelMock struct{ mock.Mock }

func (m *channelMock) Publish(ctx context.Context, routingKey string, body []byte, headers map[string]string) error {
	return m.Called(ctx, routingKey, body, headers).Error(0)
}

func (m *channelMock) Close() error { return m.Called().Error(0) }

type pinged struct {
	event.Base
	Target string `json:"target"`
}

func (pinged) EventName() string     { return "Pinged" }
func (p pinged) AggregateID() string { return p.Target }

type pingedIntegration struct {
	event.Base
	Target string `json:"target"`
}

func (pingedIntegration) EventType() string { return "TargetPingedIntegrationEvent" }

type pingHandler struct {
	internal func(context.Context, repository.Tx, event.DomainEvent) ([]event.DomainEvent, error)
}

func (h pingHandler) EventNames() []string { return []string{"Pinged"} }

func (h pingHandler) MapToIntegrationEvent(e event.DomainEvent) (event.IntegrationEvent, bool) {
	p := e.(pinged)
	return pingedIntegration{Base: p.Base, Target: p.Target}, true
}

func (h pingHandler) HandleInternal(ctx context.Context, tx repository.Tx, e event.DomainEvent) ([]event.DomainEvent, error) {
	if h.internal == nil {
		return nil, nil
	}
	return h.internal(ctx, tx, e)
}

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func ping(target string, offset time.Duration) pinged {
	return pinged{Base: event.Base{ID: target, Occurred: t0.Add(offset)}, Target: target}
}

func enqueue(t *testing.T, store *memory.Store, events ...event.DomainEvent) {
	t.Helper()
	d := outbox.NewDispatcher(zerolog.Nop())
	d.Register(pingHandler{})
	require.NoError(t, store.Run(context.Background(), func(tx repository.Tx) error {
		return d.Dispatch(context.Background(), tx, events...)
	}))
}

func pending(t *testing.T, store *memory.Store) []*entity.OutboxEvent {
	t.Helper()
	var out []*entity.OutboxEvent
	require.NoError(t, store.Run(context.Background(), func(tx repository.Tx) error {
		var err error
		out, err = tx.Outbox.FetchPending(context.Background(), 100)
		return err
	}))
	return out
}

func TestDispatcher_EscribeFilaDeOutbox(t *testing.T) {
	store := memory.NewStore(time.Second)
	enqueue(t, store, ping("a", 0))

	rows := pending(t, store)
	require.Len(t, rows, 1)
	assert.Equal(t, "TargetPingedIntegrationEvent", rows[0].EventType)
	assert.JSONEq(t, `{"event_id":"a","occurred_on":"2025-03-01T12:00:00Z","target":"a"}`, string(rows[0].EventData))
	assert.True(t, rows[0].OccurredOn.Equal(t0))
	assert.Zero(t, rows[0].RetryCount)
}

func TestDispatcher_RollbackNoDejaFilas(t *testing.T) {
	store := memory.NewStore(time.Second)
	d := outbox.NewDispatcher(zerolog.Nop())
	d.Register(pingHandler{internal: func(context.Context, repository.Tx, event.DomainEvent) ([]event.DomainEvent, error) {
		return nil, errors.New("reaction failed")
	}})

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return d.Dispatch(context.Background(), tx, ping("a", 0))
	})
	require.Error(t, err)
	assert.Empty(t, pending(t, store))
}

func TestDispatcher_LimitaEncadenamiento(t *testing.T) {
	store := memory.NewStore(time.Second)
	d := outbox.NewDispatcher(zerolog.Nop())
	d.Register(pingHandler{internal: func(_ context.Context, _ repository.Tx, e event.DomainEvent) ([]event.DomainEvent, error) {
		return []event.DomainEvent{e}, nil
	}})

	err := store.Run(context.Background(), func(tx repository.Tx) error {
		return d.Dispatch(context.Background(), tx, ping("loop", 0))
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested deeper")
	assert.Empty(t, pending(t, store))
}

func newWorker(store *memory.Store, b outbox.Broker) *outbox.Worker {
	return outbox.NewWorker(store, b, outbox.WorkerConfig{BatchSize: 10, MaxRetries: 3}, zerolog.Nop()).
		WithClock(func() time.Time { return t0.Add(time.Hour) })
}

func TestWorker_PublicaEnOrdenYMarcaProcesadas(t *testing.T) {
	store := memory.NewStore(time.Second)
	enqueue(t, store, ping("second", time.Minute), ping("first", 0))

	ch := &channelMock{}
	var order []string
	ch.On("Publish", mock.Anything, "target.pinged", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			headers := args.Get(3).(map[string]string)
			assert.Equal(t, "TargetPingedIntegrationEvent", headers["event_type"])
			assert.NotEmpty(t, headers["event_id"])
			order = append(order, string(args.Get(2).([]byte)))
		}).Return(nil)
	ch.On("Close").Return(nil).Once()
	b := &brokerMock{}
	b.On("Connect", mock.Anything).Return(ch, nil).Once()

	res, err := newWorker(store, b).ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, outbox.BatchResult{Fetched: 2, Published: 2}, res)
	require.Len(t, order, 2)
	assert.Contains(t, order[0], `"first"`)
	assert.Empty(t, pending(t, store))
	b.AssertExpectations(t)
	ch.AssertExpectations(t)
}

func TestWorker_SinPendientesNoConecta(t *testing.T) {
	store := memory.NewStore(time.Second)
	b := &brokerMock{}

	res, err := newWorker(store, b).ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Fetched)
	b.AssertNotCalled(t, "Connect", mock.Anything)
}

func TestWorker_FalloDeConexionNoTocaFilas(t *testing.T) {
	store := memory.NewStore(time.Second)
	enqueue(t, store, ping("a", 0))
	b := &brokerMock{}
	b.On("Connect", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := newWorker(store, b).ProcessBatch(context.Background())
	require.Error(t, err)

	rows := pending(t, store)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].RetryCount)
	assert.Empty(t, rows[0].ErrorMessage)
}

func TestWorker_CaidaDelBrokerTrasUnLoteNoTocaFilas(t *testing.T) {
	store := memory.NewStore(time.Second)
	enqueue(t, store, ping("a", 0))

	ch := &channelMock{}
	ch.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	ch.On("Close").Return(nil)
	b := &brokerMock{}
	b.On("Connect", mock.Anything).Return(ch, nil).Once()
	b.On("Connect", mock.Anything).Return(nil, errors.New("dial tcp: connection refused"))
	w := newWorker(store, b)

	res, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Published)

	enqueue(t, store, ping("b", time.Minute))
	for i := 0; i < 3; i++ {
		_, err := w.ProcessBatch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connect broker")
	}

	rows := pending(t, store)
	require.Len(t, rows, 1)
	assert.Contains(t, string(rows[0].EventData), `"target":"b"`)
	assert.Zero(t, rows[0].RetryCount)
	assert.Empty(t, rows[0].ErrorMessage)

	dls, err := outbox.NewDeadLetterService(store, zerolog.Nop()).List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, dls)
	ch.AssertNumberOfCalls(t, "Publish", 1)
}

func TestWorker_ReintentosAgotadosPasanADeadLetter(t *testing.T) {
	store := memory.NewStore(time.Second)
	enqueue(t, store, ping("a", 0))

	ch := &channelMock{}
	ch.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("nack"))
	ch.On("Close").Return(nil)
	b := &brokerMock{}
	b.On("Connect", mock.Anything).Return(ch, nil)
	w := newWorker(store, b)

	for attempt := 1; attempt <= 2; attempt++ {
		res, err := w.ProcessBatch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, res.Failed)
		assert.Zero(t, res.DeadLettered)
		rows := pending(t, store)
		require.Len(t, rows, 1)
		assert.Equal(t, attempt, rows[0].RetryCount)
		assert.Equal(t, "nack", rows[0].ErrorMessage)
	}

	res, err := w.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.DeadLettered)
	assert.Empty(t, pending(t, store))

	dls, err := outbox.NewDeadLetterService(store, zerolog.Nop()).List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, dls, 1)
	assert.Equal(t, 3, dls[0].RetryCount)
	assert.Equal(t, "nack", dls[0].LastError)
	assert.Equal(t, "TargetPingedIntegrationEvent", dls[0].EventType)
	assert.Nil(t, dls[0].ReplayedAt)
}

func TestDeadLetters_ReencolarUnaSolaVez(t *testing.T) {
	store := memory.NewStore(time.Second)
	ctx := context.Background()
	require.NoError(t, store.Run(ctx, func(tx repository.Tx) error {
		if err := tx.Outbox.Append(ctx, &entity.OutboxEvent{ID: "orig", EventType: "X", EventData: []byte(`{}`), OccurredOn: t0, IsProcessed: true}); err != nil {
			return err
		}
		return tx.Outbox.InsertDeadLetter(ctx, &entity.OutboxDeadLetter{
			ID: "dl-1", OutboxEventID: "orig", EventType: "X", EventData: []byte(`{}`), OccurredOn: t0, RetryCount: 3, FailedAt: t0,
		})
	}))
	svc := outbox.NewDeadLetterService(store, zerolog.Nop())

	out, err := svc.Replay(ctx, "dl-1")
	require.NoError(t, err)
	assert.NotNil(t, out.ReplayedAt)

	rows := pending(t, store)
	require.Len(t, rows, 1)
	assert.NotEqual(t, "orig", rows[0].ID)
	assert.Equal(t, "X", rows[0].EventType)
	assert.Zero(t, rows[0].RetryCount)

	_, err = svc.Replay(ctx, "dl-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Replay(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
