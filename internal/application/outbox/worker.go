package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

const instrumentationName = "github.com/jhoicas/stock-ledger/internal/application/outbox"

// Broker abre una conexión al broker de mensajería. El worker abre una por lote.
type Broker interface {
	Connect(ctx context.Context) (Channel, error)
}

// Channel conexión abierta sobre la que se publican los eventos de un lote con entrega persistente.
type Channel interface {
	Publish(ctx context.Context, routingKey string, body []byte, headers map[string]string) error
	Close() error
}

// WorkerConfig parámetros del publicador.
type WorkerConfig struct {
	BatchSize    int
	PollInterval time.Duration
	MaxRetries   int
	MaxBackoff   time.Duration
}

// Worker publica filas pendientes de outbox_events hacia el broker.
// Éxito → procesada. Fallo → retry_count++ y error_message; al agotar MaxRetries la fila
// queda procesada y se copia a outbox_dead_letters en la misma transacción.
type Worker struct {
	txRunner repository.TxRunner
	broker   Broker
	cfg      WorkerConfig
	log      zerolog.Logger
	now      func() time.Time

	published    metric.Int64Counter
	failed       metric.Int64Counter
	deadLettered metric.Int64Counter
}

// NewWorker construye el worker; valores no positivos toman los defaults (100, 5s, 3, 1m).
func NewWorker(txRunner repository.TxRunner, broker Broker, cfg WorkerConfig, log zerolog.Logger) *Worker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = time.Minute
	}
	meter := otel.Meter(instrumentationName)
	published, _ := meter.Int64Counter("outbox.published", metric.WithDescription("Outbox events published to the broker"))
	failed, _ := meter.Int64Counter("outbox.failed", metric.WithDescription("Failed outbox publish attempts"))
	dead, _ := meter.Int64Counter("outbox.dead_lettered", metric.WithDescription("Outbox events moved to dead letters"))
	return &Worker{
		txRunner:     txRunner,
		broker:       broker,
		cfg:          cfg,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
		published:    published,
		failed:       failed,
		deadLettered: dead,
	}
}

// WithClock reemplaza el reloj (tests).
func (w *Worker) WithClock(now func() time.Time) *Worker {
	w.now = now
	return w
}

// BatchResult conteo de un lote.
type BatchResult struct {
	Fetched      int
	Published    int
	Failed       int
	DeadLettered int
}

// Run procesa lotes hasta que ctx termine. Si el lote vino lleno sigue sin esperar;
// si falla la conexión al broker espera con backoff exponencial.
func (w *Worker) Run(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = w.cfg.MaxBackoff
	bo.MaxElapsedTime = 0
	bo.Reset()

	w.log.Info().Int("batch_size", w.cfg.BatchSize).Dur("poll_interval", w.cfg.PollInterval).Msg("outbox worker started")
	for {
		res, err := w.ProcessBatch(ctx)
		wait := w.cfg.PollInterval
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			wait = bo.NextBackOff()
			w.log.Error().Err(err).Dur("retry_in", wait).Msg("outbox batch aborted")
		case res.Fetched == w.cfg.BatchSize:
			bo.Reset()
			wait = 0
		default:
			bo.Reset()
		}
		select {
		case <-ctx.Done():
			w.log.Info().Msg("outbox worker stopped")
			return nil
		case <-time.After(wait):
		}
	}
}

// ProcessBatch toma un lote de pendientes (más antiguas primero) y lo publica con una sola conexión.
// Un error de conexión aborta el lote sin tocar las filas.
func (w *Worker) ProcessBatch(ctx context.Context) (res BatchResult, err error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "outbox.ProcessBatch")
	defer func() {
		span.SetAttributes(
			attribute.Int("outbox.fetched", res.Fetched),
			attribute.Int("outbox.published", res.Published),
			attribute.Int("outbox.failed", res.Failed),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	err = w.txRunner.Run(ctx, func(tx repository.Tx) error {
		res = BatchResult{}
		pending, err := tx.Outbox.FetchPending(ctx, w.cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("fetch pending: %w", err)
		}
		res.Fetched = len(pending)
		if len(pending) == 0 {
			return nil
		}

		ch, err := w.broker.Connect(ctx)
		if err != nil {
			return fmt.Errorf("connect broker: %w", err)
		}
		defer func() {
			if cerr := ch.Close(); cerr != nil {
				w.log.Warn().Err(cerr).Msg("close broker channel")
			}
		}()

		for _, e := range pending {
			if err := w.publishOne(ctx, tx, ch, e, &res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	if res.Fetched > 0 {
		w.log.Debug().Int("fetched", res.Fetched).Int("published", res.Published).
			Int("failed", res.Failed).Int("dead_lettered", res.DeadLettered).Msg("outbox batch processed")
	}
	return res, nil
}

func (w *Worker) publishOne(ctx context.Context, tx repository.Tx, ch Channel, e *entity.OutboxEvent, res *BatchResult) error {
	headers := map[string]string{
		"event_id":    e.ID,
		"event_type":  e.EventType,
		"occurred_on": e.OccurredOn.UTC().Format(time.RFC3339Nano),
	}
	if e.TenantID != "" {
		headers["tenant_id"] = e.TenantID
	}
	typeAttr := metric.WithAttributes(attribute.String("event_type", e.EventType))

	pubErr := ch.Publish(ctx, RoutingKey(e.EventType), e.EventData, headers)
	now := w.now()
	if pubErr == nil {
		if err := tx.Outbox.MarkProcessed(ctx, e.ID, now); err != nil {
			return fmt.Errorf("mark processed %s: %w", e.ID, err)
		}
		res.Published++
		w.published.Add(ctx, 1, typeAttr)
		return nil
	}
	if errors.Is(pubErr, context.Canceled) || errors.Is(pubErr, context.DeadlineExceeded) {
		return pubErr
	}

	res.Failed++
	w.failed.Add(ctx, 1, typeAttr)
	e.RetryCount++
	e.ErrorMessage = pubErr.Error()
	terminal := e.RetryCount >= w.cfg.MaxRetries
	if terminal {
		e.IsProcessed = true
		e.ProcessedOn = &now
	}
	if err := tx.Outbox.MarkFailed(ctx, e); err != nil {
		return fmt.Errorf("mark failed %s: %w", e.ID, err)
	}
	log := w.log.Warn().Err(pubErr).Str("event_id", e.ID).Str("event_type", e.EventType).Int("retry_count", e.RetryCount)
	if !terminal {
		log.Msg("outbox publish failed")
		return nil
	}
	if err := tx.Outbox.InsertDeadLetter(ctx, &entity.OutboxDeadLetter{
		ID:            uuid.New().String(),
		OutboxEventID: e.ID,
		EventType:     e.EventType,
		EventData:     e.EventData,
		OccurredOn:    e.OccurredOn,
		TenantID:      e.TenantID,
		RetryCount:    e.RetryCount,
		LastError:     e.ErrorMessage,
		FailedAt:      now,
	}); err != nil {
		return fmt.Errorf("insert dead letter %s: %w", e.ID, err)
	}
	res.DeadLettered++
	w.deadLettered.Add(ctx, 1, typeAttr)
	log.Msg("outbox event dead-lettered")
	return nil
}
