package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	_ "github.com/jhoicas/stock-ledger/docs"
	"github.com/jhoicas/stock-ledger/internal/application/order"
	"github.com/jhoicas/stock-ledger/internal/application/outbox"
	"github.com/jhoicas/stock-ledger/internal/application/stock"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	stockrules "github.com/jhoicas/stock-ledger/internal/domain/stock"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/broker"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// swaggerFile generado con `swag init -g cmd/api/main.go --parseInternal` desde la raíz del repo.
const swaggerFile = "./docs/swagger.json"

// @title        Stock Ledger API
// @version      1.0
// @description  Ledger de stock, reservas por pedido y outbox transaccional.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("log_level", cfg.App.LogLevel).
		Str("storage", cfg.Storage.Driver).
		Str("broker", cfg.Broker.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: "1.0.0",
		Insecure:       cfg.App.Env != "production",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("telemetría")
	}

	var txRunner repository.TxRunner
	switch cfg.Storage.Driver {
	case "memory":
		txRunner = memory.NewStore(cfg.Ledger.LockTimeout)
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		txRunner = postgres.NewTxRunner(pool, cfg.Ledger.LockTimeout, cfg.Ledger.LockRetries, log.Component("tx"))
	}

	dispatcher := outbox.NewDispatcher(log.Component("dispatcher"))
	ledger := stock.NewLedger(stockrules.NewRules(stockrules.NoInventoryLock{}))
	dispatcher.Register(stock.NewEventHandler())
	dispatcher.Register(order.NewStockReactions(ledger, order.ReservationPolicy(cfg.Ledger.ReservationPolicy), log.Component("reactions")))

	stockSvc := stock.NewService(txRunner, ledger, dispatcher, log.Component("stock"))
	orderSvc := order.NewService(txRunner, dispatcher, log.Component("order"))
	deadLetters := outbox.NewDeadLetterService(txRunner, log.Component("dead_letters"))

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Stock Ledger API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Stock:       stockSvc,
		Orders:      orderSvc,
		DeadLetters: deadLetters,
		Validate:    validator.New(),
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if cfg.Outbox.Enabled {
		b, err := newBroker(gctx, cfg.Broker, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión al broker")
		}
		defer func() {
			if err := b.Close(); err != nil {
				log.Error().Err(err).Msg("cierre del broker")
			}
		}()
		worker := outbox.NewWorker(txRunner, b, outbox.WorkerConfig{
			BatchSize:    cfg.Outbox.BatchSize,
			PollInterval: cfg.Outbox.PollInterval,
			MaxRetries:   cfg.Outbox.MaxRetries,
			MaxBackoff:   cfg.Outbox.MaxBackoff,
		}, log.Component("outbox"))
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("aplicación finalizada con error")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTelemetry(flushCtx); err != nil {
		log.Error().Err(err).Msg("cierre de telemetría")
	}
	log.Info().Msg("aplicación detenida")
}

type closableBroker interface {
	outbox.Broker
	io.Closer
}

func newBroker(ctx context.Context, cfg config.BrokerConfig, log *logger.Logger) (closableBroker, error) {
	if cfg.Driver == "kafka" {
		return broker.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	}
	return broker.NewNATS(ctx, broker.NATSConfig{
		URL:           cfg.NatsURL,
		StreamName:    cfg.StreamName,
		SubjectPrefix: cfg.SubjectPrefix,
	}, log.Component("nats"))
}
