// Package broker implementa los destinos del publicador de outbox (NATS JetStream y Kafka).
package broker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger/internal/application/outbox"
)

var _ outbox.Broker = (*NATSBroker)(nil)

// NATSBroker publica en un stream JetStream con subject <prefix>.<routing key>.
type NATSBroker struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	prefix string
	log    zerolog.Logger
}

// NATSConfig conexión y stream destino.
type NATSConfig struct {
	URL           string
	StreamName    string
	SubjectPrefix string
}

// NewNATS conecta con el servidor y asegura que el stream exista.
func NewNATS(ctx context.Context, cfg NATSConfig, log zerolog.Logger) (*NATSBroker, error) {
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = strings.ToLower(cfg.StreamName)
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name("stock-ledger-outbox"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}
	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:     strings.ToUpper(cfg.StreamName),
		Subjects: []string{cfg.SubjectPrefix + ".>"},
		Storage:  jetstream.FileStorage,
	})
	if err != nil && !errors.Is(err, jetstream.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return nil, fmt.Errorf("create stream %s: %w", cfg.StreamName, err)
	}
	return &NATSBroker{nc: nc, js: js, prefix: cfg.SubjectPrefix, log: log}, nil
}

// Connect devuelve un canal sobre la conexión vigente; falla si la conexión está caída.
func (b *NATSBroker) Connect(context.Context) (outbox.Channel, error) {
	if !b.nc.IsConnected() {
		return nil, fmt.Errorf("nats connection is %s", b.nc.Status())
	}
	return &natsChannel{b: b}, nil
}

// Close drena la conexión.
func (b *NATSBroker) Close() error {
	return b.nc.Drain()
}

type natsChannel struct {
	b *NATSBroker
}

// Publish espera el ack del stream; el event_id se usa como Nats-Msg-Id para deduplicar reintentos.
func (c *natsChannel) Publish(ctx context.Context, routingKey string, body []byte, headers map[string]string) error {
	msg := nats.NewMsg(c.b.prefix + "." + routingKey)
	msg.Data = body
	for k, v := range headers {
		msg.Header.Set(k, v)
	}
	var opts []jetstream.PublishOpt
	if id := headers["event_id"]; id != "" {
		opts = append(opts, jetstream.WithMsgID(id))
	}
	if _, err := c.b.js.PublishMsg(ctx, msg, opts...); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}
	return nil
}

func (c *natsChannel) Close() error {
	return nil
}
