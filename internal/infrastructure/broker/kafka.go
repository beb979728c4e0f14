package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/stock-ledger/internal/application/outbox"
)

var _ outbox.Broker = (*KafkaBroker)(nil)

// KafkaBroker publica todos los eventos en un único topic; la routing key va como Key
// del mensaje (mismo tipo de evento, misma partición) y como header.
type KafkaBroker struct {
	brokers []string
	dialer  *kafka.Dialer
	writer  *kafka.Writer
}

// NewKafka crea el writer. No abre conexión hasta el primer Connect.
func NewKafka(brokers []string, topic string) *KafkaBroker {
	return &KafkaBroker{
		brokers: brokers,
		dialer:  &kafka.Dialer{Timeout: 5 * time.Second},
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			WriteTimeout:           10 * time.Second,
		},
	}
}

// Connect comprueba que algún broker del cluster responde a una petición de metadatos.
// Si ninguno responde devuelve error y el worker aborta el lote sin tocar filas.
// El writer maneja su propio pool de conexiones; el canal solo lo envuelve.
func (b *KafkaBroker) Connect(ctx context.Context) (outbox.Channel, error) {
	if len(b.brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	var errs []error
	for _, addr := range b.brokers {
		if err := b.ping(ctx, addr); err != nil {
			errs = append(errs, err)
			continue
		}
		return &kafkaChannel{writer: b.writer}, nil
	}
	return nil, fmt.Errorf("kafka unreachable: %w", errors.Join(errs...))
}

func (b *KafkaBroker) ping(ctx context.Context, addr string) error {
	conn, err := b.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()
	if _, err := conn.Brokers(); err != nil {
		return fmt.Errorf("metadata from %s: %w", addr, err)
	}
	return nil
}

// Close cierra el writer.
func (b *KafkaBroker) Close() error {
	return b.writer.Close()
}

type kafkaChannel struct {
	writer *kafka.Writer
}

func (c *kafkaChannel) Publish(ctx context.Context, routingKey string, body []byte, headers map[string]string) error {
	msg := kafka.Message{
		Key:     []byte(routingKey),
		Value:   body,
		Headers: make([]kafka.Header, 0, len(headers)+1),
	}
	msg.Headers = append(msg.Headers, kafka.Header{Key: "routing_key", Value: []byte(routingKey)})
	for k, v := range headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	if err := c.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s to %s: %w", routingKey, c.writer.Topic, err)
	}
	return nil
}

func (c *kafkaChannel) Close() error {
	return nil
}
