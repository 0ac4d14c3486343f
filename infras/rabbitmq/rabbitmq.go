package rabbitmq

//go:generate go run go.uber.org/mock/mockgen -source=./rabbitmq.go -destination=./mocks/rabbitmq_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"studyhall/config"
	"studyhall/shared/constant"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const prefetchCount = 50

var ErrDeliveriesClosed = errors.New("deliveries channel closed")

// Handler processes one delivery body. A returned error rejects the delivery without requeue.
type Handler func(ctx context.Context, body []byte) error

type Client interface {
	// Publish sends a JSON body to a fanout exchange, declaring it first.
	Publish(ctx context.Context, exchange string, value any) error
	// Subscribe binds a private queue to the fanout exchange and blocks until ctx
	// is done (nil) or the connection drops (error).
	Subscribe(ctx context.Context, exchange string, handler Handler) error
	Close() error
}

type rabbitImpl struct {
	url string

	mu   sync.Mutex
	conn *amqp.Connection
}

func New(config *config.Config) Client {
	return &rabbitImpl{url: config.RabbitMQ.URL}
}

func (r *rabbitImpl) connection() (*amqp.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn != nil && !r.conn.IsClosed() {
		return r.conn, nil
	}

	conn, err := amqp.Dial(r.url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial broker: %w", err)
	}

	log.Info().Msg("Connected to RabbitMQ")

	r.conn = conn

	return conn, nil
}

func declareExchange(ch *amqp.Channel, exchange string) error {
	err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return nil
}

func (r *rabbitImpl) Publish(ctx context.Context, exchange string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	conn, err := r.connection()
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := declareExchange(ch, exchange); err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, exchange, "", false, false, amqp.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqp.Transient,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", exchange, err)
	}

	return nil
}

func (r *rabbitImpl) Subscribe(ctx context.Context, exchange string, handler Handler) error {
	conn, err := r.connection()
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		log.Warn().Err(err).Msg("Failed to set RabbitMQ QoS")
	}

	if err := declareExchange(ch, exchange); err != nil {
		return err
	}

	queue, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(queue.Name, "", exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", queue.Name, err)
	}

	deliveries, err := ch.Consume(queue.Name, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume queue %s: %w", queue.Name, err)
	}

	log.Info().Str("exchange", exchange).Str("queue", queue.Name).Msg("Subscribed to RabbitMQ exchange")

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}

				return ErrDeliveriesClosed
			}

			if err := handler(ctx, delivery.Body); err != nil {
				log.Error().Err(err).Str("exchange", exchange).Msg("Failed to handle RabbitMQ delivery")

				_ = delivery.Nack(false, false)

				continue
			}

			_ = delivery.Ack(false)
		}
	}
}

func (r *rabbitImpl) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil || r.conn.IsClosed() {
		return nil
	}

	if err := r.conn.Close(); err != nil {
		return fmt.Errorf("failed to close RabbitMQ connection: %w", err)
	}

	return nil
}
