package event

import (
	"context"
	"errors"
	"fmt"
	"studyhall/config"
	"studyhall/infras/kafka"
	"studyhall/infras/rabbitmq"
	"studyhall/shared/constant"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const localBufferSize = 256

var ErrLocalBufferFull = errors.New("local change buffer is full")

// NewTransport picks the broker named by EVENTS_DRIVER. Unknown drivers fall back to in-process delivery.
func NewTransport(cfg *config.Config, kafkaClient kafka.Client, rabbitClient rabbitmq.Client) Transport {
	switch cfg.Events.Driver {
	case constant.EventsDriverKafka:
		return NewKafkaTransport(kafkaClient, cfg.Events.Topic, cfg.Kafka.ConsumerGroup)
	case constant.EventsDriverRabbitMQ:
		return NewRabbitTransport(rabbitClient, cfg.Events.Topic)
	default:
		log.Warn().Str("driver", cfg.Events.Driver).Msg("Booking changes delivered in-process only")

		return NewLocalTransport()
	}
}

type kafkaTransport struct {
	client kafka.Client
	topic  string
	group  string
}

// NewKafkaTransport consumes with a group unique to this instance so every instance sees every event.
func NewKafkaTransport(client kafka.Client, topic, groupPrefix string) Transport {
	if groupPrefix == "" {
		groupPrefix = "studyhall"
	}

	return &kafkaTransport{
		client: client,
		topic:  topic,
		group:  groupPrefix + "-" + uuid.NewString(),
	}
}

func (t *kafkaTransport) Publish(ctx context.Context, event ChangeEvent) error {
	err := t.client.SendMessages(ctx, t.topic, kafka.Message{Key: event.VenueID, Value: event})
	if err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}

	return nil
}

func (t *kafkaTransport) Listen(ctx context.Context, handler Handler) error {
	return t.client.Consume(ctx, t.group, t.topic, func(ctx context.Context, message kafkaGo.Message) error { //nolint:wrapcheck
		event, err := kafka.Decode[ChangeEvent](message)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if event.VenueID == "" {
			return errMissingVenue
		}

		handler(ctx, event)

		return nil
	})
}

type rabbitTransport struct {
	client   rabbitmq.Client
	exchange string
}

func NewRabbitTransport(client rabbitmq.Client, exchange string) Transport {
	return &rabbitTransport{
		client:   client,
		exchange: exchange,
	}
}

func (t *rabbitTransport) Publish(ctx context.Context, event ChangeEvent) error {
	if err := t.client.Publish(ctx, t.exchange, event); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}

	return nil
}

func (t *rabbitTransport) Listen(ctx context.Context, handler Handler) error {
	return t.client.Subscribe(ctx, t.exchange, func(ctx context.Context, body []byte) error { //nolint:wrapcheck
		event, err := decode(body)
		if err != nil {
			return err
		}

		handler(ctx, event)

		return nil
	})
}

type localTransport struct {
	events chan ChangeEvent
}

// NewLocalTransport delivers events within the process. Publish never blocks.
func NewLocalTransport() Transport {
	return &localTransport{events: make(chan ChangeEvent, localBufferSize)}
}

func (t *localTransport) Publish(_ context.Context, event ChangeEvent) error {
	select {
	case t.events <- event:
		return nil
	default:
		return ErrLocalBufferFull
	}
}

func (t *localTransport) Listen(ctx context.Context, handler Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-t.events:
			handler(ctx, event)
		}
	}
}
