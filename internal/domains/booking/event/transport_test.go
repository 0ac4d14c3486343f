package event_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"studyhall/config"
	"studyhall/infras/kafka"
	kafkaMocks "studyhall/infras/kafka/mocks"
	"studyhall/infras/rabbitmq"
	rabbitMocks "studyhall/infras/rabbitmq/mocks"
	"studyhall/internal/domains/booking/event"
	"studyhall/shared/constant"
)

func changeEvent() event.ChangeEvent {
	return event.ChangeEvent{
		VenueID:    "venue-1",
		CabinID:    "uuid-1",
		BookingID:  "booking-1",
		Operation:  event.OperationInsert,
		OccurredAt: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestKafkaTransport_PublishKeysByVenue(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	client.EXPECT().
		SendMessages(gomock.Any(), "booking.changes", kafka.Message{Key: "venue-1", Value: changeEvent()}).
		Return(nil)

	transport := event.NewKafkaTransport(client, "booking.changes", "studyhall")

	require.NoError(t, transport.Publish(context.Background(), changeEvent()))
}

func TestKafkaTransport_ListenDecodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	body, err := json.Marshal(changeEvent())
	require.NoError(t, err)

	client.EXPECT().
		Consume(gomock.Any(), gomock.Any(), "booking.changes", gomock.Any()).
		DoAndReturn(func(ctx context.Context, group, _ string, handler kafka.Handler) error {
			assert.Contains(t, group, "studyhall-")

			require.NoError(t, handler(ctx, kafkaGo.Message{Key: []byte("venue-1"), Value: body}))
			assert.Error(t, handler(ctx, kafkaGo.Message{Value: []byte(`{"operation":"insert"}`)}))
			assert.Error(t, handler(ctx, kafkaGo.Message{Value: []byte(`not json`)}))

			return nil
		})

	var received []event.ChangeEvent

	transport := event.NewKafkaTransport(client, "booking.changes", "studyhall")
	err = transport.Listen(context.Background(), func(_ context.Context, ev event.ChangeEvent) {
		received = append(received, ev)
	})

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, changeEvent(), received[0])
}

func TestRabbitTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := rabbitMocks.NewMockClient(ctrl)

	body, err := json.Marshal(changeEvent())
	require.NoError(t, err)

	client.EXPECT().Publish(gomock.Any(), "booking.changes", changeEvent()).Return(nil)
	client.EXPECT().
		Subscribe(gomock.Any(), "booking.changes", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, handler rabbitmq.Handler) error {
			require.NoError(t, handler(ctx, body))
			assert.Error(t, handler(ctx, []byte(`{}`)))

			return nil
		})

	transport := event.NewRabbitTransport(client, "booking.changes")

	require.NoError(t, transport.Publish(context.Background(), changeEvent()))

	calls := 0
	require.NoError(t, transport.Listen(context.Background(), func(context.Context, event.ChangeEvent) { calls++ }))
	assert.Equal(t, 1, calls)
}

func TestNewTransport_SelectsDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	kafkaClient := kafkaMocks.NewMockClient(ctrl)
	rabbitClient := rabbitMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Events.Topic = "booking.changes"

	cfg.Events.Driver = constant.EventsDriverRabbitMQ
	rabbitClient.EXPECT().Publish(gomock.Any(), "booking.changes", gomock.Any()).Return(nil)
	require.NoError(t, event.NewTransport(cfg, kafkaClient, rabbitClient).Publish(context.Background(), changeEvent()))

	cfg.Events.Driver = constant.EventsDriverKafka
	kafkaClient.EXPECT().SendMessages(gomock.Any(), "booking.changes", gomock.Any()).Return(nil)
	require.NoError(t, event.NewTransport(cfg, kafkaClient, rabbitClient).Publish(context.Background(), changeEvent()))

	cfg.Events.Driver = constant.EventsDriverLocal
	require.NoError(t, event.NewTransport(cfg, kafkaClient, rabbitClient).Publish(context.Background(), changeEvent()))
}
