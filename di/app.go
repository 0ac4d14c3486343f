package di

import (
	"context"
	"errors"
	"fmt"
	"studyhall/config"
	"studyhall/infras/kafka"
	"studyhall/infras/metrics"
	"studyhall/infras/otel"
	"studyhall/infras/postgres"
	"studyhall/infras/rabbitmq"
	"studyhall/internal/domains/booking/event"
	"studyhall/internal/domains/tracker"
	"studyhall/transport/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// App holds the long-lived components main needs to run and to close.
type App struct {
	HTTP     *http.HTTP
	Notifier event.Notifier
	Tracker  tracker.Tracker
	Otel     otel.Otel
	Kafka    kafka.Client
	RabbitMQ rabbitmq.Client
	DB       *postgres.Connection
}

func provideMetrics(cfg *config.Config) *metrics.Metrics {
	return metrics.New(cfg.App.Name)
}

// Run serves HTTP and keeps the booking change listener alive until ctx is done.
func (app *App) Run(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := app.Notifier.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("booking change listener stopped: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		return app.HTTP.Serve(groupCtx)
	})

	return group.Wait() //nolint:wrapcheck
}

// Close releases watchers first so no refresh outlives the connections it reads from.
func (app *App) Close(ctx context.Context) {
	app.Tracker.Close()

	closers := []struct {
		name  string
		close func() error
	}{
		{"kafka", app.Kafka.Close},
		{"rabbitmq", app.RabbitMQ.Close},
		{"postgres", app.DB.Close},
		{"otel", func() error { return app.Otel.Shutdown(ctx) }},
	}

	for _, closer := range closers {
		if err := closer.close(); err != nil {
			log.Error().Err(err).Str("component", closer.name).Msg("failed to close")
		}
	}

	log.Info().Msg("Application stopped")
}
