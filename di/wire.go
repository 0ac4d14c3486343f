//go:build wireinject
// +build wireinject

package di

import (
	"studyhall/config"
	"studyhall/infras/kafka"
	"studyhall/infras/otel"
	"studyhall/infras/postgres"
	"studyhall/infras/rabbitmq"
	"studyhall/infras/redis"
	"studyhall/infras/s3"
	"studyhall/internal/domains/availability"
	"studyhall/internal/domains/booking/event"
	"studyhall/internal/domains/reconciler"
	"studyhall/internal/domains/tracker"
	"studyhall/shared/cache"
	"studyhall/transport/http"
	"studyhall/transport/http/middleware"
	"studyhall/transport/http/router"

	"github.com/google/wire"

	bookingRepository "studyhall/internal/domains/booking/repository"
	bookingService "studyhall/internal/domains/booking/service"
	cabinRepository "studyhall/internal/domains/cabin/repository"
	cabinService "studyhall/internal/domains/cabin/service"
	layoutRepository "studyhall/internal/domains/layout/repository"
	layoutService "studyhall/internal/domains/layout/service"
	availabilityHandler "studyhall/internal/handlers/availability"
	bookingHandler "studyhall/internal/handlers/booking"
	cabinHandler "studyhall/internal/handlers/cabin"
	layoutHandler "studyhall/internal/handlers/layout"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	s3.New,
	kafka.New,
	rabbitmq.New,
	provideMetrics,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAccess,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var eventing = wire.NewSet(
	event.NewTransport,
	event.NewNotifier,
	wire.Bind(new(event.Publisher), new(event.Transport)),
)

var cabinDomain = wire.NewSet(
	cabinRepository.New,
	cabinService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var layoutDomain = wire.NewSet(
	layoutRepository.New,
	layoutService.New,
	wire.Bind(new(layoutService.ChangeListener), new(tracker.Tracker)),
)

var availabilityDomain = wire.NewSet(
	reconciler.New,
	availability.New,
	tracker.New,
)

var domains = wire.NewSet(
	cabinDomain,
	bookingDomain,
	layoutDomain,
	availabilityDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	cabinHandler.New,
	bookingHandler.New,
	layoutHandler.New,
	availabilityHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		eventing,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
