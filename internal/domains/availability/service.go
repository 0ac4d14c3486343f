package availability

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"studyhall/infras/metrics"
	"studyhall/infras/otel"
	bookingRepo "studyhall/internal/domains/booking/repository"
	cabinRepo "studyhall/internal/domains/cabin/repository"
	"studyhall/internal/domains/reconciler"
	"studyhall/shared"
	"studyhall/shared/constant"
	"studyhall/shared/logger"
	"time"
)

type Service interface {
	// Derive fetches the venue's cabins and occupying bookings and classifies them.
	Derive(ctx context.Context, venueID string, mapping reconciler.Mapping) (Derivation, error)
}

type serviceImpl struct {
	cabins   cabinRepo.Cabin
	bookings bookingRepo.Booking
	otel     otel.Otel
	metrics  *metrics.Metrics
}

func New(cabins cabinRepo.Cabin, bookings bookingRepo.Booking, otel otel.Otel, metrics *metrics.Metrics) Service {
	return &serviceImpl{
		cabins:   cabins,
		bookings: bookings,
		otel:     otel,
		metrics:  metrics,
	}
}

func (s *serviceImpl) Derive(ctx context.Context, venueID string, mapping reconciler.Mapping) (res Derivation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Derive")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelVenueAttributeKey, venueID)

	started := time.Now()
	defer func() {
		s.metrics.StageDuration.WithLabelValues(metrics.StageDerive).Observe(time.Since(started).Seconds())
	}()

	log := logger.ForVenue(venueID)

	cabins, err := s.cabins.ListByVenue(ctx, venueID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list cabins for availability")

		return res, fmt.Errorf("failed to list cabins: %w", err)
	}

	ids := make([]string, len(cabins))
	for i, cabin := range cabins {
		ids[i] = cabin.ID
	}

	bookings, err := s.bookings.ListOccupying(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings for availability")

		return res, fmt.Errorf("failed to list bookings: %w", err)
	}

	res = Derive(cabins, bookings, mapping, shared.Today())

	for _, cabin := range res.Unmapped {
		log.Warn().
			Str("physical_id", cabin.PhysicalID).
			Str("cabin_name", cabin.CabinName).
			Msg("cabin has no layout entry, left out of availability")
	}

	scope.SetAttributes(map[string]any{
		"entries":  len(res.Entries),
		"bookings": len(bookings),
	})

	return res, nil
}
