package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"studyhall/config"
	"studyhall/infras/metrics"
	"studyhall/infras/otel"
	"studyhall/internal/domains/booking/event"
	"studyhall/internal/domains/booking/model"
	"studyhall/internal/domains/booking/model/dto"
	"studyhall/internal/domains/booking/repository"
	cabinModel "studyhall/internal/domains/cabin/model"
	cabinRepo "studyhall/internal/domains/cabin/repository"
	"studyhall/shared"
	"studyhall/shared/cache"
	"studyhall/shared/constant"
	gDto "studyhall/shared/dto"
	"studyhall/shared/failure"
	"studyhall/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	cabinRepo cabinRepo.Cabin
	publisher event.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	metrics   *metrics.Metrics
}

func New(
	repo repository.Booking,
	cabinRepo cabinRepo.Cabin,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	metrics *metrics.Metrics,
) Booking {
	return &serviceImpl{
		repo:      repo,
		cabinRepo: cabinRepo,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		metrics:   metrics,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cabin, err := s.cabinRepo.Get(ctx, shared.FilterByID(req.CabinID, cabinModel.FieldID, cabinModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if cabin exists")

		return res, fmt.Errorf("failed to check if cabin exists: %w", err)
	}

	if cabin.ID == constant.Empty {
		return res, failure.BadRequestFromString("cabin does not exist") // nolint:wrapcheck
	}

	booking, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if booking.EndDate.Before(booking.StartDate) {
		return res, failure.BadRequestFromString("end_date must not be before start_date") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publish(ctx, cabin.VenueID, booking, event.OperationInsert)
	s.invalidate(ctx, constant.Empty)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.EmptyUpdateError
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = validateRange(current, req); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.notify(ctx, current, event.OperationUpdate)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.notify(ctx, current, event.OperationDelete)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// notify resolves the venue of the booking's cabin before publishing.
func (s *serviceImpl) notify(ctx context.Context, booking model.Booking, operation string) {
	cabin, err := s.cabinRepo.Get(ctx, shared.FilterByID(booking.CabinID, cabinModel.FieldID, cabinModel.TableName))
	if err != nil || cabin.ID == constant.Empty {
		log.Error().Err(err).Str("cabin_id", booking.CabinID).Msg("failed to resolve venue for booking change")

		return
	}

	s.publish(ctx, cabin.VenueID, booking, operation)
}

// publish reports failures without failing the write, the ledger is already committed.
func (s *serviceImpl) publish(ctx context.Context, venueID string, booking model.Booking, operation string) {
	change := event.ChangeEvent{
		VenueID:    venueID,
		CabinID:    booking.CabinID,
		BookingID:  booking.ID,
		Operation:  operation,
		OccurredAt: timezone.Now(),
	}

	if err := s.publisher.Publish(ctx, change); err != nil {
		log.Error().Err(err).Str("venue_id", venueID).Str("booking_id", booking.ID).Msg("failed to publish booking change")

		return
	}

	s.metrics.ChangeEvents.WithLabelValues(metrics.DirectionOut, operation).Inc()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func validateRange(current model.Booking, req dto.UpdateBookingRequest) error {
	start, end := current.StartDate, current.EndDate

	var err error

	if req.StartDate != constant.Empty {
		if start, err = timezone.ParseDate(req.StartDate); err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	if req.EndDate != constant.Empty {
		if end, err = timezone.ParseDate(req.EndDate); err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	if shared.DateOnly(end).Before(shared.DateOnly(start)) {
		return failure.BadRequestFromString("end_date must not be before start_date") // nolint:wrapcheck
	}

	return nil
}
