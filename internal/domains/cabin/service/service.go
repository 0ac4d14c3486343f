package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Cabin=MockCabinService

import (
	"context"
	"fmt"
	"studyhall/config"
	"studyhall/infras/otel"
	"studyhall/internal/domains/cabin/model"
	"studyhall/internal/domains/cabin/model/dto"
	"studyhall/internal/domains/cabin/repository"
	"studyhall/shared"
	"studyhall/shared/cache"
	"studyhall/shared/constant"
	"studyhall/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCabin   = "cabin:get"
	cacheVenueCabin = "cabin:venue"
)

type Cabin interface {
	ListByVenue(ctx context.Context, venueID string) (dto.ListCabinsResponse, error)
	Get(ctx context.Context, id string) (dto.CabinResponse, error)
}

type serviceImpl struct {
	repo  repository.Cabin
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Cabin, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Cabin {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) ListByVenue(ctx context.Context, venueID string) (res dto.ListCabinsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByVenue")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheVenueCabin, venueID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for venue cabins")

		return res, nil
	}

	cabins, err := s.repo.ListByVenue(ctx, venueID)
	if err != nil {
		log.Error().Err(err).Str("venue_id", venueID).Msg("failed to list cabins")

		return res, fmt.Errorf("failed to list cabins: %w", err)
	}

	res.FromModels(venueID, cabins)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save venue cabins to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CabinResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetCabin, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	cabin, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get cabin")

		return res, fmt.Errorf("failed to get cabin: %w", err)
	}

	if cabin.ID == constant.Empty {
		return res, failure.NotFound("cabin not found") // nolint:wrapcheck
	}

	res.FromModel(cabin)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cabin to cache")
		}
	}()

	return res, nil
}
