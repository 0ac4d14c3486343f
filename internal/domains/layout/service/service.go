package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Layout=MockLayoutService

import (
	"context"
	"fmt"
	"studyhall/config"
	"studyhall/infras/otel"
	"studyhall/internal/domains/layout/model/dto"
	"studyhall/internal/domains/layout/repository"
	"studyhall/shared"
	"studyhall/shared/cache"
	"studyhall/shared/constant"

	"github.com/rs/zerolog/log"
)

const cacheGetLayout = "layout:get"

// ChangeListener is told when a venue's layout document was replaced.
type ChangeListener interface {
	LayoutChanged(ctx context.Context, venueID string)
}

type Layout interface {
	Get(ctx context.Context, venueID string) (dto.LayoutResponse, error)
	Save(ctx context.Context, venueID string, req dto.SaveLayoutRequest) (dto.LayoutResponse, error)
}

type serviceImpl struct {
	repo     repository.Layout
	listener ChangeListener
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Layout, listener ChangeListener, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Layout {
	return &serviceImpl{
		repo:     repo,
		listener: listener,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, venueID string) (res dto.LayoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".layout.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetLayout, venueID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	layout, err := s.repo.Get(ctx, venueID)
	if err != nil {
		return res, fmt.Errorf("failed to get layout: %w", err)
	}

	res.FromModel(layout)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save layout to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Save(ctx context.Context, venueID string, req dto.SaveLayoutRequest) (res dto.LayoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".layout.Save")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	layout := req.ToModel(venueID, user)

	if err = s.repo.Save(ctx, layout); err != nil {
		log.Error().Err(err).Str("venue_id", venueID).Msg("failed to save layout")

		return res, fmt.Errorf("failed to save layout: %w", err)
	}

	if err = s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetLayout, venueID)); err != nil {
		log.Error().Err(err).Msg("failed to delete layout from cache")
	}

	s.listener.LayoutChanged(ctx, venueID)

	res.FromModel(layout)

	return res, nil
}
