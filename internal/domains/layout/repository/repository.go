package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"studyhall/config"
	"studyhall/infras/otel"
	"studyhall/infras/s3"
	"studyhall/internal/domains/layout/model"
	"studyhall/shared/constant"
	"studyhall/shared/failure"

	"github.com/rs/zerolog/log"
)

// Layout stores one JSON document per venue in object storage.
type Layout interface {
	Get(ctx context.Context, venueID string) (model.Layout, error)
	Save(ctx context.Context, layout model.Layout) error
}

type repositoryImpl struct {
	storage s3.S3
	prefix  string
	otel    otel.Otel
}

func New(storage s3.S3, cfg *config.Config, otel otel.Otel) Layout {
	return &repositoryImpl{
		storage: storage,
		prefix:  cfg.External.S3.LayoutPrefix,
		otel:    otel,
	}
}

func (repo *repositoryImpl) Get(ctx context.Context, venueID string) (layout model.Layout, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".layout.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelVenueAttributeKey, venueID)

	data, err := repo.storage.GetObject(ctx, repo.prefix, model.Layout{VenueID: venueID}.ObjectName())
	if err != nil {
		if errors.Is(err, s3.ErrObjectNotFound) {
			return layout, failure.NotFound("layout not found") // nolint:wrapcheck
		}

		return layout, fmt.Errorf("failed to read layout of venue %s: %w", venueID, err)
	}

	if err = json.Unmarshal(data, &layout); err != nil {
		log.Error().Err(err).Str("venue_id", venueID).Msg("layout document is not valid json")

		return layout, fmt.Errorf("failed to decode layout of venue %s: %w", venueID, err)
	}

	// the object key is authoritative
	layout.VenueID = venueID

	return layout, nil
}

func (repo *repositoryImpl) Save(ctx context.Context, layout model.Layout) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".layout.Save")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelVenueAttributeKey, layout.VenueID)

	data, err := json.Marshal(layout)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}

	if err = repo.storage.PutObject(ctx, repo.prefix, layout.ObjectName(), constant.ContentTypeJSON, data); err != nil {
		return fmt.Errorf("failed to store layout of venue %s: %w", layout.VenueID, err)
	}

	return nil
}
