package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"studyhall/infras/otel"
	"studyhall/infras/postgres"
	"studyhall/internal/domains/cabin/model"
	"studyhall/shared/constant"
	gDto "studyhall/shared/dto"
	"studyhall/shared/logger"
	gRepo "studyhall/shared/repository"

	sq "github.com/Masterminds/squirrel"
)

const resolveLogicalCabinQuery = "SELECT resolve_logical_cabin($1, $2)"

type Cabin interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Cabin, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	// ListByVenue returns the venue's cabins ordered by cabin_number.
	ListByVenue(ctx context.Context, venueID string) ([]model.Cabin, error)
	// Resolve asks the database which cabin a layout id refers to. Empty means no match.
	Resolve(ctx context.Context, venueID, logicalID string) (string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Cabin]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Cabin {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Cabin](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) ListByVenue(ctx context.Context, venueID string) (cabins []model.Cabin, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".cabin.ListByVenue")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelVenueAttributeKey, venueID)

	builder := repo.SelectBuilder(ctx).
		Where(sq.Eq{model.TableName + "." + model.FieldVenueID: venueID}).
		OrderBy(model.TableName + "." + model.FieldCabinNumber + " ASC")

	cabins, err = repo.Select(ctx, builder)
	if err != nil {
		return nil, fmt.Errorf("failed to list cabins of venue %s: %w", venueID, err)
	}

	return cabins, nil
}

func (repo *repositoryImpl) Resolve(ctx context.Context, venueID, logicalID string) (physicalID string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".cabin.Resolve")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		constant.OtelVenueAttributeKey: venueID,
		constant.OtelQueryAttributeKey: resolveLogicalCabinQuery,
	})

	var resolved sql.NullString

	err = repo.db.Read.GetContext(ctx, &resolved, resolveLogicalCabinQuery, venueID, logicalID)
	if err != nil {
		logger.ErrorWithStack(err)

		return constant.Empty, fmt.Errorf("failed to resolve logical cabin %s: %w", logicalID, err)
	}

	if !resolved.Valid {
		return constant.Empty, nil
	}

	return resolved.String, nil
}
