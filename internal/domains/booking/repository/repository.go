package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"studyhall/infras/otel"
	"studyhall/infras/postgres"
	"studyhall/internal/domains/booking/model"
	"studyhall/shared/constant"
	gDto "studyhall/shared/dto"
	gRepo "studyhall/shared/repository"

	sq "github.com/Masterminds/squirrel"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// ListOccupying returns bookings of the given cabins whose status can hold a cabin
	// and whose payment did not fail.
	ListOccupying(ctx context.Context, cabinIDs []string) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) ListOccupying(ctx context.Context, cabinIDs []string) (bookings []model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListOccupying")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if len(cabinIDs) == 0 {
		return []model.Booking{}, nil
	}

	scope.SetAttribute("cabin.count", len(cabinIDs))

	builder := repo.SelectBuilder(ctx).
		Where(sq.Eq{model.FieldCabinID: cabinIDs}).
		Where(sq.Eq{model.FieldStatus: model.OccupyingStatuses()}).
		Where(sq.NotEq{model.FieldPaymentStatus: model.PaymentFailed})

	bookings, err = repo.Select(ctx, builder)
	if err != nil {
		return nil, fmt.Errorf("failed to list occupying bookings: %w", err)
	}

	return bookings, nil
}
