package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"studyhall/config"
	"studyhall/infras/otel/mocks"
	cabinMocks "studyhall/internal/domains/cabin/mocks"
	"studyhall/internal/domains/cabin/model"
	"studyhall/internal/domains/cabin/model/dto"
	"studyhall/internal/domains/cabin/service"
	cacheMocks "studyhall/shared/cache/mocks"
	"studyhall/shared/failure"
)

const venueID = "7d1f0c7e-3d59-4b1e-9a53-0c6f5f0f7a11"

func setup(t *testing.T) (service.Cabin, *cabinMocks.MockCabin, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := cabinMocks.NewMockCabin(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestCabinService_ListByVenue(t *testing.T) {
	cabins := []model.Cabin{
		{ID: "uuid-1", VenueID: venueID, CabinName: "A1", CabinNumber: 1, Status: model.StatusActive},
		{ID: "uuid-2", VenueID: venueID, CabinName: "A2", CabinNumber: 2, Status: model.StatusMaintenance},
	}

	tests := []struct {
		name      string
		setupMock func(repo *cabinMocks.MockCabin, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantTotal int
	}{
		{
			name: "cache miss loads from repository",
			setupMock: func(repo *cabinMocks.MockCabin, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "cabin:venue:"+venueID, gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().ListByVenue(gomock.Any(), venueID).Return(cabins, nil)
				cache.EXPECT().Save(gomock.Any(), "cabin:venue:"+venueID, gomock.Any(), 60).Return(nil).AnyTimes()
			},
			wantTotal: 2,
		},
		{
			name: "cache hit skips repository",
			setupMock: func(_ *cabinMocks.MockCabin, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "cabin:venue:"+venueID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, _ := value.(*dto.ListCabinsResponse)
						res.VenueID = venueID
						res.Total = 5

						return nil
					})
			},
			wantTotal: 5,
		},
		{
			name: "repository error",
			setupMock: func(repo *cabinMocks.MockCabin, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().ListByVenue(gomock.Any(), venueID).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := setup(t)
			tt.setupMock(repo, cache)

			res, err := svc.ListByVenue(context.Background(), venueID)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, venueID, res.VenueID)
			assert.Equal(t, tt.wantTotal, res.Total)
		})
	}
}

func TestCabinService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *cabinMocks.MockCabin, cache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(repo *cabinMocks.MockCabin, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "cabin:get:uuid-1", gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Cabin{ID: "uuid-1", CabinName: "A1"}, nil)
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "not found",
			setupMock: func(repo *cabinMocks.MockCabin, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Cabin{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := setup(t)
			tt.setupMock(repo, cache)

			res, err := svc.Get(context.Background(), "uuid-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "A1", res.CabinName)
		})
	}
}
