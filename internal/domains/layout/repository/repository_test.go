package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"studyhall/config"
	otelMocks "studyhall/infras/otel/mocks"
	"studyhall/infras/s3"
	s3Mocks "studyhall/infras/s3/mocks"
	"studyhall/internal/domains/layout/model"
	"studyhall/internal/domains/layout/repository"
	"studyhall/shared/constant"
	"studyhall/shared/failure"
)

func setup(t *testing.T) (repository.Layout, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	storage := s3Mocks.NewMockS3(ctrl)

	cfg := &config.Config{}
	cfg.External.S3.LayoutPrefix = "layouts"

	return repository.New(storage, cfg, otelMocks.NewOtel()), storage
}

func TestLayoutRepository_Get(t *testing.T) {
	t.Run("decodes the venue document", func(t *testing.T) {
		repo, storage := setup(t)

		body, err := json.Marshal(model.Layout{
			VenueID: "someone-else",
			Cabins:  []model.LogicalCabin{{ID: "cabin-1", Name: "A1"}},
		})
		require.NoError(t, err)

		storage.EXPECT().GetObject(gomock.Any(), "layouts", "venue-1.json").Return(body, nil)

		layout, err := repo.Get(context.Background(), "venue-1")

		require.NoError(t, err)
		assert.Equal(t, "venue-1", layout.VenueID)
		assert.Equal(t, "A1", layout.Cabins[0].Name)
	})

	t.Run("missing document is not found", func(t *testing.T) {
		repo, storage := setup(t)

		storage.EXPECT().GetObject(gomock.Any(), "layouts", "venue-1.json").Return(nil, s3.ErrObjectNotFound)

		_, err := repo.Get(context.Background(), "venue-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("storage error", func(t *testing.T) {
		repo, storage := setup(t)

		storage.EXPECT().GetObject(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := repo.Get(context.Background(), "venue-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("corrupt document", func(t *testing.T) {
		repo, storage := setup(t)

		storage.EXPECT().GetObject(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("{"), nil)

		_, err := repo.Get(context.Background(), "venue-1")

		require.Error(t, err)
	})
}

func TestLayoutRepository_Save(t *testing.T) {
	repo, storage := setup(t)

	storage.EXPECT().
		PutObject(gomock.Any(), "layouts", "venue-1.json", constant.ContentTypeJSON, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _ string, data []byte) error {
			var stored model.Layout
			require.NoError(t, json.Unmarshal(data, &stored))
			assert.Len(t, stored.Cabins, 2)

			return nil
		})

	err := repo.Save(context.Background(), model.Layout{
		VenueID: "venue-1",
		Cabins:  []model.LogicalCabin{{ID: "cabin-1", Name: "A1"}, {ID: "cabin-2", Name: "A2"}},
	})

	require.NoError(t, err)
}
