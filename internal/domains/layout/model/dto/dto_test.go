package dto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhall/internal/domains/layout/model/dto"
	"studyhall/shared/validator"
)

func TestSaveLayoutRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid",
			body: `{"cabins":[{"id":"cabin-1","name":"A1","width":2,"height":2},{"id":"cabin-2","name":"A2"}],"canvas_width":800}`,
		},
		{
			name:    "duplicate ids",
			body:    `{"cabins":[{"id":"cabin-1","name":"A1"},{"id":"cabin-1","name":"A2"}]}`,
			wantErr: true,
		},
		{
			name:    "missing name",
			body:    `{"cabins":[{"id":"cabin-1"}]}`,
			wantErr: true,
		},
		{
			name:    "negative geometry",
			body:    `{"cabins":[{"id":"cabin-1","name":"A1","x":-4}]}`,
			wantErr: true,
		},
		{
			name:    "id with spaces",
			body:    `{"cabins":[{"id":"cabin 1","name":"A1"}]}`,
			wantErr: true,
		},
		{
			name:    "no cabins",
			body:    `{"cabins":[]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.SaveLayoutRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestSaveLayoutRequest_ToModel(t *testing.T) {
	req := dto.SaveLayoutRequest{
		Cabins:      []dto.LogicalCabinRequest{{ID: "cabin-1", Name: "A1", MonthlyPrice: 1500}},
		CanvasWidth: 640,
	}

	layout := req.ToModel("venue-1", "merchant")

	assert.Equal(t, "venue-1", layout.VenueID)
	assert.Equal(t, "merchant", layout.UpdatedBy)
	assert.False(t, layout.UpdatedAt.IsZero())
	require.Len(t, layout.Cabins, 1)
	assert.InDelta(t, 1500.0, layout.Cabins[0].MonthlyPrice, 0)

	var res dto.LayoutResponse
	res.FromModel(layout)

	assert.Equal(t, "A1", res.Cabins[0].Name)
	assert.NotEmpty(t, res.UpdatedAt)
}
