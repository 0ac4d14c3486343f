package shared_test

import (
	"context"
	"errors"
	"strings"
	"studyhall/shared"
	cacheMocks "studyhall/shared/cache/mocks"
	"studyhall/shared/constant"
	"studyhall/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name         string
		total, limit int
		expected     int
	}{
		{name: "no rows still has one page", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 25, limit: 0, expected: 1},
		{name: "negative limit", total: 25, limit: -3, expected: 1},
		{name: "exact division", total: 30, limit: 10, expected: 3},
		{name: "remainder rounds up", total: 31, limit: 10, expected: 4},
		{name: "limit above total", total: 4, limit: 50, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type patch struct {
		Status   string  `db:"status"`
		Payment  string  `db:"payment_status"`
		Note     *string `db:"note"`
		Seats    *int    `db:"seats"`
		Internal string  `db:"-"`
		Untagged string
	}

	zero := 0

	tests := []struct {
		name     string
		data     patch
		expected map[string]any
	}{
		{
			name:     "only non-zero tagged fields are kept",
			data:     patch{Status: "cancelled", Internal: "x", Untagged: "y"},
			expected: map[string]any{"status": "cancelled"},
		},
		{
			name:     "pointer to zero value is still a change",
			data:     patch{Payment: "paid", Seats: &zero},
			expected: map[string]any{"payment_status": "paid", "seats": &zero},
		},
		{
			name:     "empty patch carries only the stamp",
			data:     patch{},
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, "front-desk")

			assert.Equal(t, "front-desk", result[constant.FieldModifiedBy])
			require.IsType(t, time.Time{}, result[constant.FieldModifiedAt])

			delete(result, constant.FieldModifiedBy)
			delete(result, constant.FieldModifiedAt)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("550e8400-e29b-41d4-a716-446655440000", "id", "bookings")

	require.Len(t, group.Filters, 1)
	assert.Equal(t, dto.Filter{
		Field:    "id",
		Value:    "550e8400-e29b-41d4-a716-446655440000",
		Operator: dto.FilterOperatorEq,
		Table:    "bookings",
	}, group.Filters[0])

	where, args := group.GetWhereClause()
	assert.Contains(t, where, "bookings.id")
	assert.Len(t, args, 1)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "tracker:snapshot", shared.BuildCacheKey("tracker", "snapshot"))
	assert.Equal(t, "booking:get:abc", shared.BuildCacheKey("booking:get", "abc"))
	assert.Equal(t, "prefix", shared.BuildCacheKey("prefix"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "active", Operator: dto.FilterOperatorEq},
		},
	}

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "booking:gets:"))

	params.Page = 2
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, filter))

	other := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
		},
	}
	params.Page = 1
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, other))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "booking:gets:*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "booking:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "booking:count:*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "booking:count")
}

func TestDateOnly(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	newYork := time.FixedZone("EST", -5*60*60)

	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "utc midnight stays on the same date",
			input:    time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "late evening west of utc keeps its local date",
			input:    time.Date(2026, 10, 17, 23, 30, 0, 0, newYork),
			expected: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "early morning east of utc keeps its local date",
			input:    time.Date(2026, 10, 18, 1, 0, 0, 0, jakarta),
			expected: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(shared.DateOnly(tt.input)))
		})
	}
}

func TestToday(t *testing.T) {
	today := shared.Today()

	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, time.UTC, today.Location())
}
