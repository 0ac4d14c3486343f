package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studyhall/internal/domains/layout/model"
)

func TestLogicalCabin_Position(t *testing.T) {
	tests := []struct {
		id       string
		want     int
		wantOkay bool
	}{
		{id: "cabin-1", want: 1, wantOkay: true},
		{id: "hall-b-cabin-12", want: 12, wantOkay: true},
		{id: "cabin-007", want: 7, wantOkay: true},
		{id: "cabin", wantOkay: false},
		{id: "cabin-", wantOkay: false},
		{id: "cabin-1a", wantOkay: false},
		{id: "12", wantOkay: false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := model.LogicalCabin{ID: tt.id}.Position()

			assert.Equal(t, tt.wantOkay, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayout_ObjectName(t *testing.T) {
	assert.Equal(t, "venue-1.json", model.Layout{VenueID: "venue-1"}.ObjectName())
}
