package dto

import (
	"studyhall/internal/domains/layout/model"
	"studyhall/shared/constant"
	"studyhall/shared/timezone"
)

type LogicalCabinRequest struct {
	ID           string  `json:"id"            validate:"required,logicalid"`
	Name         string  `json:"name"          validate:"required"`
	X            float64 `json:"x"             validate:"min=0"`
	Y            float64 `json:"y"             validate:"min=0"`
	Width        float64 `json:"width"         validate:"min=0"`
	Height       float64 `json:"height"        validate:"min=0"`
	MonthlyPrice float64 `json:"monthly_price" validate:"min=0"`
}

type SaveLayoutRequest struct {
	Cabins       []LogicalCabinRequest `json:"cabins"        validate:"required,min=1,unique=ID,dive"`
	CanvasWidth  float64               `json:"canvas_width"  validate:"min=0"`
	CanvasHeight float64               `json:"canvas_height" validate:"min=0"`
}

func (r *SaveLayoutRequest) ToModel(venueID, user string) model.Layout {
	cabins := make([]model.LogicalCabin, len(r.Cabins))
	for i, cabin := range r.Cabins {
		cabins[i] = model.LogicalCabin(cabin)
	}

	return model.Layout{
		VenueID:      venueID,
		Cabins:       cabins,
		CanvasWidth:  r.CanvasWidth,
		CanvasHeight: r.CanvasHeight,
		UpdatedAt:    timezone.Now(),
		UpdatedBy:    user,
	}
}

type LogicalCabinResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MonthlyPrice float64 `json:"monthly_price"`
}

type LayoutResponse struct {
	VenueID      string                 `json:"venue_id"`
	Cabins       []LogicalCabinResponse `json:"cabins"`
	CanvasWidth  float64                `json:"canvas_width"`
	CanvasHeight float64                `json:"canvas_height"`
	UpdatedAt    string                 `json:"updated_at"`
	UpdatedBy    string                 `json:"updated_by,omitempty"`
}

func (r *LayoutResponse) FromModel(layout model.Layout) {
	r.VenueID = layout.VenueID
	r.CanvasWidth = layout.CanvasWidth
	r.CanvasHeight = layout.CanvasHeight
	r.UpdatedBy = layout.UpdatedBy

	r.UpdatedAt = constant.Empty
	if !layout.UpdatedAt.IsZero() {
		r.UpdatedAt = layout.UpdatedAt.Format(constant.DateFormat)
	}

	r.Cabins = make([]LogicalCabinResponse, len(layout.Cabins))
	for i, cabin := range layout.Cabins {
		r.Cabins[i] = LogicalCabinResponse(cabin)
	}
}
