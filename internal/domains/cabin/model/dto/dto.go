package dto

import (
	"studyhall/internal/domains/cabin/model"
	gDto "studyhall/shared/dto"
)

type CabinResponse struct {
	ID          string `json:"id"`
	VenueID     string `json:"venue_id"`
	CabinName   string `json:"cabin_name"`
	CabinNumber int    `json:"cabin_number"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *CabinResponse) FromModel(model model.Cabin) {
	r.ID = model.ID
	r.VenueID = model.VenueID
	r.CabinName = model.CabinName
	r.CabinNumber = model.CabinNumber
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type ListCabinsResponse struct {
	VenueID string          `json:"venue_id"`
	Cabins  []CabinResponse `json:"cabins"`
	Total   int             `json:"total"`
}

func (r *ListCabinsResponse) FromModels(venueID string, models []model.Cabin) {
	r.VenueID = venueID
	r.Total = len(models)

	r.Cabins = make([]CabinResponse, len(models))
	for i, mod := range models {
		r.Cabins[i].FromModel(mod)
	}
}
