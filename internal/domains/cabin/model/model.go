package model

import "studyhall/shared/model"

const (
	TableName  = "cabins"
	EntityName = "cabin"

	FieldID          = "id"
	FieldVenueID     = "venue_id"
	FieldCabinName   = "cabin_name"
	FieldCabinNumber = "cabin_number"
	FieldStatus      = "status"
)

const (
	StatusActive      = "active"
	StatusMaintenance = "maintenance"
	StatusInactive    = "inactive"
)

// Cabin is a physical cabin row. CabinNumber is the 1-based position within the venue.
type Cabin struct {
	ID          string `db:"id"`
	VenueID     string `db:"venue_id"`
	CabinName   string `db:"cabin_name"`
	CabinNumber int    `db:"cabin_number"`
	Status      string `db:"status"`
	model.Metadata
}

func (c Cabin) InMaintenance() bool {
	return c.Status == StatusMaintenance
}
