package tracker

import (
	"studyhall/internal/domains/reconciler"
	"time"
)

// MappingView is the reconciliation part of a snapshot, for operators chasing
// cabins that did not line up.
type MappingView struct {
	VenueID          string             `json:"venue_id"`
	Mapping          reconciler.Mapping `json:"mapping"`
	UnmappedLogical  []CabinRef         `json:"unmapped_logical"`
	UnmappedPhysical []CabinRef         `json:"unmapped_physical"`
	Known            bool               `json:"known"`
	MappedAt         time.Time          `json:"mapped_at,omitzero"`
}

func (s Snapshot) MappingView() MappingView {
	return MappingView{
		VenueID:          s.VenueID,
		Mapping:          s.Mapping,
		UnmappedLogical:  s.UnmappedLogical,
		UnmappedPhysical: s.UnmappedPhysical,
		Known:            s.HasMapping(),
		MappedAt:         s.MappedAt,
	}
}
