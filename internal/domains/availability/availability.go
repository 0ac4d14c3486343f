package availability

import (
	"math"
	"slices"
	bookingModel "studyhall/internal/domains/booking/model"
	cabinModel "studyhall/internal/domains/cabin/model"
	"studyhall/internal/domains/reconciler"
	"studyhall/shared"
	"time"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

type Entry struct {
	LogicalID    string `json:"logical_id"`
	PhysicalID   string `json:"physical_id"`
	CabinName    string `json:"cabin_name"`
	Status       Status `json:"status"`
	BookingCount int    `json:"booking_count"`
}

type Summary struct {
	Total         int     `json:"total"`
	Available     int     `json:"available"`
	Occupied      int     `json:"occupied"`
	Maintenance   int     `json:"maintenance"`
	Unmapped      int     `json:"unmapped"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// UnmappedCabin is a physical cabin that no logical cabin claims.
type UnmappedCabin struct {
	PhysicalID string `json:"physical_id"`
	CabinName  string `json:"cabin_name"`
}

// Derivation holds one entry per mapped logical cabin and the physical cabins
// that no logical cabin claims.
type Derivation struct {
	Entries  map[string]Entry `json:"entries"`
	Unmapped []UnmappedCabin  `json:"unmapped"`
	Summary  Summary          `json:"summary"`
}

// Occupies reports whether booking holds its cabin as of today. Bookings that
// start after today still count.
func Occupies(booking bookingModel.Booking, today time.Time) bool {
	if !slices.Contains(bookingModel.OccupyingStatuses(), booking.Status) {
		return false
	}

	if booking.PaymentStatus == bookingModel.PaymentFailed {
		return false
	}

	if booking.PaymentStatus != bookingModel.PaymentPaid && booking.Status != bookingModel.StatusPending {
		return false
	}

	today = shared.DateOnly(today)

	return !shared.DateOnly(booking.StartDate).Before(today) || !shared.DateOnly(booking.EndDate).Before(today)
}

// Derive classifies every physical cabin and keys the result by logical id.
// Maintenance wins over bookings.
func Derive(cabins []cabinModel.Cabin, bookings []bookingModel.Booking, mapping reconciler.Mapping, today time.Time) Derivation {
	counts := make(map[string]int, len(cabins))

	for _, booking := range bookings {
		if Occupies(booking, today) {
			counts[booking.CabinID]++
		}
	}

	inverse := mapping.Inverse()

	derivation := Derivation{
		Entries:  make(map[string]Entry, len(mapping)),
		Unmapped: []UnmappedCabin{},
	}

	for _, cabin := range cabins {
		logicalIDs, ok := inverse[cabin.ID]
		if !ok {
			derivation.Unmapped = append(derivation.Unmapped, UnmappedCabin{PhysicalID: cabin.ID, CabinName: cabin.CabinName})

			continue
		}

		status := StatusAvailable

		switch {
		case cabin.InMaintenance():
			status = StatusMaintenance
		case counts[cabin.ID] > 0:
			status = StatusOccupied
		}

		for _, logicalID := range logicalIDs {
			derivation.Entries[logicalID] = Entry{
				LogicalID:    logicalID,
				PhysicalID:   cabin.ID,
				CabinName:    cabin.CabinName,
				Status:       status,
				BookingCount: counts[cabin.ID],
			}
		}
	}

	derivation.Summary = summarize(derivation)

	return derivation
}

func summarize(derivation Derivation) Summary {
	summary := Summary{
		Total:    len(derivation.Entries),
		Unmapped: len(derivation.Unmapped),
	}

	for _, entry := range derivation.Entries {
		switch entry.Status {
		case StatusAvailable:
			summary.Available++
		case StatusOccupied:
			summary.Occupied++
		case StatusMaintenance:
			summary.Maintenance++
		}
	}

	bookable := summary.Total - summary.Maintenance
	if bookable > 0 {
		summary.OccupancyRate = math.Round(float64(summary.Occupied)/float64(bookable)*10000) / 100
	}

	return summary
}
