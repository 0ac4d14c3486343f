package model

import (
	"regexp"
	"strconv"
	"time"
)

const EntityName = "layout"

var positionSuffix = regexp.MustCompile(`-(\d+)$`)

// LogicalCabin is a cabin as drawn in a venue layout. ID is scoped to the layout.
type LogicalCabin struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MonthlyPrice float64 `json:"monthly_price"`
}

// Position parses the trailing "-<digits>" of the id as a 1-based position.
func (c LogicalCabin) Position() (int, bool) {
	match := positionSuffix.FindStringSubmatch(c.ID)
	if match == nil {
		return 0, false
	}

	position, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	return position, true
}

type Layout struct {
	VenueID      string         `json:"venue_id"`
	Cabins       []LogicalCabin `json:"cabins"`
	CanvasWidth  float64        `json:"canvas_width"`
	CanvasHeight float64        `json:"canvas_height"`
	UpdatedAt    time.Time      `json:"updated_at"`
	UpdatedBy    string         `json:"updated_by,omitempty"`
}

func (l Layout) ObjectName() string {
	return l.VenueID + ".json"
}
