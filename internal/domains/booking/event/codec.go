package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errMissingVenue = errors.New("change event has no venue id")

func decode(body []byte) (ChangeEvent, error) {
	var event ChangeEvent

	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("failed to decode change event: %w", err)
	}

	if event.VenueID == "" {
		return event, errMissingVenue
	}

	return event, nil
}
