package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"time"
)

const (
	OperationInsert = "insert"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// ChangeEvent announces a committed write to the booking ledger of a venue.
type ChangeEvent struct {
	VenueID    string    `json:"venue_id"`
	CabinID    string    `json:"cabin_id"`
	BookingID  string    `json:"booking_id"`
	Operation  string    `json:"operation"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Handler func(ctx context.Context, event ChangeEvent)

type Publisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
}

type Transport interface {
	Publisher
	// Listen delivers every event to handler until ctx is done (nil) or the stream breaks (error).
	Listen(ctx context.Context, handler Handler) error
}

type Notifier interface {
	// Subscribe registers onChange for events of one venue. The returned func is idempotent.
	Subscribe(venueID string, onChange func()) (unsubscribe func())
	// Run keeps the transport listener alive, retrying with backoff until ctx is done.
	Run(ctx context.Context) error
}
