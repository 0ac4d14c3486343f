package event

import (
	"context"
	"errors"
	"studyhall/infras/metrics"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

const (
	defaultRetryInitial = 500 * time.Millisecond
	defaultRetryMax     = 30 * time.Second
	// a listener that survived this long is considered healthy again
	healthyListenPeriod = time.Minute
)

var errListenerStopped = errors.New("change listener stopped")

type NotifierOption func(*notifierImpl)

// WithRetryInterval bounds the exponential backoff between listener restarts.
func WithRetryInterval(initial, maxInterval time.Duration) NotifierOption {
	return func(n *notifierImpl) {
		n.retryInitial = initial
		n.retryMax = maxInterval
	}
}

type notifierImpl struct {
	transport Transport
	metrics   *metrics.Metrics

	retryInitial time.Duration
	retryMax     time.Duration

	mu          sync.RWMutex
	nextID      uint64
	subscribers map[string]map[uint64]func()
}

func NewNotifier(transport Transport, metrics *metrics.Metrics, opts ...NotifierOption) Notifier {
	n := &notifierImpl{
		transport:    transport,
		metrics:      metrics,
		retryInitial: defaultRetryInitial,
		retryMax:     defaultRetryMax,
		subscribers:  map[string]map[uint64]func(){},
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

func (n *notifierImpl) Subscribe(venueID string, onChange func()) func() {
	n.mu.Lock()
	n.nextID++
	id := n.nextID

	if n.subscribers[venueID] == nil {
		n.subscribers[venueID] = map[uint64]func(){}
	}

	n.subscribers[venueID][id] = onChange
	n.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()

			delete(n.subscribers[venueID], id)

			if len(n.subscribers[venueID]) == 0 {
				delete(n.subscribers, venueID)
			}
		})
	}
}

func (n *notifierImpl) Run(ctx context.Context) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = n.retryInitial
	expBackoff.MaxInterval = n.retryMax

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		startedAt := time.Now()

		err := n.transport.Listen(ctx, n.dispatch)
		if ctx.Err() != nil {
			return struct{}{}, backoff.Permanent(ctx.Err())
		}

		if time.Since(startedAt) > healthyListenPeriod {
			expBackoff.Reset()
		}

		if err == nil {
			err = errListenerStopped
		}

		return struct{}{}, err
	},
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Error().Err(err).Dur("retry_in", next).Msg("booking change listener failed, retrying")
		}),
	)

	if ctx.Err() != nil {
		log.Info().Msg("booking change listener stopped")

		return nil
	}

	return err //nolint:wrapcheck
}

func (n *notifierImpl) dispatch(_ context.Context, event ChangeEvent) {
	n.metrics.ChangeEvents.WithLabelValues(metrics.DirectionIn, event.Operation).Inc()

	n.mu.RLock()
	callbacks := make([]func(), 0, len(n.subscribers[event.VenueID]))
	for _, callback := range n.subscribers[event.VenueID] {
		callbacks = append(callbacks, callback)
	}
	n.mu.RUnlock()

	log.Debug().
		Str("venue_id", event.VenueID).
		Str("operation", event.Operation).
		Int("subscribers", len(callbacks)).
		Msg("booking change received")

	for _, callback := range callbacks {
		callback()
	}
}
