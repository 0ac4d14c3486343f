package tracker

import (
	"context"
	"studyhall/infras/metrics"
	"sync"
	"time"
)

type WatchState string

const (
	WatchIdle         WatchState = "idle"
	WatchSubscribed   WatchState = "subscribed"
	WatchDebouncing   WatchState = "debouncing"
	WatchRefreshing   WatchState = "refreshing"
	WatchUnsubscribed WatchState = "unsubscribed"
)

// watcher turns a burst of change notifications for one venue into a single
// refresh once the venue has been quiet for the debounce window.
type watcher struct {
	venueID  string
	debounce time.Duration
	refresh  func(ctx context.Context)
	metrics  *metrics.Metrics

	notifications chan struct{}
	unsubscribe   func()

	mu    sync.Mutex
	state WatchState

	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

func newWatcher(venueID string, debounce time.Duration, refresh func(ctx context.Context), metrics *metrics.Metrics) *watcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &watcher{
		venueID:       venueID,
		debounce:      debounce,
		refresh:       refresh,
		metrics:       metrics,
		notifications: make(chan struct{}, 1),
		state:         WatchIdle,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}
}

// start subscribes through subscribe and begins the loop.
func (w *watcher) start(subscribe func(venueID string, onChange func()) func()) {
	w.unsubscribe = subscribe(w.venueID, w.notify)
	w.setState(WatchSubscribed)
	w.metrics.ActiveWatchers.Inc()

	go w.loop()
}

// notify never blocks the notifier.
func (w *watcher) notify() {
	select {
	case w.notifications <- struct{}{}:
	default:
		w.metrics.DebounceCoalesced.Inc()
	}
}

func (w *watcher) loop() {
	defer close(w.done)

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	armed := false

	for {
		select {
		case <-w.ctx.Done():
			timer.Stop()

			return

		case <-w.notifications:
			if armed {
				w.metrics.DebounceCoalesced.Inc()
			}

			timer.Reset(w.debounce)
			armed = true

			w.setState(WatchDebouncing)

		case <-timer.C:
			armed = false

			w.setState(WatchRefreshing)
			w.refresh(w.ctx)

			if w.ctx.Err() == nil {
				w.setState(WatchSubscribed)
			}
		}
	}
}

func (w *watcher) stop() {
	w.stopOnce.Do(func() {
		if w.unsubscribe != nil {
			w.unsubscribe()
		}

		w.cancel()
		<-w.done

		w.setState(WatchUnsubscribed)
		w.metrics.ActiveWatchers.Dec()
	})
}

func (w *watcher) State() WatchState {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.state
}

func (w *watcher) setState(state WatchState) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = state
}
